package post

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRecordSerializationPrunesEmptyFields(t *testing.T) {
	rec := &Record{
		Text:       "Hello world",
		TweetID:    "123456",
		URL:        "https://x.com/alice/status/123456",
		UserName:   "alice",
		ScreenName: "alice",
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	for _, absent := range []string{"created_at", "has_media", "media"} {
		if _, ok := out[absent]; ok {
			t.Errorf("serialized record contains empty field %q", absent)
		}
	}
	if out["text"] != "Hello world" {
		t.Errorf("text = %v, want 'Hello world'", out["text"])
	}
}

func TestRecordSerializationKeepsHasMedia(t *testing.T) {
	// has_media must survive whenever set, even when false.
	rec := &Record{Text: "x", TweetID: "1", URL: "u"}
	rec.SetHasMedia(false)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	v, ok := out["has_media"]
	if !ok {
		t.Fatal("has_media missing from serialized record")
	}
	if v != false {
		t.Errorf("has_media = %v, want false", v)
	}
}

func TestNewRecordDefaults(t *testing.T) {
	target, err := ParseURL("https://x.com/alice/status/123456")
	if err != nil {
		t.Fatalf("ParseURL() error: %v", err)
	}

	rec := NewRecord(target)
	if rec.UserName != "alice" || rec.ScreenName != "alice" {
		t.Errorf("author defaults = (%q, %q), want both 'alice'", rec.UserName, rec.ScreenName)
	}
	if rec.TweetID != "123456" {
		t.Errorf("TweetID = %q, want '123456'", rec.TweetID)
	}
	if rec.Text != "" {
		t.Errorf("Text = %q, want empty until populated", rec.Text)
	}
}

func TestFillPlaceholder(t *testing.T) {
	rec := &Record{URL: "https://x.com/alice/status/123456"}
	rec.FillPlaceholder()

	if !strings.Contains(rec.Text, rec.URL) {
		t.Errorf("placeholder text %q does not contain the original URL", rec.Text)
	}

	// A populated record must not be overwritten.
	rec2 := &Record{Text: "real content", URL: "https://x.com/a/status/1"}
	rec2.FillPlaceholder()
	if rec2.Text != "real content" {
		t.Errorf("FillPlaceholder overwrote populated text: %q", rec2.Text)
	}
}
