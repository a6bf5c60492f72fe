// Package post defines the post record model and X/Twitter URL validation.
package post

import "fmt"

// Record holds the structured fields extracted for a single post.
// Empty fields are pruned from the JSON output via omitempty; HasMedia is a
// pointer so that a flag set by a strategy survives serialization even when
// false, while an untouched flag is dropped.
type Record struct {
	Text       string   `json:"text,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
	UserName   string   `json:"user_name,omitempty"`
	ScreenName string   `json:"screen_name,omitempty"`
	TweetID    string   `json:"tweet_id,omitempty"`
	URL        string   `json:"url,omitempty"`
	HasMedia   *bool    `json:"has_media,omitempty"`
	Media      []string `json:"media,omitempty"`
}

// NewRecord initializes a record from a validated target. The username from
// the URL path seeds both author fields until a strategy finds richer data.
func NewRecord(t Target) *Record {
	return &Record{
		UserName:   t.Username,
		ScreenName: t.Username,
		TweetID:    t.TweetID,
		URL:        t.URL,
	}
}

// SetHasMedia marks the record as having attached media without resolving
// any media URL. Only the oEmbed strategy uses this weaker signal.
func (r *Record) SetHasMedia(v bool) {
	r.HasMedia = &v
}

// FillPlaceholder sets the fallback text when no strategy recovered content.
func (r *Record) FillPlaceholder() {
	if r.Text == "" {
		r.Text = fmt.Sprintf("Content couldn't be retrieved due to X/Twitter limitations. Please visit the link directly: %s", r.URL)
	}
}
