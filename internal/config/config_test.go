package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OEmbedBase != "https://publish.twitter.com" {
		t.Errorf("default oembed_base = %q, want https://publish.twitter.com", cfg.OEmbedBase)
	}
	if cfg.EmbedBase != "https://platform.twitter.com" {
		t.Errorf("default embed_base = %q, want https://platform.twitter.com", cfg.EmbedBase)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Errorf("default timeout_seconds = %d, want 10", cfg.TimeoutSeconds)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", cfg.Timeout())
	}
	if !cfg.History {
		t.Error("default history should be true")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, true},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -5 }, true},
		{"empty oembed base", func(c *Config) { c.OEmbedBase = "" }, true},
		{"non-http embed base", func(c *Config) { c.EmbedBase = "ftp://platform.twitter.com" }, true},
		{"empty user agent", func(c *Config) { c.UserAgent = "" }, true},
		{"http base allowed", func(c *Config) { c.OEmbedBase = "http://localhost:8080" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "xpost")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `
oembed_base = "http://localhost:9100"
embed_base = "http://localhost:9200"
timeout_seconds = 3
history = false
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OEmbedBase != "http://localhost:9100" {
		t.Errorf("oembed_base = %q, want http://localhost:9100", cfg.OEmbedBase)
	}
	if cfg.EmbedBase != "http://localhost:9200" {
		t.Errorf("embed_base = %q, want http://localhost:9200", cfg.EmbedBase)
	}
	if cfg.TimeoutSeconds != 3 {
		t.Errorf("timeout_seconds = %d, want 3", cfg.TimeoutSeconds)
	}
	if cfg.History {
		t.Error("history should be false")
	}
	// Unset keys keep their defaults.
	if cfg.UserAgent == "" {
		t.Error("user_agent should keep its default when unset")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Errorf("missing file should return defaults, got timeout_seconds = %d", cfg.TimeoutSeconds)
	}
}

func TestHistoryPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	path, err := HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath() error: %v", err)
	}
	want := filepath.Join(tmpDir, "xpost", "history.tsv")
	if path != want {
		t.Errorf("HistoryPath() = %q, want %q", path, want)
	}
}
