// Package history records fetched posts in a TSV file so they can be
// browsed and re-fetched later. Uses atomic writes (temp+rename) to prevent
// data corruption.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"xpost/internal/config"
	"xpost/internal/post"
)

// TSV columns: tweet_id, screen_name, url, fetched_at, snippet
const numColumns = 5

// snippetMaxRunes bounds the stored text excerpt.
const snippetMaxRunes = 80

// Entry is one previously fetched post.
type Entry struct {
	TweetID    string
	ScreenName string
	URL        string
	FetchedAt  string // RFC 3339
	Snippet    string
}

// FromRecord builds a history entry for a freshly extracted record.
func FromRecord(rec *post.Record) Entry {
	return Entry{
		TweetID:    rec.TweetID,
		ScreenName: rec.ScreenName,
		URL:        rec.URL,
		FetchedAt:  time.Now().Format(time.RFC3339),
		Snippet:    Snippet(rec.Text),
	}
}

// Snippet collapses whitespace and truncates text for single-line display.
func Snippet(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	runes := []rune(s)
	if len(runes) > snippetMaxRunes {
		s = string(runes[:snippetMaxRunes-1]) + "…"
	}
	return s
}

// Load reads the history file and returns all entries.
func Load() ([]Entry, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			continue // Skip malformed lines
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Save writes or updates an entry, deduplicating on tweet ID.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func Save(entry Entry) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	entries, _ := Load()

	found := false
	for i, e := range entries {
		if e.TweetID == entry.TweetID {
			entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, entry)
	}

	return writeAll(path, entries)
}

// Clear removes the history file.
func Clear() error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing history: %w", err)
	}
	return nil
}

// FormatForDisplay creates display strings for fzf selection.
func FormatForDisplay(entries []Entry) []string {
	var items []string
	for _, e := range entries {
		items = append(items, fmt.Sprintf("@%s  %s  %s", e.ScreenName, e.TweetID, e.Snippet))
	}
	return items
}

// writeAll atomically replaces the history file contents.
func writeAll(path string, entries []Entry) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writer := bufio.NewWriter(tmpFile)
	for _, e := range entries {
		if _, err := writer.WriteString(formatLine(e) + "\n"); err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("writing history: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing history: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming history file: %w", err)
	}

	return nil
}

// parseLine parses a TSV line into an Entry.
func parseLine(line string) (Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numColumns {
		return Entry{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(fields))
	}

	return Entry{
		TweetID:    fields[0],
		ScreenName: fields[1],
		URL:        fields[2],
		FetchedAt:  fields[3],
		Snippet:    fields[4],
	}, nil
}

// formatLine converts an Entry to a TSV line. Tabs inside the snippet are
// already collapsed by Snippet.
func formatLine(e Entry) string {
	return strings.Join([]string{
		e.TweetID,
		e.ScreenName,
		e.URL,
		e.FetchedAt,
		e.Snippet,
	}, "\t")
}
