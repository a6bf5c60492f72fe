// Package output serializes post records as JSON or JSON-Lines, to standard
// output or a file.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"xpost/internal/post"
)

// Format selects the serialization mode.
type Format string

const (
	// JSON buffers records and writes a single pretty-printed document at
	// Close: a bare object for exactly one record, an array otherwise.
	JSON Format = "json"
	// JSONLines writes one compact object per record as it completes.
	JSONLines Format = "jsonl"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case JSON, JSONLines:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q (valid: json, jsonl)", s)
	}
}

// Writer emits records in the configured format. It owns the destination
// file, if any, and closes it on Close regardless of errors.
type Writer struct {
	format  Format
	out     io.Writer
	file    *os.File
	records []*post.Record
	count   int
}

// New creates a Writer for the given destination path; an empty path means
// standard output.
func New(format Format, path string) (*Writer, error) {
	w := &Writer{format: format, out: os.Stdout}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("opening output file: %w", err)
		}
		w.out = f
		w.file = f
	}
	return w, nil
}

// Write emits a record (jsonl) or buffers it for Close (json).
func (w *Writer) Write(rec *post.Record) error {
	w.count++
	if w.format == JSONLines {
		enc := json.NewEncoder(w.out)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		return nil
	}
	w.records = append(w.records, rec)
	return nil
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.count
}

// Discard drops any buffered records and closes the destination file
// without writing them. An interrupted batch must not flush a partial
// JSON document; records already streamed in jsonl mode stay written.
func (w *Writer) Discard() error {
	w.records = nil
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		if err != nil {
			return fmt.Errorf("closing output file: %w", err)
		}
	}
	return nil
}

// Close flushes the buffered JSON document, if any, and closes the
// destination file. With zero records nothing is written.
func (w *Writer) Close() error {
	var writeErr error
	if w.format == JSON && len(w.records) > 0 {
		var payload any = w.records
		if len(w.records) == 1 {
			payload = w.records[0]
		}
		enc := json.NewEncoder(w.out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			writeErr = fmt.Errorf("writing output: %w", err)
		}
	}

	if w.file != nil {
		if err := w.file.Close(); err != nil && writeErr == nil {
			writeErr = fmt.Errorf("closing output file: %w", err)
		}
		w.file = nil
	}
	return writeErr
}
