// Package extract implements the ordered fallback pipeline that turns a post
// URL into a structured record. Three strategies run in strict priority
// order (oEmbed API, direct page metadata, embeddable fragment); the first
// one that recovers body text wins, and a failing strategy declines with a
// typed reason instead of aborting the pipeline.
package extract

import (
	"context"
	"errors"
	"net/http"
	"time"

	"xpost/internal/httputil"
	"xpost/internal/post"
)

var (
	// ErrFetch marks a network error, timeout, or non-success response.
	ErrFetch = errors.New("fetch failed")

	// ErrParse marks a malformed or unusable payload.
	ErrParse = errors.New("unparsable response")
)

// Attempt records why a strategy declined. Its Err wraps ErrFetch or ErrParse.
type Attempt struct {
	Strategy string
	Err      error
}

// Config holds the endpoints and client settings for an Extractor.
type Config struct {
	// OEmbedBase is the oEmbed API origin, e.g. "https://publish.twitter.com".
	OEmbedBase string
	// EmbedBase is the embeddable-page origin, e.g. "https://platform.twitter.com".
	EmbedBase string
	// UserAgent is sent with every request.
	UserAgent string
	// Timeout bounds each request.
	Timeout time.Duration
}

// Extractor fetches post content via the fallback strategy chain.
type Extractor struct {
	client     *http.Client
	oembedBase string
	embedBase  string
	userAgent  string
}

// New creates an Extractor.
func New(cfg Config) *Extractor {
	return &Extractor{
		client:     httputil.NewClient(cfg.Timeout),
		oembedBase: cfg.OEmbedBase,
		embedBase:  cfg.EmbedBase,
		userAgent:  cfg.UserAgent,
	}
}

// strategy is one self-contained retrieval-and-parse attempt. It mutates the
// record with whatever it finds and returns nil only when the record ends up
// with non-empty text.
type strategy struct {
	name string
	run  func(ctx context.Context, t post.Target, rec *post.Record) error
}

func (e *Extractor) strategies() []strategy {
	return []strategy{
		{"oembed", e.fromOEmbed},
		{"page", e.fromPage},
		{"embed", e.fromEmbed},
	}
}

// Extract validates the URL and runs the strategy chain. It returns a record
// for every valid URL: when all strategies decline, the record carries the
// placeholder text. The returned attempts list the declines observed before
// success (or all of them on total failure). The only errors are
// post.ErrInvalidURL and context cancellation.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*post.Record, []Attempt, error) {
	target, err := post.ParseURL(rawURL)
	if err != nil {
		return nil, nil, err
	}
	return e.extractTarget(ctx, target)
}

func (e *Extractor) extractTarget(ctx context.Context, target post.Target) (*post.Record, []Attempt, error) {
	rec := post.NewRecord(target)

	var attempts []Attempt
	for _, s := range e.strategies() {
		err := s.run(ctx, target, rec)
		if err == nil {
			return rec, attempts, nil
		}
		attempts = append(attempts, Attempt{Strategy: s.name, Err: err})
		if ctx.Err() != nil {
			return nil, attempts, ctx.Err()
		}
	}

	rec.FillPlaceholder()
	return rec, attempts, nil
}
