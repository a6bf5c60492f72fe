package post

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidURL is returned for inputs that are not X/Twitter post URLs.
var ErrInvalidURL = errors.New("invalid X/Twitter post URL")

// statusURLPattern matches http(s)://(twitter|x).com/<username>/status/<id>,
// optionally followed by a query string.
var statusURLPattern = regexp.MustCompile(`^https?://(?:twitter|x)\.com/(\w+)/status/(\d+)(?:\?\S*)?$`)

// Target identifies a single post: the original URL plus the username and
// tweet ID derived from its path.
type Target struct {
	URL      string
	Username string
	TweetID  string
}

// ParseURL validates a post URL and derives the target deterministically.
// No network access: the username is the path segment after the domain and
// the tweet ID is the trailing numeric segment with any query stripped.
func ParseURL(raw string) (Target, error) {
	m := statusURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return Target{
		URL:      raw,
		Username: m[1],
		TweetID:  m[2],
	}, nil
}
