package extract

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"xpost/internal/httputil"
	"xpost/internal/post"
)

var (
	// embedTextPattern splits the fragment's visible text into
	// "body — author (@handle) date". Both em-dash and hyphen separators
	// appear in the wild.
	embedTextPattern = regexp.MustCompile(`^(.*?)\s*(?:—|-)\s*(.+?) \(@(.+?)\) (.+)$`)

	// picLinkPattern is the media-sharing short link embedded in the raw
	// fragment markup. The underlying media URL is not resolvable from it.
	picLinkPattern = regexp.MustCompile(`pic\.twitter\.com/[a-zA-Z0-9]+`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// fromOEmbed asks the oEmbed API for the post's embed fragment and parses
// its visible text.
func (e *Extractor) fromOEmbed(ctx context.Context, target post.Target, rec *post.Record) error {
	endpoint := fmt.Sprintf("%s/oembed?url=%s", e.oembedBase, url.QueryEscape(target.URL))

	body, err := httputil.GetJSON(ctx, e.client, endpoint, e.userAgent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}

	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: oEmbed payload is not valid JSON", ErrParse)
	}
	payload := gjson.ParseBytes(body)

	fragment := payload.Get("html").String()
	if fragment == "" {
		return fmt.Errorf("%w: oEmbed payload has no html fragment", ErrParse)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fmt.Errorf("%w: parsing embed fragment: %v", ErrParse, err)
	}

	visible := strings.TrimSpace(doc.Text())
	if m := embedTextPattern.FindStringSubmatch(visible); m != nil {
		rec.Text = strings.TrimSpace(m[1])
		rec.UserName = strings.TrimSpace(m[2])
		rec.ScreenName = strings.TrimSpace(m[3])
		if date := strings.TrimSpace(m[4]); date != "" {
			rec.CreatedAt = date
		}
	} else {
		rec.Text = whitespaceRun.ReplaceAllString(visible, " ")
		if author := payload.Get("author_name").String(); author != "" {
			rec.UserName = author
		}
	}

	// Media presence is only detectable as a short link in the raw markup;
	// the flag is set without resolving any media URL.
	if picLinkPattern.MatchString(fragment) {
		rec.SetHasMedia(true)
	}

	if rec.Text == "" {
		return fmt.Errorf("%w: embed fragment has no visible text", ErrParse)
	}
	return nil
}
