package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"xpost/internal/httputil"
	"xpost/internal/post"
)

// fromEmbed fetches the embeddable rendering of the post by numeric ID and
// reads its structural text nodes.
func (e *Extractor) fromEmbed(ctx context.Context, target post.Target, rec *post.Record) error {
	endpoint := fmt.Sprintf("%s/embed/Tweet.html?id=%s", e.embedBase, target.TweetID)

	resp, err := httputil.Get(ctx, e.client, endpoint, e.userAgent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: parsing embed page: %v", ErrParse, err)
	}

	if text := strings.TrimSpace(doc.Find(".tweet-text").First().Text()); text != "" {
		rec.Text = text
	}

	if name := strings.TrimSpace(doc.Find(".tweet-header .fullname").First().Text()); name != "" {
		rec.UserName = name
	}

	if handle := strings.TrimSpace(doc.Find(".tweet-header .username").First().Text()); handle != "" {
		rec.ScreenName = strings.ReplaceAll(handle, "@", "")
	}

	var media []string
	doc.Find(".MediaCard img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			media = append(media, src)
		}
	})
	if len(media) > 0 {
		rec.Media = media
	}

	timeSel := doc.Find(".tweet-header time").First()
	if v, ok := timeSel.Attr("datetime"); ok && v != "" {
		rec.CreatedAt = v
	} else if v, ok := timeSel.Attr("title"); ok && v != "" {
		rec.CreatedAt = v
	}

	if rec.Text == "" {
		return fmt.Errorf("%w: embed page has no tweet text", ErrParse)
	}
	return nil
}
