package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"xpost/internal/httputil"
	"xpost/internal/post"
)

const picLinkPrefix = "pic.twitter.com/"

// fromPage fetches the post page itself and reads its social-preview
// metadata tags.
func (e *Extractor) fromPage(ctx context.Context, target post.Target, rec *post.Record) error {
	resp, err := httputil.Get(ctx, e.client, target.URL, e.userAgent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: parsing page HTML: %v", ErrParse, err)
	}

	if desc := metaProperty(doc, "og:description"); desc != "" {
		rec.Text = trimDescription(desc)
	}

	if title := metaProperty(doc, "og:title"); title != "" {
		if name, ok := trimTitle(title); ok {
			rec.UserName = name
		}
	}

	if image := metaProperty(doc, "og:image"); image != "" {
		// Profile icons and generic responsive-web assets are not post media.
		if !strings.Contains(image, "responsive-web") && !strings.Contains(image, "profile_images") {
			rec.Media = []string{image}
		}
	}

	resolveTimestamp(doc, rec)

	if rec.Text == "" {
		return fmt.Errorf("%w: page has no preview description", ErrParse)
	}
	return nil
}

// resolveTimestamp tries, in order: a time element's machine-readable
// attribute, the published-time metadata tag, then the first JSON-LD block
// carrying dateCreated or datePublished.
func resolveTimestamp(doc *goquery.Document, rec *post.Record) {
	if v, ok := doc.Find("time").First().Attr("datetime"); ok && v != "" {
		rec.CreatedAt = v
		return
	}

	// The weaker sources never overwrite a timestamp found earlier.
	if rec.CreatedAt != "" {
		return
	}

	if v := metaProperty(doc, "og:article:published_time"); v != "" {
		rec.CreatedAt = v
		return
	}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := s.Text()
		if !gjson.Valid(raw) {
			return true
		}
		data := gjson.Parse(raw)
		for _, key := range []string{"dateCreated", "datePublished"} {
			if v := data.Get(key); v.Exists() {
				rec.CreatedAt = v.String()
				return false
			}
		}
		return true
	})
}

// metaProperty returns the content attribute of the first matching
// <meta property=...> tag, or "".
func metaProperty(doc *goquery.Document, property string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First()
	content, _ := sel.Attr("content")
	return content
}

// trimTitle cuts the "<author> on Twitter: ..." / "<author> on X: ..."
// page title down to the author name. Titles without either marker carry no
// author information.
func trimTitle(title string) (string, bool) {
	for _, marker := range []string{" on Twitter:", " on X:"} {
		if idx := strings.Index(title, marker); idx >= 0 {
			return title[:idx], true
		}
	}
	return "", false
}

// trimDescription strips the trailing "— author (@handle) date" suffix or a
// trailing media short link from a preview description, whichever is found
// first (the author suffix takes precedence when both appear).
func trimDescription(desc string) string {
	if idx := strings.Index(desc, " — "); idx >= 0 {
		return strings.TrimSpace(desc[:idx])
	}
	if idx := strings.Index(desc, picLinkPrefix); idx >= 0 {
		return strings.TrimSpace(desc[:idx])
	}
	return desc
}
