// Package extractor pulls outbound links out of a fetched HTML document.
// It does not parse content for extraction quality, and it does not
// domain- or extension-filter — that admission decision belongs to the
// frontier. It only resolves hrefs to absolute canonical strings, in the
// order they occur in the document.
package extractor

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/falcongraph/crawler/pkg/urlutil"
)

// ExtractLinks scans body for every href-bearing anchor and resolves it
// against base. Empty results (fragment-only, mailto:, javascript:, etc.)
// are dropped. Malformed HTML is parsed leniently by golang.org/x/net/html
// (via goquery), which is the same tolerant behavior browsers apply and
// is a strict superset of what a regex-only scan over href="…" would find.
func ExtractLinks(base urlutil.Canonical, body []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		resolved := urlutil.MakeAbsolute(base, href)
		if resolved != "" {
			links = append(links, resolved)
		}
	})

	return links
}
