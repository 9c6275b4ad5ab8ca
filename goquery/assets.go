// Package goquery collects page assets (outgoing links and images) from
// raw HTML using CSS selection.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jmwsk/sitechat"
)

// Assets holds the link and image targets discovered on a page.
// Links include cross-host targets; the crawler decides what to follow.
type Assets struct {
	Links  []string
	Images []string
}

// ExtractAssets parses HTML and returns all <a href> and <img src>
// targets, resolved against baseURL and deduplicated in document order.
// Non-HTTP links (javascript:, mailto:, tel:, data:) and self-referential
// anchors are skipped.
func ExtractAssets(html string, baseURL string) (*Assets, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "failed to parse HTML: %v", err)
	}

	assets := &Assets{}

	seenLinks := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seenLinks[resolved] {
			return
		}
		seenLinks[resolved] = true
		assets.Links = append(assets.Links, resolved)
	})

	seenImages := make(map[string]bool)
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, exists := sel.Attr("src")
		if !exists || src == "" || strings.HasPrefix(strings.ToLower(src), "data:") {
			return
		}
		ref, err := url.Parse(src)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()
		if seenImages[resolved] {
			return
		}
		seenImages[resolved] = true
		assets.Images = append(assets.Images, resolved)
	})

	return assets, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = "" // Strip fragment for deduplication

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
