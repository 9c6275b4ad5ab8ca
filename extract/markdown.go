// Package extract implements the page extraction strategies. Each strategy
// turns a fetched URL into a normalized sitechat.PageContent: the markdown
// strategy pipes cleaned HTML through a markdown converter, the llm strategy
// asks a language model to restructure the page content.
package extract

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/jmwsk/sitechat"
	"github.com/jmwsk/sitechat/goquery"
)

// Ensure Markdown implements sitechat.PageExtractor at compile time.
var _ sitechat.PageExtractor = (*Markdown)(nil)

// Markdown extracts a page by removing boilerplate and converting the main
// content to markdown.
type Markdown struct {
	Fetcher   sitechat.Fetcher
	Extractor sitechat.Extractor
	Converter sitechat.Converter
}

// ExtractPage fetches the URL and returns its content as markdown, along
// with links and images resolved against the page URL.
func (m *Markdown) ExtractPage(ctx context.Context, url string) (*sitechat.PageContent, error) {
	html, err := m.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	extracted, err := m.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	markdown, err := m.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	page := &sitechat.PageContent{
		URL:         url,
		Title:       extracted.Title,
		Markdown:    markdown,
		RawHTML:     html,
		ContentHash: computeHash(markdown),
	}

	collectAssets(page, html, url)

	return page, nil
}

// collectAssets fills in the page's links and images. Asset extraction is
// best-effort: a page without parseable assets is still a valid page, but
// the failure is recorded so it is not silently lost.
func collectAssets(page *sitechat.PageContent, html, url string) {
	assets, err := goquery.ExtractAssets(html, url)
	if err != nil {
		page.Errors = append(page.Errors, fmt.Sprintf("asset extraction: %v", err))
		return
	}
	page.Links = assets.Links
	page.Images = assets.Images
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}
