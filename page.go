package sitechat

import "context"

// PageContent is one fetched page's normalized result.
// It is immutable once produced by a PageExtractor. A page that failed
// extraction is kept as a stub with the failure recorded in Errors.
type PageContent struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Markdown    string   `json:"markdown"`
	RawHTML     string   `json:"rawHtml,omitempty"`
	ContentHash string   `json:"contentHash,omitempty"`
	Links       []string `json:"links,omitempty"`
	Images      []string `json:"images,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// Failed reports whether the page is an error stub with no usable content.
func (p *PageContent) Failed() bool {
	return p.Markdown == "" && len(p.Errors) > 0
}

// Fetcher retrieves raw HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content. The context controls timeout and cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources (e.g., a browser process).
	Close() error
}

// SitemapService discovers URLs from website sitemaps.
// Discovery is best-effort: a missing or malformed sitemap yields an
// empty slice, not an error, and the crawler falls back to link-following.
type SitemapService interface {
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string

	// ContentText is the main content as plain text, suitable as a
	// pre-cleaned input for LLM-guided extraction.
	ContentText string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., from an Extractor) into Markdown.
	Convert(html string) (string, error)
}

// PageExtractor turns a URL into a normalized PageContent using one
// extraction strategy. The strategy variants (markdown, llm) dispatch
// through this fixed interface.
type PageExtractor interface {
	ExtractPage(ctx context.Context, url string) (*PageContent, error)
}
