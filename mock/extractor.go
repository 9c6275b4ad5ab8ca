package mock

import (
	"context"

	"github.com/jmwsk/sitechat"
)

var _ sitechat.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitechat.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sitechat.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sitechat.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ sitechat.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitechat.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ sitechat.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of sitechat.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(ctx context.Context, url string) (*sitechat.PageContent, error)
}

func (p *PageExtractor) ExtractPage(ctx context.Context, url string) (*sitechat.PageContent, error) {
	return p.ExtractPageFn(ctx, url)
}
