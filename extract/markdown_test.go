package extract_test

import (
	"context"
	"testing"

	"github.com/jmwsk/sitechat"
	"github.com/jmwsk/sitechat/extract"
	"github.com/jmwsk/sitechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_ExtractPage(t *testing.T) {
	t.Parallel()

	t.Run("produces page content with markdown and assets", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/docs/next">Next</a>
			<img src="/img/diagram.png">
			<article><h1>Intro</h1><p>Welcome.</p></article>
		</body></html>`

		strategy := &extract.Markdown{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return html, nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(string) (*sitechat.ExtractResult, error) {
					return &sitechat.ExtractResult{
						Title:       "Intro",
						ContentHTML: "<h1>Intro</h1><p>Welcome.</p>",
					}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(string) (string, error) {
					return "# Intro\n\nWelcome.", nil
				},
			},
		}

		page, err := strategy.ExtractPage(context.Background(), "https://example.com/docs/intro")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs/intro", page.URL)
		assert.Equal(t, "Intro", page.Title)
		assert.Equal(t, "# Intro\n\nWelcome.", page.Markdown)
		assert.NotEmpty(t, page.ContentHash)
		assert.Equal(t, []string{"https://example.com/docs/next"}, page.Links)
		assert.Equal(t, []string{"https://example.com/img/diagram.png"}, page.Images)
		assert.False(t, page.Failed())
	})

	t.Run("propagates fetch error", func(t *testing.T) {
		t.Parallel()

		strategy := &extract.Markdown{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "connection refused")
				},
			},
		}

		_, err := strategy.ExtractPage(context.Background(), "https://example.com/")

		require.Error(t, err)
		assert.Equal(t, sitechat.EUNAVAILABLE, sitechat.ErrorCode(err))
	})

	t.Run("propagates extraction error", func(t *testing.T) {
		t.Parallel()

		strategy := &extract.Markdown{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "<html></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(string) (*sitechat.ExtractResult, error) {
					return nil, sitechat.Errorf(sitechat.EINTERNAL, "extraction failed")
				},
			},
		}

		_, err := strategy.ExtractPage(context.Background(), "https://example.com/")

		require.Error(t, err)
		assert.Equal(t, sitechat.EINTERNAL, sitechat.ErrorCode(err))
	})

	t.Run("records asset extraction failure without failing the page", func(t *testing.T) {
		t.Parallel()

		strategy := &extract.Markdown{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "<html><body><p>Welcome.</p></body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(string) (*sitechat.ExtractResult, error) {
					return &sitechat.ExtractResult{ContentHTML: "<p>Welcome.</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(string) (string, error) {
					return "Welcome.", nil
				},
			},
		}

		// A control character makes the page URL unusable as a base for
		// resolving links.
		page, err := strategy.ExtractPage(context.Background(), "https://example.com/\x7fdocs")

		require.NoError(t, err)
		assert.Equal(t, "Welcome.", page.Markdown)
		assert.Empty(t, page.Links)
		require.Len(t, page.Errors, 1)
		assert.Contains(t, page.Errors[0], "asset extraction")
		assert.False(t, page.Failed())
	})

	t.Run("identical content yields identical hash", func(t *testing.T) {
		t.Parallel()

		strategy := &extract.Markdown{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "<html><body><p>Same</p></body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(string) (*sitechat.ExtractResult, error) {
					return &sitechat.ExtractResult{ContentHTML: "<p>Same</p>"}, nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(string) (string, error) {
					return "Same", nil
				},
			},
		}

		a, err := strategy.ExtractPage(context.Background(), "https://example.com/a")
		require.NoError(t, err)
		b, err := strategy.ExtractPage(context.Background(), "https://example.com/b")
		require.NoError(t, err)

		assert.Equal(t, a.ContentHash, b.ContentHash)
	})
}
