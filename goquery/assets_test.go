package goquery_test

import (
	"testing"

	"github.com/jmwsk/sitechat"
	"github.com/jmwsk/sitechat/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAssets(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links and images", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/docs/intro">Intro</a>
			<a href="guide">Guide</a>
			<img src="/img/logo.png">
			<img src="banner.jpg">
		</body></html>`

		assets, err := goquery.ExtractAssets(html, "https://example.com/docs/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs/intro",
			"https://example.com/docs/guide",
		}, assets.Links)
		assert.Equal(t, []string{
			"https://example.com/img/logo.png",
			"https://example.com/docs/banner.jpg",
		}, assets.Images)
	})

	t.Run("keeps cross-host links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://other.example.org/page">External</a>`

		assets, err := goquery.ExtractAssets(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://other.example.org/page"}, assets.Links)
	})

	t.Run("deduplicates by resolved URL ignoring fragments", func(t *testing.T) {
		t.Parallel()

		html := `
			<a href="/page">One</a>
			<a href="/page#section">Two</a>
			<a href="https://example.com/page">Three</a>`

		assets, err := goquery.ExtractAssets(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/page"}, assets.Links)
	})

	t.Run("skips non-HTTP and self-referential links", func(t *testing.T) {
		t.Parallel()

		html := `
			<a href="javascript:void(0)">JS</a>
			<a href="mailto:hi@example.com">Mail</a>
			<a href="tel:+123">Call</a>
			<a href="#top">Top</a>
			<img src="data:image/png;base64,AAAA">`

		assets, err := goquery.ExtractAssets(html, "https://example.com/")

		require.NoError(t, err)
		assert.Empty(t, assets.Links)
		assert.Empty(t, assets.Images)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractAssets("<a href='/x'>x</a>", "://bad")

		require.Error(t, err)
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})
}
