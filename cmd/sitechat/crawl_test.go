package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jmwsk/sitechat"
	main "github.com/jmwsk/sitechat/cmd/sitechat"
	"github.com/jmwsk/sitechat/crawl"
	"github.com/jmwsk/sitechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCrawler builds a Crawler whose extractor serves pages from a map.
func testCrawler(pages map[string]*sitechat.PageContent) *crawl.Crawler {
	return &crawl.Crawler{
		Extractor: &mock.PageExtractor{
			ExtractPageFn: func(_ context.Context, url string) (*sitechat.PageContent, error) {
				page, ok := pages[url]
				if !ok {
					return nil, sitechat.Errorf(sitechat.EUNAVAILABLE, "fetch %s: connection refused", url)
				}
				return page, nil
			},
		},
		Strategy: sitechat.StrategyMarkdown,
	}
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls and archives the session", func(t *testing.T) {
		t.Parallel()

		var saved *sitechat.CrawlSession
		sessions := &mock.SessionService{
			SaveSessionFn: func(_ context.Context, session *sitechat.CrawlSession) error {
				saved = session
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Crawler: testCrawler(map[string]*sitechat.PageContent{
				"https://example.com/": {URL: "https://example.com/", Title: "Home", Markdown: "# Home"},
			}),
			Sessions: sessions,
		}

		cmd := &main.CrawlCmd{URL: "https://example.com/"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, sitechat.StatusCompleted, saved.Status)
		assert.Contains(t, stdout.String(), "1 pages")
	})

	t.Run("archives failed sessions and returns the error", func(t *testing.T) {
		t.Parallel()

		var saved *sitechat.CrawlSession
		sessions := &mock.SessionService{
			SaveSessionFn: func(_ context.Context, session *sitechat.CrawlSession) error {
				saved = session
				return nil
			},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Crawler:  testCrawler(map[string]*sitechat.PageContent{}),
			Sessions: sessions,
		}

		cmd := &main.CrawlCmd{URL: "https://example.com/"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitechat.EUNAVAILABLE, sitechat.ErrorCode(err))
		require.NotNil(t, saved)
		assert.Equal(t, sitechat.StatusFailed, saved.Status)
	})
}
