package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jmwsk/sitechat"
	main "github.com/jmwsk/sitechat/cmd/sitechat"
	"github.com/jmwsk/sitechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls, answers, and archives the turn", func(t *testing.T) {
		t.Parallel()

		var savedTurn *sitechat.ChatTurn
		var savedSessionID string

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Crawler: testCrawler(map[string]*sitechat.PageContent{
				"https://example.com/": {
					URL:      "https://example.com/",
					Title:    "Pricing",
					Markdown: "Pricing starts at $10 per month.",
				},
			}),
			Sessions: &mock.SessionService{
				SaveSessionFn: func(context.Context, *sitechat.CrawlSession) error { return nil },
			},
			Turns: &mock.TurnService{
				SaveTurnFn: func(_ context.Context, sessionID string, turn *sitechat.ChatTurn) error {
					savedSessionID = sessionID
					savedTurn = turn
					return nil
				},
			},
			Embedder: &mock.Embedder{
				EmbedFn: func(context.Context, string) ([]float32, error) {
					return []float32{1, 0}, nil
				},
			},
			Completer: &mock.Completer{
				CompleteFn: func(context.Context, string) (string, error) {
					return "It costs $10 per month.", nil
				},
			},
		}

		cmd := &main.AskCmd{URL: "https://example.com/", Question: "What is the pricing?", TopK: 4}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "It costs $10 per month.")
		assert.Contains(t, stdout.String(), "Sources:")
		assert.Contains(t, stdout.String(), "https://example.com/")

		require.NotNil(t, savedTurn)
		assert.Equal(t, "What is the pricing?", savedTurn.Question)
		assert.NotEmpty(t, savedSessionID)
	})

	t.Run("returns error when the crawl fails", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Crawler: testCrawler(map[string]*sitechat.PageContent{}),
			Sessions: &mock.SessionService{
				SaveSessionFn: func(context.Context, *sitechat.CrawlSession) error { return nil },
			},
		}

		cmd := &main.AskCmd{URL: "https://example.com/", Question: "anything?"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, sitechat.EUNAVAILABLE, sitechat.ErrorCode(err))
	})
}
