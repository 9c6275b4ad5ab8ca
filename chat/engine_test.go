package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jmwsk/sitechat"
	"github.com/jmwsk/sitechat/chat"
	"github.com/jmwsk/sitechat/index"
	"github.com/jmwsk/sitechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder maps text to a fixed vector by keyword so retrieval is
// deterministic.
func keywordEmbedder(vectors map[string][]float32) *mock.Embedder {
	return &mock.Embedder{
		EmbedFn: func(_ context.Context, text string) ([]float32, error) {
			for keyword, vector := range vectors {
				if strings.Contains(text, keyword) {
					return vector, nil
				}
			}
			return []float32{0, 0}, nil
		},
	}
}

func buildTestIndex(t *testing.T, embedder sitechat.Embedder) *index.SessionIndex {
	t.Helper()
	indexer := &index.Indexer{Embedder: embedder}
	idx, err := indexer.Build(context.Background(), &sitechat.CrawlSession{
		ID:       "session-1",
		SeedURL:  "https://example.com/",
		Mode:     sitechat.ModeBase,
		Strategy: sitechat.StrategyMarkdown,
		Pages: []*sitechat.PageContent{
			{URL: "https://example.com/pricing", Markdown: "pricing starts at $10 per month."},
			{URL: "https://example.com/install", Markdown: "install by running the setup script."},
		},
	})
	require.NoError(t, err)
	return idx
}

func TestEngine_Ask(t *testing.T) {
	t.Parallel()

	vectors := map[string][]float32{
		"pricing": {1, 0},
		"install": {0, 1},
	}

	t.Run("answers from retrieved context", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder(vectors)
		var prompt string
		engine := &chat.Engine{
			Embedder: embedder,
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, p string) (string, error) {
					prompt = p
					return "It costs $10 per month.", nil
				},
			},
			Index: buildTestIndex(t, embedder),
			TopK:  1,
		}

		turn, err := engine.Ask(context.Background(), "What is the pricing?")

		require.NoError(t, err)
		assert.NotEmpty(t, turn.ID)
		assert.Equal(t, "What is the pricing?", turn.Question)
		assert.Equal(t, "It costs $10 per month.", turn.Answer)
		require.Len(t, turn.Sources, 1)
		assert.Equal(t, "https://example.com/pricing", turn.Sources[0].Chunk.SourceURL)
		assert.False(t, turn.AskedAt.IsZero())

		assert.Contains(t, prompt, "based only on the following context")
		assert.Contains(t, prompt, "pricing starts at $10")
		assert.Contains(t, prompt, "<source>https://example.com/pricing</source>")
		assert.NotContains(t, prompt, "setup script")
	})

	t.Run("includes recent history in prompts", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder(vectors)
		var lastPrompt string
		engine := &chat.Engine{
			Embedder: embedder,
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, p string) (string, error) {
					lastPrompt = p
					return "answer", nil
				},
			},
			Index: buildTestIndex(t, embedder),
		}

		_, err := engine.Ask(context.Background(), "What is the pricing?")
		require.NoError(t, err)
		_, err = engine.Ask(context.Background(), "And how do I install it?")
		require.NoError(t, err)

		assert.Contains(t, lastPrompt, "Q: What is the pricing?")
		assert.Len(t, engine.History(), 2)
	})

	t.Run("bounds history to the window", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder(vectors)
		var lastPrompt string
		engine := &chat.Engine{
			Embedder: embedder,
			Completer: &mock.Completer{
				CompleteFn: func(_ context.Context, p string) (string, error) {
					lastPrompt = p
					return "answer", nil
				},
			},
			Index:         buildTestIndex(t, embedder),
			HistoryWindow: 1,
		}

		for _, q := range []string{"first question", "second question", "third question"} {
			_, err := engine.Ask(context.Background(), q)
			require.NoError(t, err)
		}

		assert.Contains(t, lastPrompt, "Q: second question")
		assert.NotContains(t, lastPrompt, "Q: first question")
		// Full history is still retained; only prompts are bounded.
		assert.Len(t, engine.History(), 3)
	})

	t.Run("returns EINVALID for empty question", func(t *testing.T) {
		t.Parallel()

		engine := &chat.Engine{}

		_, err := engine.Ask(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND without an index", func(t *testing.T) {
		t.Parallel()

		engine := &chat.Engine{}

		_, err := engine.Ask(context.Background(), "anything?")

		require.Error(t, err)
		assert.Equal(t, sitechat.ENOTFOUND, sitechat.ErrorCode(err))
	})

	t.Run("returns EUNAUTHORIZED without a completer", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder(vectors)
		engine := &chat.Engine{
			Embedder: embedder,
			Index:    buildTestIndex(t, embedder),
		}

		_, err := engine.Ask(context.Background(), "anything?")

		require.Error(t, err)
		assert.Equal(t, sitechat.EUNAUTHORIZED, sitechat.ErrorCode(err))
	})

	t.Run("failed completion leaves history unchanged", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder(vectors)
		engine := &chat.Engine{
			Embedder: embedder,
			Completer: &mock.Completer{
				CompleteFn: func(context.Context, string) (string, error) {
					return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "model overloaded")
				},
			},
			Index: buildTestIndex(t, embedder),
		}

		_, err := engine.Ask(context.Background(), "What is the pricing?")

		require.Error(t, err)
		assert.Equal(t, sitechat.EUNAVAILABLE, sitechat.ErrorCode(err))
		assert.Empty(t, engine.History())
	})

	t.Run("failed embedding leaves history unchanged", func(t *testing.T) {
		t.Parallel()

		embedder := keywordEmbedder(vectors)
		engine := &chat.Engine{
			Embedder: &mock.Embedder{
				EmbedFn: func(context.Context, string) ([]float32, error) {
					return nil, sitechat.Errorf(sitechat.EUNAVAILABLE, "provider down")
				},
			},
			Completer: &mock.Completer{
				CompleteFn: func(context.Context, string) (string, error) {
					t.Fatal("completer should not be called")
					return "", nil
				},
			},
			Index: buildTestIndex(t, embedder),
		}

		_, err := engine.Ask(context.Background(), "What is the pricing?")

		require.Error(t, err)
		assert.Equal(t, sitechat.EUNAVAILABLE, sitechat.ErrorCode(err))
		assert.Empty(t, engine.History())
	})
}
