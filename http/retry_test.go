package http_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmwsk/sitechat"
	schttp "github.com/jmwsk/sitechat/http"
	"github.com/jmwsk/sitechat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelays makes retries immediate in tests.
func noDelays() []time.Duration {
	return []time.Duration{0, 0, 0}
}

func TestRetryFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns first successful result", func(t *testing.T) {
		t.Parallel()

		calls := 0
		next := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "<html>ok</html>", nil
			},
		}

		fetcher := schttp.NewRetryFetcher(next, noDelays())
		html, err := fetcher.Fetch(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries failed attempts until one succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		next := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				if calls < 3 {
					return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "connection reset")
				}
				return "<html>ok</html>", nil
			},
		}

		fetcher := schttp.NewRetryFetcher(next, noDelays())
		html, err := fetcher.Fetch(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		next := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "attempt %d failed", calls)
			},
		}

		fetcher := schttp.NewRetryFetcher(next, noDelays())
		_, err := fetcher.Fetch(context.Background(), "https://example.com/")

		require.Error(t, err)
		assert.Equal(t, sitechat.EUNAVAILABLE, sitechat.ErrorCode(err))
		assert.Equal(t, "attempt 4 failed", sitechat.ErrorMessage(err))
	})

	t.Run("stops retrying when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		next := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				cancel()
				return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "connection reset")
			},
		}

		fetcher := schttp.NewRetryFetcher(next, []time.Duration{time.Minute})
		_, err := fetcher.Fetch(ctx, "https://example.com/")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("closes the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		next := &mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		fetcher := schttp.NewRetryFetcher(next, noDelays())
		require.NoError(t, fetcher.Close())
		assert.True(t, closed)
	})
}
