package http

import (
	"context"
	"time"

	"github.com/jmwsk/sitechat"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure RetryFetcher implements sitechat.Fetcher at compile time.
var _ sitechat.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher wraps a Fetcher with exponential backoff retry logic.
// With the default delays it makes up to 4 attempts (1 initial + 3 retries).
type RetryFetcher struct {
	next   sitechat.Fetcher
	delays []time.Duration
}

// NewRetryFetcher creates a RetryFetcher around next.
// If delays is nil, DefaultRetryDelays is used. Pass zero-duration delays
// in tests to avoid waiting.
func NewRetryFetcher(next sitechat.Fetcher, delays []time.Duration) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{next: next, delays: delays}
}

// Fetch retrieves the URL, retrying failed attempts after each delay.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close releases the wrapped fetcher's resources.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}
