package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmwsk/sitechat/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait_AllowsFirstRequest(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(1)

	err := limiter.Wait(context.Background(), "example.com")
	require.NoError(t, err)
}

func TestDomainLimiter_Wait_SeparateDomainsDoNotBlock(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(0.1) // one request per 10s within a domain

	begin := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))
	require.NoError(t, limiter.Wait(context.Background(), "b.example.com"))
	assert.Less(t, time.Since(begin), time.Second)
}

func TestDomainLimiter_Wait_ContextCancellation(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(0.001)

	// Exhaust the burst so the second wait would block.
	require.NoError(t, limiter.Wait(context.Background(), "example.com"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx, "example.com")
	require.Error(t, err)
}
