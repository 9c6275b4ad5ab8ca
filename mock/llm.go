package mock

import (
	"context"

	"github.com/jmwsk/sitechat"
)

var _ sitechat.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of sitechat.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

var _ sitechat.Completer = (*Completer)(nil)

// Completer is a mock implementation of sitechat.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}
