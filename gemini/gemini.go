// Package gemini implements LLM completion and text embedding using the
// Google Gemini API.
package gemini

import (
	"context"
	"time"

	"github.com/jmwsk/sitechat"
	"google.golang.org/genai"
)

const (
	completionModel = "gemini-2.5-flash"
	embeddingModel  = "gemini-embedding-001"
)

// DefaultRequestTimeout bounds each completion and embedding call so a hung
// provider cannot block a crawl or chat turn forever.
const DefaultRequestTimeout = 60 * time.Second

// Ensure Client implements sitechat.Completer and sitechat.Embedder at
// compile time.
var (
	_ sitechat.Completer = (*Client)(nil)
	_ sitechat.Embedder  = (*Client)(nil)
)

// Client wraps the Gemini API client for completions and embeddings.
type Client struct {
	client  *genai.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithRequestTimeout sets the timeout applied to each API call.
// Defaults to DefaultRequestTimeout if not specified.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new Client authenticated with the given API key.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, sitechat.Errorf(sitechat.EUNAUTHORIZED, "Gemini API key required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EUNAVAILABLE, "creating Gemini client: %v", err)
	}

	c := &Client{client: client, timeout: DefaultRequestTimeout}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Complete sends the prompt to the completion model and returns the
// generated text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "prompt required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.Models.GenerateContent(ctx, completionModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "gemini completion: %v", err)
	}
	if result == nil {
		return "", sitechat.Errorf(sitechat.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "text required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.Models.EmbedContent(ctx, embeddingModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		nil,
	)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EUNAVAILABLE, "gemini embedding: %v", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "gemini returned no embeddings")
	}

	return result.Embeddings[0].Values, nil
}

// BuildConfig returns the GenerateContentConfig for completion calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
