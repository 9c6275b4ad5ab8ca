package sitechat

import "context"

// Chunk is a bounded slice of a page's text, independently embedded for
// retrieval. Chunks are immutable and live as long as their owning
// session's index.
type Chunk struct {
	SourceURL string    `json:"sourceUrl"`
	Index     int       `json:"index"` // sequence within the source page
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	return nil
}

// ScoredChunk is a retrieval match with its similarity score.
type ScoredChunk struct {
	Chunk *Chunk  `json:"chunk"`
	Score float32 `json:"score"`
}

// Embedder converts text into a numeric vector representation.
// The same embedder instance must be used for index build and query for
// the lifetime of a session; mixing embedding models breaks retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
