package index

import (
	"math"
	"sort"

	"github.com/jmwsk/sitechat"
)

// SessionIndex is the in-memory retrieval index for one crawl session.
// It is immutable once built and safe for concurrent searches.
type SessionIndex struct {
	sessionID string
	chunks    []*sitechat.Chunk
}

// SessionID returns the ID of the session the index was built from.
func (x *SessionIndex) SessionID() string {
	return x.sessionID
}

// Len returns the number of embedded chunks in the index.
func (x *SessionIndex) Len() int {
	return len(x.chunks)
}

// Search returns the k chunks most similar to the query embedding, ordered
// by descending similarity. Ties are broken by ascending chunk index, then
// source URL, so results are deterministic.
func (x *SessionIndex) Search(query []float32, k int) []*sitechat.ScoredChunk {
	if k <= 0 || len(x.chunks) == 0 {
		return nil
	}

	scored := make([]*sitechat.ScoredChunk, 0, len(x.chunks))
	for _, chunk := range x.chunks {
		scored = append(scored, &sitechat.ScoredChunk{
			Chunk: chunk,
			Score: float32(cosineSimilarity(query, chunk.Embedding)),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Chunk.Index != scored[j].Chunk.Index {
			return scored[i].Chunk.Index < scored[j].Chunk.Index
		}
		return scored[i].Chunk.SourceURL < scored[j].Chunk.SourceURL
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched dimensions and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
