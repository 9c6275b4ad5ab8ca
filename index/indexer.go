package index

import (
	"context"

	"github.com/jmwsk/sitechat"
	"golang.org/x/sync/errgroup"
)

// embedConcurrency bounds parallel embedding calls during index builds.
const embedConcurrency = 8

// Indexer builds session indexes by chunking page markdown and embedding
// each chunk.
type Indexer struct {
	Embedder  sitechat.Embedder
	ChunkSize int
	Overlap   int
}

// Build chunks and embeds the session's pages into a searchable index.
// Chunks whose embedding fails are dropped; Build returns ENOTFOUND only
// when no chunk could be embedded at all.
func (ix *Indexer) Build(ctx context.Context, session *sitechat.CrawlSession) (*SessionIndex, error) {
	if session == nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "session required")
	}

	splitter := &Splitter{ChunkSize: ix.ChunkSize, Overlap: ix.Overlap}

	var chunks []*sitechat.Chunk
	for _, page := range session.Pages {
		if page.Failed() || page.Markdown == "" {
			continue
		}
		for i, text := range splitter.Split(page.Markdown) {
			chunks = append(chunks, &sitechat.Chunk{
				SourceURL: page.URL,
				Index:     i,
				Text:      text,
			})
		}
	}
	if len(chunks) == 0 {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "session %s has no indexable content", session.ID)
	}

	embedded := make([]*sitechat.Chunk, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			embedding, err := ix.Embedder.Embed(gctx, chunk.Text)
			if err != nil {
				// Dropped; the chunk slot stays nil.
				return nil
			}
			chunk.Embedding = embedding
			embedded[i] = chunk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &SessionIndex{sessionID: session.ID}
	for _, chunk := range embedded {
		if chunk != nil {
			result.chunks = append(result.chunks, chunk)
		}
	}
	if len(result.chunks) == 0 {
		return nil, sitechat.Errorf(sitechat.ENOTFOUND, "no chunks could be embedded for session %s", session.ID)
	}

	return result, nil
}
