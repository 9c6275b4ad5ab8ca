// Package index builds the in-memory retrieval index for a crawl session:
// page markdown is split into overlapping chunks, each chunk is embedded,
// and queries are answered by cosine similarity search.
package index

import (
	"regexp"
	"strings"
)

// Splitter defaults.
const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1500

	// DefaultOverlap is the number of characters carried over between
	// consecutive chunks.
	DefaultOverlap = 300
)

var sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Splitter splits text into overlapping chunks. It prefers paragraph
// boundaries, falls back to sentence boundaries for long paragraphs, and
// hard-cuts only when a single sentence exceeds the chunk size.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// Split returns the chunks of text. Whitespace-only input yields no chunks.
func (s *Splitter) Split(text string) []string {
	chunkSize := s.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	overlap := s.Overlap
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	segments := segment(text, chunkSize)

	var chunks []string
	var cur strings.Builder
	for _, seg := range segments {
		if cur.Len() > 0 && cur.Len()+len(seg)+1 > chunkSize {
			chunk := strings.TrimSpace(cur.String())
			chunks = append(chunks, chunk)
			cur.Reset()
			// Seed the next chunk with the overlap tail unless that would
			// push it over the chunk size; every chunk stays within budget.
			if tail := overlapTail(chunk, overlap); tail != "" && len(tail)+len(seg)+1 <= chunkSize {
				cur.WriteString(tail)
			}
		}
		if cur.Len() > 0 {
			cur.WriteString("\n")
		}
		cur.WriteString(seg)
	}
	if tail := strings.TrimSpace(cur.String()); tail != "" {
		chunks = append(chunks, tail)
	}

	return chunks
}

// segment breaks text into pieces no longer than chunkSize, splitting on
// paragraphs first, then sentences, then hard character cuts.
func segment(text string, chunkSize int) []string {
	var segments []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) <= chunkSize {
			segments = append(segments, para)
			continue
		}

		var sentences []string
		locs := sentencePattern.FindAllStringIndex(para, -1)
		if len(locs) == 0 {
			sentences = []string{para}
		} else {
			for _, loc := range locs {
				sentences = append(sentences, para[loc[0]:loc[1]])
			}
			// Text after the last terminator still belongs to the page.
			if rest := strings.TrimSpace(para[locs[len(locs)-1][1]:]); rest != "" {
				sentences = append(sentences, rest)
			}
		}
		for _, sentence := range sentences {
			sentence = strings.TrimSpace(sentence)
			if sentence == "" {
				continue
			}
			if len(sentence) <= chunkSize {
				segments = append(segments, sentence)
				continue
			}
			for len(sentence) > chunkSize {
				segments = append(segments, sentence[:chunkSize])
				sentence = sentence[chunkSize:]
			}
			if sentence != "" {
				segments = append(segments, sentence)
			}
		}
	}
	return segments
}

// overlapTail returns the last n characters of chunk, trimmed forward to a
// word boundary so the overlap does not start mid-word.
func overlapTail(chunk string, n int) string {
	if n <= 0 || len(chunk) <= n {
		return ""
	}
	tail := chunk[len(chunk)-n:]
	if idx := strings.IndexAny(tail, " \n"); idx != -1 {
		tail = tail[idx+1:]
	}
	return strings.TrimSpace(tail)
}
