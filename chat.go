package sitechat

import (
	"context"
	"time"
)

// ChatTurn is one question/answer exchange, immutable after creation.
type ChatTurn struct {
	ID       string        `json:"id"`
	Question string        `json:"question"`
	Answer   string        `json:"answer"`
	Sources  []ScoredChunk `json:"sources"` // ranked chunks the answer was grounded on
	AskedAt  time.Time     `json:"askedAt"`
}

// Conversation is a per-session ordered chat history. A turn is appended
// only after a successful answer; failures leave the history unchanged.
type Conversation struct {
	turns []*ChatTurn
}

// Append adds a completed turn to the history.
func (c *Conversation) Append(turn *ChatTurn) {
	c.turns = append(c.turns, turn)
}

// Turns returns the full history in order.
func (c *Conversation) Turns() []*ChatTurn {
	return c.turns
}

// Len returns the number of turns in the history.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Recent returns up to n most recent turns in order. It is used to bound
// the history included in prompts.
func (c *Conversation) Recent(n int) []*ChatTurn {
	if n <= 0 || len(c.turns) == 0 {
		return nil
	}
	if n > len(c.turns) {
		n = len(c.turns)
	}
	return c.turns[len(c.turns)-n:]
}

// Completer generates a text completion for a prompt. It is used both for
// LLM-guided extraction and for answer generation; the call sites differ
// only in prompt shape.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
