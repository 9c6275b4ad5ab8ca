package sitechat

import (
	"context"
	"time"
)

// SessionSummary is the archived view of a crawl session: identity and
// stats, without page bodies. The live session index is never archived.
type SessionSummary struct {
	ID        string             `json:"id"`
	SeedURL   string             `json:"seedUrl"`
	Mode      CrawlMode          `json:"mode"`
	Strategy  ExtractionStrategy `json:"strategy"`
	Status    SessionStatus      `json:"status"`
	Stats     CrawlStats         `json:"stats"`
	CreatedAt time.Time          `json:"createdAt"`
}

// SessionService archives crawl sessions for later listing.
type SessionService interface {
	// SaveSession records a finished session's summary.
	SaveSession(ctx context.Context, session *CrawlSession) error

	// FindSessions retrieves archived sessions, most recent first.
	FindSessions(ctx context.Context, filter SessionFilter) ([]*SessionSummary, error)
}

// SessionFilter represents a filter for FindSessions.
type SessionFilter struct {
	ID      *string `json:"id"`
	SeedURL *string `json:"seedUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TurnService archives chat turns per session.
type TurnService interface {
	// SaveTurn records a completed chat turn for a session.
	SaveTurn(ctx context.Context, sessionID string, turn *ChatTurn) error

	// FindTurns retrieves a session's archived turns in ask order.
	FindTurns(ctx context.Context, sessionID string) ([]*ChatTurn, error)
}
