package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/jmwsk/sitechat"
)

// Compile-time interface verification.
var _ sitechat.SessionService = (*SessionService)(nil)

// SessionService implements sitechat.SessionService using SQLite. Only the
// session summary is archived; page bodies and the index stay in memory.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// SaveSession records a finished session's summary. Saving the same
// session again replaces the earlier record.
func (s *SessionService) SaveSession(ctx context.Context, session *sitechat.CrawlSession) error {
	if session.ID == "" {
		return sitechat.Errorf(sitechat.EINVALID, "session ID required")
	}
	if err := session.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions (id, seed_url, mode, strategy, status, pages, images, links, failed, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, session.ID, session.SeedURL, string(session.Mode), string(session.Strategy), string(session.Status),
		session.Stats.Pages, session.Stats.Images, session.Stats.Links, session.Stats.Failed,
		session.Stats.Elapsed.Milliseconds(), session.CreatedAt.UTC().Format(time.RFC3339))

	return err
}

// FindSessions retrieves archived sessions, most recent first.
func (s *SessionService) FindSessions(ctx context.Context, filter sitechat.SessionFilter) ([]*sitechat.SessionSummary, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, mode, strategy, status, pages, images, links, failed, elapsed_ms, created_at FROM sessions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}

	query.WriteString(" ORDER BY created_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*sitechat.SessionSummary
	for rows.Next() {
		var summary sitechat.SessionSummary
		var mode, strategy, status, createdAt string
		var elapsedMS int64

		if err := rows.Scan(&summary.ID, &summary.SeedURL, &mode, &strategy, &status,
			&summary.Stats.Pages, &summary.Stats.Images, &summary.Stats.Links, &summary.Stats.Failed,
			&elapsedMS, &createdAt); err != nil {
			return nil, err
		}

		summary.Mode = sitechat.CrawlMode(mode)
		summary.Strategy = sitechat.ExtractionStrategy(strategy)
		summary.Status = sitechat.SessionStatus(status)
		summary.Stats.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		summary.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, &summary)
	}

	return summaries, rows.Err()
}
