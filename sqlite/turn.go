package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmwsk/sitechat"
)

// Compile-time interface verification.
var _ sitechat.TurnService = (*TurnService)(nil)

// TurnService implements sitechat.TurnService using SQLite. Sources are
// archived as source URL and score only; chunk text and embeddings are not
// persisted.
type TurnService struct {
	db *DB
}

// NewTurnService creates a new TurnService.
func NewTurnService(db *DB) *TurnService {
	return &TurnService{db: db}
}

// turnSource is the archived form of one answer source.
type turnSource struct {
	SourceURL string  `json:"sourceUrl"`
	Score     float32 `json:"score"`
}

// SaveTurn records a completed chat turn for a session.
func (s *TurnService) SaveTurn(ctx context.Context, sessionID string, turn *sitechat.ChatTurn) error {
	if sessionID == "" {
		return sitechat.Errorf(sitechat.EINVALID, "session ID required")
	}
	if turn.ID == "" {
		return sitechat.Errorf(sitechat.EINVALID, "turn ID required")
	}
	if turn.Question == "" {
		return sitechat.Errorf(sitechat.EINVALID, "turn question required")
	}

	sources := make([]turnSource, len(turn.Sources))
	for i, source := range turn.Sources {
		sources[i] = turnSource{SourceURL: source.Chunk.SourceURL, Score: source.Score}
	}
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO turns (id, session_id, question, answer, sources, asked_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, turn.ID, sessionID, turn.Question, turn.Answer, string(sourcesJSON),
		turn.AskedAt.UTC().Format(time.RFC3339))

	return err
}

// FindTurns retrieves a session's archived turns in ask order.
func (s *TurnService) FindTurns(ctx context.Context, sessionID string) ([]*sitechat.ChatTurn, error) {
	if sessionID == "" {
		return nil, sitechat.Errorf(sitechat.EINVALID, "session ID required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, sources, asked_at
		FROM turns
		WHERE session_id = ?
		ORDER BY asked_at ASC, rowid ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []*sitechat.ChatTurn
	for rows.Next() {
		var turn sitechat.ChatTurn
		var sourcesJSON, askedAt string

		if err := rows.Scan(&turn.ID, &turn.Question, &turn.Answer, &sourcesJSON, &askedAt); err != nil {
			return nil, err
		}

		var sources []turnSource
		if err := json.Unmarshal([]byte(sourcesJSON), &sources); err != nil {
			return nil, err
		}
		for _, source := range sources {
			turn.Sources = append(turn.Sources, sitechat.ScoredChunk{
				Chunk: &sitechat.Chunk{SourceURL: source.SourceURL},
				Score: source.Score,
			})
		}

		turn.AskedAt, err = parseRFC3339(askedAt, "asked_at")
		if err != nil {
			return nil, err
		}

		turns = append(turns, &turn)
	}

	return turns, rows.Err()
}
