package mock

import (
	"context"

	"github.com/jmwsk/sitechat"
)

var _ sitechat.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of sitechat.SessionService.
type SessionService struct {
	SaveSessionFn  func(ctx context.Context, session *sitechat.CrawlSession) error
	FindSessionsFn func(ctx context.Context, filter sitechat.SessionFilter) ([]*sitechat.SessionSummary, error)
}

func (s *SessionService) SaveSession(ctx context.Context, session *sitechat.CrawlSession) error {
	return s.SaveSessionFn(ctx, session)
}

func (s *SessionService) FindSessions(ctx context.Context, filter sitechat.SessionFilter) ([]*sitechat.SessionSummary, error) {
	return s.FindSessionsFn(ctx, filter)
}

var _ sitechat.TurnService = (*TurnService)(nil)

// TurnService is a mock implementation of sitechat.TurnService.
type TurnService struct {
	SaveTurnFn  func(ctx context.Context, sessionID string, turn *sitechat.ChatTurn) error
	FindTurnsFn func(ctx context.Context, sessionID string) ([]*sitechat.ChatTurn, error)
}

func (s *TurnService) SaveTurn(ctx context.Context, sessionID string, turn *sitechat.ChatTurn) error {
	return s.SaveTurnFn(ctx, sessionID, turn)
}

func (s *TurnService) FindTurns(ctx context.Context, sessionID string) ([]*sitechat.ChatTurn, error) {
	return s.FindTurnsFn(ctx, sessionID)
}
