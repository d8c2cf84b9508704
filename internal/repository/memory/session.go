package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"golang.org/x/oauth2"
)

// SessionRepository keeps token pairs in process memory.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]session.Tokens
	now      func() time.Time
}

// NewSessionRepository creates an in-memory token store.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]session.Tokens),
		now:      time.Now,
	}
}

func (s *SessionRepository) Get(ctx context.Context, sessionID string) (session.Tokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens, ok := s.sessions[sessionID]
	if !ok || tokens.Expired(s.now()) {
		return session.Tokens{}, session.ErrSessionNotFound
	}
	return copyTokens(tokens), nil
}

func (s *SessionRepository) Save(ctx context.Context, sessionID string, tokens session.Tokens) error {
	if tokens.Token == nil {
		return session.ErrTokensMissing
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = copyTokens(tokens)
	return nil
}

func (s *SessionRepository) SetAccess(ctx context.Context, sessionID string, access string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, ok := s.sessions[sessionID]
	if !ok {
		return session.ErrSessionNotFound
	}
	if tokens.Expired(s.now()) {
		return session.ErrSessionExpired
	}
	tokens = copyTokens(tokens)
	tokens.Token.AccessToken = access
	tokens.Token.Expiry = expiry
	s.sessions[sessionID] = tokens
	return nil
}

func (s *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *SessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for id, tokens := range s.sessions {
		if tokens.Expired(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged, nil
}

// copyTokens detaches the stored oauth2.Token from callers.
func copyTokens(t session.Tokens) session.Tokens {
	if t.Token == nil {
		return t
	}
	tok := oauth2.Token{
		AccessToken:  t.Token.AccessToken,
		RefreshToken: t.Token.RefreshToken,
		TokenType:    t.Token.TokenType,
		Expiry:       t.Token.Expiry,
	}
	return session.Tokens{Token: &tok, RefreshExpiry: t.RefreshExpiry}
}
