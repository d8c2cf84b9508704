package auth

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

const mePath = "/auth/me/"

// Store caches the signed-in user of one session.
type Store struct {
	base.Status
	deps base.Deps

	mu   sync.RWMutex
	user *user.User
}

func New(deps base.Deps) *Store {
	return &Store{deps: deps}
}

// FetchMe resolves the current user. A failure clears the cached user without a toast.
func (s *Store) FetchMe(ctx context.Context) (*user.User, error) {
	s.Begin()
	defer s.End()

	var u user.User
	if err := s.deps.API.Get(ctx, mePath, nil, &u); err != nil {
		s.Clear()
		s.SetError(err.Error())
		return nil, err
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	return s.User(), nil
}

// User returns a copy of the cached user, nil when signed out.
func (s *Store) User() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Ensure returns the cached user, fetching it once when missing.
func (s *Store) Ensure(ctx context.Context) (*user.User, error) {
	if u := s.User(); u != nil {
		return u, nil
	}
	return s.FetchMe(ctx)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}
