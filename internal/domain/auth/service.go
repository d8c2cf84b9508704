package auth

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
)

// LoginResult is a freshly opened portal session.
type LoginResult struct {
	SessionID string
	Token     string
	ExpiresAt time.Time
	User      *user.User
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context) (*user.User, error)
	// EndSession drops everything the portal holds for a session.
	EndSession(sessionID string)
}
