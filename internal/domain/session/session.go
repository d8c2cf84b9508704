package session

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Tokens is the persisted token pair of one portal session.
// Token.Expiry is the access token expiry; RefreshExpiry bounds the whole session.
type Tokens struct {
	Token         *oauth2.Token
	RefreshExpiry time.Time
}

// NewTokens builds a token pair with the configured lifetimes.
func NewTokens(access, refresh string, accessTTL, refreshTTL time.Duration, now time.Time) Tokens {
	return Tokens{
		Token: &oauth2.Token{
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    "Bearer",
			Expiry:       now.Add(accessTTL),
		},
		RefreshExpiry: now.Add(refreshTTL),
	}
}

// Access returns the access token or "" when none is stored.
func (t Tokens) Access() string {
	if t.Token == nil {
		return ""
	}
	return t.Token.AccessToken
}

// Refresh returns the refresh token or "".
func (t Tokens) Refresh() string {
	if t.Token == nil {
		return ""
	}
	return t.Token.RefreshToken
}

// Expired reports whether the session can no longer be used at now.
func (t Tokens) Expired(now time.Time) bool {
	return t.Token == nil || !t.RefreshExpiry.After(now)
}

// TokenStore persists token pairs keyed by session ID.
type TokenStore interface {
	// Get returns ErrSessionNotFound when nothing (or only an expired pair) is stored.
	Get(ctx context.Context, sessionID string) (Tokens, error)
	Save(ctx context.Context, sessionID string, tokens Tokens) error
	// SetAccess replaces the access token, keeping the refresh token and its expiry.
	SetAccess(ctx context.Context, sessionID string, access string, expiry time.Time) error
	Delete(ctx context.Context, sessionID string) error
	// PurgeExpired removes sessions whose refresh token expired before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type ctxKey struct{}

// WithID returns a context carrying the portal session ID.
func WithID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sessionID)
}

// IDFromContext returns the session ID stored by WithID.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
