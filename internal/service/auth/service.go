package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/base"
)

const (
	loginPath  = "/auth/login/"
	logoutPath = "/auth/logout/"
)

type AuthServiceImpl struct {
	api        base.API
	tokens     session.TokenStore
	jwt        jwt.Service
	registry   *store.Registry
	hub        *sse.Hub
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(api base.API, tokens session.TokenStore, jwtService jwt.Service, registry *store.Registry, hub *sse.Hub, accessTTL, refreshTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		api:        api,
		tokens:     tokens,
		jwt:        jwtService,
		registry:   registry,
		hub:        hub,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

var _ auth.AuthService = (*AuthServiceImpl)(nil)

// Login exchanges credentials for a token pair, persists it under a new
// session and resolves the current user.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResult{}, err
	}

	var pair auth.TokenPair
	err := a.api.Do(ctx, loginPath, apiclient.Options{Method: http.MethodPost, Body: req}, &pair)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			return auth.LoginResult{}, fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, err)
		}
		return auth.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		return auth.LoginResult{}, auth.ErrMissingTokens
	}

	sessionID, token, expiresAt, err := a.jwt.NewSession()
	if err != nil {
		return auth.LoginResult{}, fmt.Errorf("issue session: %w", err)
	}
	tokens := session.NewTokens(pair.Access, pair.Refresh, a.accessTTL, a.refreshTTL, a.now())
	if err := a.tokens.Save(ctx, sessionID, tokens); err != nil {
		return auth.LoginResult{}, fmt.Errorf("store session tokens: %w", err)
	}

	sessionCtx := session.WithID(ctx, sessionID)
	u, err := a.registry.Get(sessionID).Auth.FetchMe(sessionCtx)
	if err != nil {
		a.EndSession(sessionID)
		if delErr := a.tokens.Delete(context.WithoutCancel(ctx), sessionID); delErr != nil {
			slog.Error("Failed to clear session tokens", "error", delErr)
		}
		return auth.LoginResult{}, fmt.Errorf("resolve current user: %w", err)
	}

	slog.Info("Portal session opened",
		"session_id", sessionID,
		"user_id", u.ID,
		"upstream_subject", jwt.UpstreamSubject(pair.Access),
	)
	return auth.LoginResult{SessionID: sessionID, Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// Logout tells the backend and clears the session. The upstream error is only logged.
func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	sessionCtx := session.WithID(ctx, sessionID)
	if err := a.api.Do(sessionCtx, logoutPath, apiclient.Options{Method: http.MethodPost}, nil); err != nil {
		slog.Debug("Upstream logout failed", "error", err)
	}

	err := a.tokens.Delete(ctx, sessionID)
	a.EndSession(sessionID)
	if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		return fmt.Errorf("delete session tokens: %w", err)
	}
	return nil
}

// Me returns the user of the session in ctx.
func (a *AuthServiceImpl) Me(ctx context.Context) (*user.User, error) {
	set, err := a.registry.FromContext(ctx)
	if err != nil {
		return nil, auth.ErrNotAuthenticated
	}
	u, err := set.Auth.Ensure(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", auth.ErrNotAuthenticated, err)
	}
	return u, nil
}

func (a *AuthServiceImpl) EndSession(sessionID string) {
	a.registry.Reset(sessionID)
	if a.hub != nil {
		a.hub.Close(sessionID)
	}
}
