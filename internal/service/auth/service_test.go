package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessTTL  = time.Hour
	testRefreshTTL = 24 * time.Hour
	testSecret     = "test-secret-key-for-sessions"
)

type fixture struct {
	mux      *http.ServeMux
	tokens   *memory.SessionRepository
	registry *store.Registry
	hub      *sse.Hub
	service  *AuthServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	tokens := memory.NewSessionRepository()
	api, err := apiclient.New(srv.URL, apiclient.WithSessionTokens(tokens, testAccessTTL))
	require.NoError(t, err)

	registry := store.NewRegistry(api, api, &notify.Recorder{})
	hub := sse.NewHub()
	svc := NewAuthService(api, tokens, jwt.NewJWTService(testSecret, testRefreshTTL, false), registry, hub, testAccessTTL, testRefreshTTL)
	return &fixture{mux: mux, tokens: tokens, registry: registry, hub: hub, service: svc}
}

func (f *fixture) serveLogin() {
	f.mux.HandleFunc("POST /auth/login/", func(w http.ResponseWriter, r *http.Request) {
		body := storetest.DecodeBody(r)
		if body["password"] != "secret" {
			storetest.WriteJSON(w, http.StatusUnauthorized, map[string]any{"detail": "No active account found"})
			return
		}
		storetest.WriteJSON(w, http.StatusOK, map[string]any{"access": "acc-1", "refresh": "ref-1"})
	})
}

func (f *fixture) serveMe() {
	f.mux.HandleFunc("GET /auth/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc-1" {
			storetest.WriteJSON(w, http.StatusForbidden, map[string]any{"detail": "no token"})
			return
		}
		storetest.WriteJSON(w, http.StatusOK, map[string]any{
			"id": 3, "email": "ada@example.com", "role_detail": map[string]any{"role": "Admin"},
		})
	})
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	f.serveLogin()
	f.serveMe()
	ctx := context.Background()

	res, err := f.service.Login(ctx, auth.LoginRequest{Email: " ada@example.com ", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.SessionID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, 3, res.User.ID)
	assert.True(t, res.ExpiresAt.After(time.Now().Add(testRefreshTTL-time.Minute)))

	tokens, err := f.tokens.Get(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", tokens.Access())
	assert.Equal(t, "ref-1", tokens.Refresh())

	me, err := f.service.Me(session.WithID(ctx, res.SessionID))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)
}

func TestAuthService_LoginInvalid(t *testing.T) {
	f := newFixture(t)
	f.serveLogin()
	ctx := context.Background()

	_, err := f.service.Login(ctx, auth.LoginRequest{Email: "ada@example.com", Password: "nope"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, auth.LoginRequest{Email: "not-an-email"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Equal(t, 0, f.registry.Len())
}

func TestAuthService_LoginUserLookupFails(t *testing.T) {
	f := newFixture(t)
	f.serveLogin()
	f.mux.HandleFunc("GET /auth/me/", func(w http.ResponseWriter, r *http.Request) {
		storetest.WriteJSON(w, http.StatusNotFound, map[string]any{"detail": "gone"})
	})

	_, err := f.service.Login(context.Background(), auth.LoginRequest{Email: "ada@example.com", Password: "secret"})
	require.Error(t, err)
	assert.Equal(t, 0, f.registry.Len())
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	f.serveLogin()
	f.serveMe()
	f.mux.HandleFunc("POST /auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		storetest.WriteJSON(w, http.StatusInternalServerError, map[string]any{"detail": "down"})
	})
	ctx := context.Background()

	res, err := f.service.Login(ctx, auth.LoginRequest{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	events, _ := f.hub.Subscribe(res.SessionID)

	require.NoError(t, f.service.Logout(ctx, res.SessionID))
	_, err = f.tokens.Get(ctx, res.SessionID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.Equal(t, 0, f.registry.Len())

	_, open := <-events
	assert.False(t, open)

	_, err = f.service.Me(ctx)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}
