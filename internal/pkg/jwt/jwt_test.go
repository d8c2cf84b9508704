package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, false)

	sid, token, expiresAt, err := svc.NewSession()
	require.NoError(t, err)
	assert.NotEmpty(t, sid)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	cookie := svc.SessionCookie(token, expiresAt)
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)

	var gotSID string
	var gotErr error
	handler := jwtauth.Verify(svc.JWTAuth(), TokenFromCookie)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID, gotErr = svc.SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/nav", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NoError(t, gotErr)
	assert.Equal(t, sid, gotSID)
}

func TestSessionID_RejectsForeignToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, false)
	_, foreign, err := svc.JWTAuth().Encode(map[string]interface{}{"sid": "x", "type": "access"})
	require.NoError(t, err)

	var gotErr error
	handler := jwtauth.Verify(svc.JWTAuth(), TokenFromCookie)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotErr = svc.SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/nav", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: foreign})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.ErrorIs(t, gotErr, ErrInvalidSession)
}

func TestSessionID_MissingCookie(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, false)

	var gotErr error
	handler := jwtauth.Verify(svc.JWTAuth(), TokenFromCookie)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotErr = svc.SessionID(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nav", nil))

	assert.Error(t, gotErr)
}

func TestUpstreamSubject(t *testing.T) {
	upstream := jwtauth.New("HS256", []byte("backend-secret"), nil)
	_, token, err := upstream.Encode(map[string]interface{}{"user_id": 42, "token_type": "access"})
	require.NoError(t, err)

	assert.Equal(t, "42", UpstreamSubject(token))
	assert.Empty(t, UpstreamSubject("not-a-jwt"))
}
