package jwt

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// CookieName is the browser cookie holding the signed portal session.
const CookieName = "portal_session"

var ErrInvalidSession = errors.New("invalid session token")

// Service issues and reads the signed portal session cookie.
type Service interface {
	NewSession() (sessionID, token string, expiresAt time.Time, err error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt time.Time) *http.Cookie
	ClearCookie() *http.Cookie
	SessionID(ctx context.Context) (string, error)
}

type JWTService struct {
	tokenAuth  *jwtauth.JWTAuth
	sessionTTL time.Duration
	secure     bool
}

// NewJWTService signs session cookies with HS256. sessionTTL matches the refresh token lifetime.
func NewJWTService(secretKey string, sessionTTL time.Duration, secure bool) Service {
	return &JWTService{
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		sessionTTL: sessionTTL,
		secure:     secure,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) NewSession() (sessionID, token string, expiresAt time.Time, err error) {
	sessionID = uuid.NewString()
	expiresAt = time.Now().Add(j.sessionTTL)

	_, token, err = j.tokenAuth.Encode(map[string]interface{}{
		"sid":  sessionID,
		"type": "session",
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	})
	if err != nil {
		return "", "", time.Time{}, err
	}
	return sessionID, token, expiresAt, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(j.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionID reads the session ID from the token verified by jwtauth.Verify.
func (j *JWTService) SessionID(ctx context.Context) (string, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", ErrInvalidSession
	}
	if tokenType, _ := claims["type"].(string); tokenType != "session" {
		return "", ErrInvalidSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSession
	}
	return sid, nil
}

// TokenFromCookie finds the session token for jwtauth.Verify.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// UpstreamSubject returns the user_id claim of a backend access token without
// verifying its signature. The portal never trusts it for authorization.
func UpstreamSubject(accessToken string) string {
	token, err := jwt.ParseInsecure([]byte(accessToken))
	if err != nil {
		return ""
	}
	if v, ok := token.Get("user_id"); ok {
		switch id := v.(type) {
		case string:
			return id
		case float64:
			return strconv.FormatFloat(id, 'f', -1, 64)
		}
	}
	return token.Subject()
}
