package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
)

// Session copies the session ID of a verified cookie into the request context.
// Requests without a valid cookie pass through unchanged.
func Session(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := jwtService.SessionID(r.Context())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), sessionID)))
		}
		return http.HandlerFunc(hfn)
	}
}

// SessionRequired rejects requests that carry no portal session.
func SessionRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.IDFromContext(r.Context()); !ok {
			response.HandleError(w, auth.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
