package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/guard"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

// NavigationObserver counts guard outcomes.
type NavigationObserver interface {
	ObserveNavigation(outcome string)
}

// Navigator evaluates the route guard against a request's session.
type Navigator struct {
	guard    *guard.Guard
	registry *store.Registry
	tokens   session.TokenStore
	observer NavigationObserver
}

func NewNavigator(g *guard.Guard, registry *store.Registry, tokens session.TokenStore, observer NavigationObserver) *Navigator {
	return &Navigator{guard: g, registry: registry, tokens: tokens, observer: observer}
}

// CurrentUser returns the signed-in user, or nil when the session has no
// stored token or the user cannot be resolved.
func (n *Navigator) CurrentUser(ctx context.Context) *user.User {
	sessionID, ok := session.IDFromContext(ctx)
	if !ok {
		return nil
	}
	tokens, err := n.tokens.Get(ctx, sessionID)
	if err != nil || tokens.Access() == "" {
		return nil
	}
	u, err := n.registry.Get(sessionID).Auth.Ensure(ctx)
	if err != nil {
		slog.Debug("Current user unavailable", "error", err)
		return nil
	}
	return u
}

// Navigation builds the guard input for path.
func (n *Navigator) Navigation(ctx context.Context, path string, query url.Values) guard.Navigation {
	nav := guard.Navigation{Path: path, Query: query, User: n.CurrentUser(ctx)}
	if nav.User == nil {
		return nav
	}
	if set, err := n.registry.FromContext(ctx); err == nil {
		if id, ok := set.EmployeeContext.SelectedID(); ok {
			nav.SelectedEmployee = id
		}
	}
	return nav
}

// Evaluate runs the guard for nav and records the outcome.
func (n *Navigator) Evaluate(ctx context.Context, nav guard.Navigation) guard.Decision {
	d := n.guard.Evaluate(ctx, nav)
	if n.observer != nil {
		outcome := "allowed"
		if !d.IsAllowed() {
			outcome = "redirected"
		}
		n.observer.ObserveNavigation(outcome)
	}
	return d
}

// Guard protects page data routes mounted under prefix. The page path is the
// request path with prefix removed. Only reads get the employee query redirect.
func (n *Navigator) Guard(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := strings.TrimPrefix(r.URL.Path, prefix)
			if path == "" {
				path = "/"
			}
			nav := n.Navigation(r.Context(), path, r.URL.Query())
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				nav.SelectedEmployee = 0
			}
			d := n.Evaluate(r.Context(), nav)
			if !d.IsAllowed() {
				response.Redirect(w, d.Location)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
