// Package guard decides whether a portal navigation proceeds or redirects.
package guard

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
)

// Decision is the outcome of one navigation. An empty Location means allowed.
type Decision struct {
	Location string `json:"location,omitempty"`
}

func Allowed() Decision {
	return Decision{}
}

func Redirected(location string) Decision {
	return Decision{Location: location}
}

func (d Decision) IsAllowed() bool {
	return d.Location == ""
}

// Navigation describes the requested page and the session state.
type Navigation struct {
	Path  string
	Query url.Values
	// User is nil unless a token is stored and the current user resolved.
	User *user.User
	// SelectedEmployee is the employee a super user is viewing, 0 for none.
	SelectedEmployee int
}

func (n Navigation) authenticated() bool {
	return n.User != nil
}

// AuditCheck reports whether every device assigned to the session's user is audited.
type AuditCheck func(ctx context.Context) (bool, error)

type Guard struct {
	audit AuditCheck
}

type Option func(*Guard)

// WithAuditGate redirects to the audit page until check reports true.
func WithAuditGate(check AuditCheck) Option {
	return func(g *Guard) {
		g.audit = check
	}
}

func New(opts ...Option) *Guard {
	g := &Guard{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate runs the navigation rules in order and returns the first redirect.
func (g *Guard) Evaluate(ctx context.Context, nav Navigation) Decision {
	if IsPublic(nav.Path) {
		if nav.authenticated() {
			return Redirected(PathDashboard)
		}
		return Allowed()
	}
	if !nav.authenticated() {
		return Redirected(PathLogin)
	}

	if route, ok := Lookup(nav.Path); ok && !route.Allows(nav.User) {
		slog.Debug("Navigation denied", "path", nav.Path, "role", nav.User.Role())
		return Redirected(PathDashboard)
	}

	if g.audit != nil && !IsAuditPath(nav.Path) {
		done, err := g.audit(ctx)
		if err != nil {
			slog.Warn("Audit status check failed", "error", err)
		} else if !done {
			return Redirected(PathAudit)
		}
	}

	return withEmployee(nav)
}

// withEmployee appends the viewed employee to the query when it is missing.
func withEmployee(nav Navigation) Decision {
	if contextIgnored[nav.Path] || IsAuditPath(nav.Path) || nav.SelectedEmployee == 0 {
		return Allowed()
	}
	if _, ok := nav.Query[EmployeeQueryKey]; ok {
		return Allowed()
	}

	q := url.Values{}
	for k, vs := range nav.Query {
		q[k] = append([]string(nil), vs...)
	}
	q.Set(EmployeeQueryKey, strconv.Itoa(nav.SelectedEmployee))
	return Redirected(nav.Path + "?" + q.Encode())
}
