package guard

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func userWithRole(role user.Role) *user.User {
	return &user.User{ID: 1, RoleDetail: &user.RoleDetail{Role: role}}
}

func TestGuard_Evaluate(t *testing.T) {
	g := New()
	ctx := context.Background()

	tests := []struct {
		name string
		nav  Navigation
		want Decision
	}{
		{"public while signed out", Navigation{Path: PathLogin}, Allowed()},
		{"public while signed in", Navigation{Path: PathLogin, User: userWithRole(user.RoleEmployee)}, Redirected(PathDashboard)},
		{"reset password while signed in", Navigation{Path: PathResetPassword, User: userWithRole(user.RoleHR)}, Redirected(PathDashboard)},
		{"private while signed out", Navigation{Path: "/salary"}, Redirected(PathLogin)},
		{"nested private while signed out", Navigation{Path: "/leaves/approvals"}, Redirected(PathLogin)},
		{"unknown private while signed out", Navigation{Path: "/whatever"}, Redirected(PathLogin)},
		{"plain page", Navigation{Path: "/salary", User: userWithRole(user.RoleEmployee)}, Allowed()},
		{"missing permission", Navigation{Path: "/leaves/approvals", User: userWithRole(user.RoleEmployee)}, Redirected(PathDashboard)},
		{"granted permission", Navigation{Path: "/leaves/approvals", User: userWithRole(user.RoleManager)}, Allowed()},
		{"missing role", Navigation{Path: "/interview", User: userWithRole(user.RoleHR)}, Redirected(PathDashboard)},
		{"nested page inherits role", Navigation{Path: "/interview/jobs/7", User: userWithRole(user.RoleHR)}, Redirected(PathDashboard)},
		{"granted role", Navigation{Path: "/settings", User: userWithRole(user.RoleHR)}, Allowed()},
		{"user without role detail", Navigation{Path: "/settings", User: &user.User{ID: 2}}, Redirected(PathDashboard)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Evaluate(ctx, tt.nav))
		})
	}
}

func TestGuard_EmployeeContext(t *testing.T) {
	g := New()
	ctx := context.Background()
	admin := userWithRole(user.RoleAdmin)

	d := g.Evaluate(ctx, Navigation{Path: "/leaves", Query: url.Values{"tab": {"history"}}, User: admin, SelectedEmployee: 42})
	assert.Equal(t, "/leaves?employeeId=42&tab=history", d.Location)

	d = g.Evaluate(ctx, Navigation{Path: "/leaves", Query: url.Values{"employeeId": {"42"}}, User: admin, SelectedEmployee: 42})
	assert.True(t, d.IsAllowed())

	d = g.Evaluate(ctx, Navigation{Path: PathAudit, User: admin, SelectedEmployee: 42})
	assert.True(t, d.IsAllowed())

	d = g.Evaluate(ctx, Navigation{Path: "/leaves", User: admin})
	assert.True(t, d.IsAllowed())
}

func TestGuard_AuditGate(t *testing.T) {
	ctx := context.Background()
	emp := userWithRole(user.RoleEmployee)

	pending := New(WithAuditGate(func(context.Context) (bool, error) { return false, nil }))
	assert.Equal(t, Redirected(PathAudit), pending.Evaluate(ctx, Navigation{Path: PathDashboard, User: emp}))
	for _, p := range []string{PathAudit, "/audit/devices/5", "/audit/devices/5/submit"} {
		assert.True(t, pending.Evaluate(ctx, Navigation{Path: p, User: emp}).IsAllowed(), p)
	}
	assert.Equal(t, Redirected(PathAudit), pending.Evaluate(ctx, Navigation{Path: "/auditx", User: emp}))
	assert.Equal(t, Redirected(PathLogin), pending.Evaluate(ctx, Navigation{Path: PathDashboard}))

	done := New(WithAuditGate(func(context.Context) (bool, error) { return true, nil }))
	assert.True(t, done.Evaluate(ctx, Navigation{Path: PathDashboard, User: emp}).IsAllowed())

	failing := New(WithAuditGate(func(context.Context) (bool, error) { return false, errors.New("boom") }))
	assert.True(t, failing.Evaluate(ctx, Navigation{Path: PathDashboard, User: emp}).IsAllowed())
}

func labels(items []NavItem) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func TestNav(t *testing.T) {
	assert.Empty(t, Nav(nil, false))

	assert.Equal(t,
		[]string{"Profile", "Dashboard", "Attendance", "My Inventory", "Leaves", "Salary", "Holidays"},
		labels(Nav(userWithRole(user.RoleEmployee), false)))

	admin := Nav(userWithRole(user.RoleAdmin), false)
	assert.Len(t, admin, 11)
	assert.Equal(t, "/adminInventory?category=1", admin[8].To)

	assert.Equal(t,
		[]string{"Profile", "Dashboard", "Attendance", "My Inventory", "Leaves", "Salary", "Settings", "Holidays"},
		labels(Nav(userWithRole(user.RoleAdmin), true)))
	assert.Equal(t,
		[]string{"Profile", "Dashboard", "Attendance", "My Inventory", "Leaves", "Salary", "Settings", "Holidays"},
		labels(Nav(userWithRole(user.RoleHR), true)))

	assert.Contains(t, labels(Nav(userWithRole(user.RoleEmployee), true)), "Holidays")
}

func TestLookup(t *testing.T) {
	r, ok := Lookup("/leaves/approvals")
	assert.True(t, ok)
	assert.Equal(t, user.PermissionApproveLeave, r.Permission)

	r, ok = Lookup("/leaves/123")
	assert.True(t, ok)
	assert.Equal(t, "/leaves", r.Path)

	_, ok = Lookup("/leavesx")
	assert.False(t, ok)
}
