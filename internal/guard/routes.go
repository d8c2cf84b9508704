package guard

import (
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
)

const (
	PathLogin          = "/login"
	PathForgotPassword = "/forgot-password"
	PathResetPassword  = "/reset-password"
	PathDashboard      = "/dashboard"
	PathAudit          = "/audit"

	// EmployeeQueryKey carries the employee a super user is viewing.
	EmployeeQueryKey = "employeeId"
)

var publicRoutes = map[string]bool{
	PathLogin:          true,
	PathForgotPassword: true,
	PathResetPassword:  true,
}

// contextIgnored routes never get the employee query appended.
var contextIgnored = map[string]bool{
	PathLogin:          true,
	PathAudit:          true,
	PathForgotPassword: true,
	PathResetPassword:  true,
}

// Route is a portal page with its access rules. Nav routes show up in the sidebar.
type Route struct {
	Path       string
	Label      string
	Icon       string
	NavTo      string
	Nav        bool
	Permission user.Permission
	Roles      []user.Role
	// HiddenForOther hides the nav entry while a super user views another employee.
	HiddenForOther bool
}

// Routes lists the portal pages in sidebar order.
var Routes = []Route{
	{Path: "/profile", Label: "Profile", Icon: "i-lucide-user", Nav: true},
	{Path: PathDashboard, Label: "Dashboard", Icon: "i-lucide-house", Nav: true},
	{Path: "/attendance", Label: "Attendance", Icon: "i-lucide-calendar", Nav: true},
	{Path: "/inventory", Label: "My Inventory", Icon: "i-lucide-monitor", Nav: true},
	{Path: "/leaves", Label: "Leaves", Icon: "i-lucide-file-text", Nav: true},
	{Path: "/salary", Label: "Salary", Icon: "i-lucide-dollar-sign", Nav: true},
	{Path: "/teams", Label: "Teams", Icon: "i-lucide-users", Nav: true,
		Roles: []user.Role{user.RoleAdmin}, HiddenForOther: true},
	{Path: "/settings", Label: "Settings", Icon: "i-lucide-settings", Nav: true,
		Roles: []user.Role{user.RoleAdmin, user.RoleHR}},
	{Path: "/adminInventory", Label: "Inventory", Icon: "i-lucide-wrench", NavTo: "/adminInventory?category=1", Nav: true,
		Roles: []user.Role{user.RoleAdmin, user.RoleHR}, HiddenForOther: true},
	{Path: "/interview", Label: "Interview", Icon: "i-lucide-users", Nav: true,
		Roles: []user.Role{user.RoleAdmin}, HiddenForOther: true},
	{Path: "/holidays", Label: "Holidays", Icon: "i-lucide-sun", Nav: true},

	{Path: "/leaves/approvals", Permission: user.PermissionApproveLeave},
	{Path: "/leaves/balances", Permission: user.PermissionViewAllEmployees},
	{Path: PathAudit},
}

func IsPublic(path string) bool {
	return publicRoutes[path]
}

// IsAuditPath reports whether path is the audit page or one of its sub-pages.
func IsAuditPath(path string) bool {
	return path == PathAudit || strings.HasPrefix(path, PathAudit+"/")
}

// Lookup finds the most specific route covering path.
func Lookup(path string) (Route, bool) {
	var (
		best  Route
		found bool
	)
	for _, r := range Routes {
		if path != r.Path && !strings.HasPrefix(path, r.Path+"/") {
			continue
		}
		if !found || len(r.Path) > len(best.Path) {
			best, found = r, true
		}
	}
	return best, found
}

// Allows reports whether u satisfies the route's permission and role rules.
func (r Route) Allows(u *user.User) bool {
	if r.Permission != "" && !u.HasPermission(r.Permission) {
		return false
	}
	if len(r.Roles) > 0 && !u.HasRole(r.Roles...) {
		return false
	}
	return true
}

func (r Route) link() string {
	if r.NavTo != "" {
		return r.NavTo
	}
	return r.Path
}
