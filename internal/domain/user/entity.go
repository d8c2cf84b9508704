package user

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleHR       Role = "HR"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// RoleDetail is the role record embedded in the current user.
type RoleDetail struct {
	ID                  int    `json:"id"`
	Role                Role   `json:"role"`
	Description         string `json:"description"`
	IsActive            bool   `json:"is_active"`
	CanViewAllEmployees bool   `json:"can_view_all_employees"`
	CanCreateEmployees  bool   `json:"can_create_employees"`
	CanEditAllEmployees bool   `json:"can_edit_all_employees"`
	CanDeleteEmployees  bool   `json:"can_delete_employees"`
	CanViewSubordinates bool   `json:"can_view_subordinates"`
	CanApproveLeave     bool   `json:"can_approve_leave"`
	CanApproveTimesheet bool   `json:"can_approve_timesheet"`
}

// User is the authenticated account returned by /auth/me/.
type User struct {
	ID         int         `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	PhotoURL   string      `json:"photo_url,omitempty"`
	RoleDetail *RoleDetail `json:"role_detail"`
	IsActive   bool        `json:"is_active"`
	IsVerified bool        `json:"is_verified"`
}

// Role returns the user's role, or "" when the role detail is missing.
func (u *User) Role() Role {
	if u == nil || u.RoleDetail == nil {
		return ""
	}
	return u.RoleDetail.Role
}

// HasRole reports whether the user holds any of roles.
func (u *User) HasRole(roles ...Role) bool {
	role := u.Role()
	if role == "" {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission checks the static role table.
func (u *User) HasPermission(permission Permission) bool {
	return HasPermission(u.Role(), permission)
}

// IsSuperUser reports whether the user is Admin or HR.
func (u *User) IsSuperUser() bool {
	return u.HasRole(RoleAdmin, RoleHR)
}
