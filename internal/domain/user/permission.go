package user

type Permission string

const (
	PermissionViewAllEmployees Permission = "can_view_all_employees"
	PermissionCreateEmployees  Permission = "can_create_employees"
	PermissionEditAllEmployees Permission = "can_edit_all_employees"
	PermissionDeleteEmployees  Permission = "can_delete_employees"
	PermissionViewSubordinates Permission = "can_view_subordinates"
	PermissionApproveLeave     Permission = "can_approve_leave"
	PermissionApproveTimesheet Permission = "can_approve_timesheet"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewAllEmployees,
		PermissionCreateEmployees,
		PermissionEditAllEmployees,
		PermissionDeleteEmployees,
		PermissionViewSubordinates,
		PermissionApproveLeave,
		PermissionApproveTimesheet,
	},
	RoleHR: {
		PermissionViewAllEmployees,
		PermissionCreateEmployees,
		PermissionEditAllEmployees,
		PermissionApproveLeave,
		PermissionApproveTimesheet,
	},
	RoleManager: {
		PermissionViewSubordinates,
		PermissionApproveLeave,
		PermissionApproveTimesheet,
	},
	RoleEmployee: {},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
