package unit

const (
	PermCreateTasks   = "create_tasks"
	PermCompleteTasks = "complete_tasks"
	PermAssignTasks   = "assign_tasks"
	PermDeleteTasks   = "delete_tasks"
	PermManageMembers = "manage_members"
	PermManageRoles   = "manage_roles"
	PermManageUnit    = "manage_unit"
)

// rolePermissions maps each role to its permission set. Every permission a
// member holds is also held by moderators, and every moderator permission
// by admins. RoleModerator is not assignable through the API but resolves
// here if it ever appears in data.
var rolePermissions = map[string][]string{
	RoleMember: {
		PermCreateTasks,
		PermCompleteTasks,
	},
	RoleModerator: {
		PermCreateTasks,
		PermCompleteTasks,
		PermAssignTasks,
		PermDeleteTasks,
	},
	RoleAdmin: {
		PermCreateTasks,
		PermCompleteTasks,
		PermAssignTasks,
		PermDeleteTasks,
		PermManageMembers,
		PermManageRoles,
		PermManageUnit,
	},
}

// PermissionsForRole returns a copy of the role's permission set.
func PermissionsForRole(role string) []string {
	perms := rolePermissions[role]
	result := make([]string, len(perms))
	copy(result, perms)
	return result
}

func roleHasPermission(role, permission string) bool {
	for _, perm := range rolePermissions[role] {
		if perm == permission {
			return true
		}
	}
	return false
}
