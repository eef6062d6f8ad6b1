package session

// Known roles. RoleSuperAdmin sits above everything: it satisfies any role
// requirement, so the hierarchy check lives here instead of string
// comparisons scattered across call sites.
const (
	RoleStaff      = "staff"
	RoleHR         = "hr"
	RoleSuperAdmin = "super_admin"
)

// RoleSatisfies reports whether a session holding have meets a requirement
// of want. Exact match or super_admin; an empty requirement always passes.
func RoleSatisfies(have, want string) bool {
	if want == "" {
		return true
	}
	if have == RoleSuperAdmin {
		return true
	}
	return have == want
}

// DefaultRoute is the landing destination for a role: admins go to the HR
// dashboard, everyone else to the staff dashboard.
func DefaultRoute(role string) string {
	if role == RoleSuperAdmin {
		return "/hr"
	}
	return "/staff"
}
