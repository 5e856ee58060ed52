package session

// Role is one of the console's access roles. Comparisons are exact and
// case-sensitive.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleCustomer Role = "CUSTOMER"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	LandingPath      = "/"
)

// AnyRole guards pages that need a login but no particular role.
var AnyRole = []Role{RoleAdmin, RoleManager, RoleCustomer}

// ParseRole returns the role named by s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

// HomePath is where a user lands after signing in.
func HomePath(role Role) string {
	switch role {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleManager:
		return "/manager/dashboard"
	case RoleCustomer:
		return "/customer/dashboard"
	}
	return LandingPath
}
