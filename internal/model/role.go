package model

// Role codes as constants
const (
	RoleCashier    = "cashier"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super admin"
)

// ValidRoles is the closed set of roles a user can hold
var ValidRoles = []string{RoleCashier, RoleAdmin, RoleSuperAdmin}

// IsValidRole reports whether code is one of the known roles
func IsValidRole(code string) bool {
	for _, r := range ValidRoles {
		if r == code {
			return true
		}
	}
	return false
}

// RoleAllowed is the single capability check applied at route boundaries:
// it reports whether actorRole is one of requiredRoles.
func RoleAllowed(actorRole string, requiredRoles ...string) bool {
	for _, r := range requiredRoles {
		if r == actorRole {
			return true
		}
	}
	return false
}
