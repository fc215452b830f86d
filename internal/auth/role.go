package auth

import "fmt"

// Role is a coarse-grained permission group attached to an identity.
// There is no hierarchy: ADMINISTRATOR does not imply MANAGER. Every
// operation lists the exact roles it accepts.
type Role string

const (
	RoleManager       Role = "MANAGER"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// Roles lists every recognized role.
func Roles() []Role {
	return []Role{RoleManager, RoleAdministrator}
}

// ParseRole validates a role string. Anything outside the enumerated
// set is an error; callers must fail closed on it.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleManager, RoleAdministrator:
		return Role(s), nil
	default:
		return "", fmt.Errorf("auth: unknown role: %q", s)
	}
}
