package auth

import "fmt"

// Role is the authorization role of a user
type Role string

const (
	// RoleAdmin is the system operator, not bound to any library
	RoleAdmin Role = "admin"
	// RoleSupervisor runs a single library
	RoleSupervisor Role = "supervisor"
	// RoleLibrarian works the desk of a library
	RoleLibrarian Role = "librarian"
	// RoleMember is a regular library member
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleLibrarian, RoleMember:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role: %s", s)
	}
	return r, nil
}
