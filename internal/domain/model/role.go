package model

import "fmt"

// Role is the closed set of actor roles known to the marketplace.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string onto the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Allows reports whether the role is contained in the allowed set.
func (r Role) Allows(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Principal identifies the authenticated actor of an operation.
type Principal struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the principal carries administrative privileges.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
