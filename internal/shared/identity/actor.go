// Package identity carries the session actor handed to every bounded context.
package identity

import (
	"errors"
	"strings"
)

// Role enumerates the dashboard roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
	RoleExecutive Role = "executive"
)

var ErrInvalidRole = errors.New("unknown actor role")

// ParseRole validates the closed role enumeration.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleAdmin, RoleStaff, RoleExecutive:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid reports membership in the closed role set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Actor identifies who is driving the current session.
type Actor struct {
	ID   string
	Name string
	Role Role
}

// Valid reports whether the actor carries an identity and a known role.
func (a Actor) Valid() bool {
	return strings.TrimSpace(a.ID) != "" && a.Role.Valid()
}
