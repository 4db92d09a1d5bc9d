package domain

import (
	"errors"
	"strings"

	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

var (
	ErrEmptyName    = errors.New("member name is required")
	ErrInvalidEmail = errors.New("member email is invalid")
)

// Member is one staff directory entry. Orders reference members by ID only;
// the directory never joins across contexts.
type Member struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Role   identity.Role
	Active bool
}

// Draft carries a new or replacement member before remote identity exists.
type Draft struct {
	Name   string
	Email  string
	Phone  string
	Role   identity.Role
	Active bool
}

// Validate checks the directory invariants.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if !strings.Contains(d.Email, "@") {
		return ErrInvalidEmail
	}
	if !d.Role.Valid() {
		return identity.ErrInvalidRole
	}
	return nil
}
