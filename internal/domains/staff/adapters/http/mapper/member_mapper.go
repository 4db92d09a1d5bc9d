// Package mapper translates between the dashboard's staff JSON surface and
// the domain model.
package mapper

import (
	"github.com/orderdesk/orderdesk/internal/domains/staff/domain"
	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

// Member is the HTTP representation of one directory entry.
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// MutationMember captures inbound create/update payloads.
type MutationMember struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// ToDraft maps the mutation payload into the domain draft, validating the
// role enumeration at the boundary.
func ToDraft(input MutationMember) (domain.Draft, error) {
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return domain.Draft{}, err
	}
	return domain.Draft{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Role:   role,
		Active: input.Active,
	}, nil
}

// FromDomain maps a domain member into its HTTP representation.
func FromDomain(member domain.Member) Member {
	return Member{
		ID:     member.ID,
		Name:   member.Name,
		Email:  member.Email,
		Phone:  member.Phone,
		Role:   string(member.Role),
		Active: member.Active,
	}
}

// FromDomainList maps a slice of domain members.
func FromDomainList(members []domain.Member) []Member {
	result := make([]Member, 0, len(members))
	for _, member := range members {
		result = append(result, FromDomain(member))
	}
	return result
}
