// Package memory provides an in-memory staff gateway for tests and offline
// development.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk/internal/domains/staff/domain"
	"github.com/orderdesk/orderdesk/internal/domains/staff/ports"
)

var _ ports.Gateway = (*Gateway)(nil)

// Gateway is a thread-safe in-memory stand-in for the remote directory.
type Gateway struct {
	mu      sync.RWMutex
	members map[string]domain.Member
}

// NewGateway builds an empty in-memory directory.
func NewGateway() *Gateway {
	return &Gateway{members: map[string]domain.Member{}}
}

// Seed inserts members directly, bypassing validation.
func (g *Gateway) Seed(members ...domain.Member) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, member := range members {
		g.members[member.ID] = member
	}
}

// ListMembers returns all stored members.
func (g *Gateway) ListMembers(_ context.Context) ([]domain.Member, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	members := make([]domain.Member, 0, len(g.members))
	for _, member := range g.members {
		members = append(members, member)
	}
	return members, nil
}

// CreateMember stores a new member with a generated identity.
func (g *Gateway) CreateMember(_ context.Context, draft domain.Draft) (domain.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	member := domain.Member{
		ID:     uuid.NewString(),
		Name:   draft.Name,
		Email:  draft.Email,
		Phone:  draft.Phone,
		Role:   draft.Role,
		Active: draft.Active,
	}
	g.members[member.ID] = member
	return member, nil
}

// UpdateMember replaces a stored member.
func (g *Gateway) UpdateMember(_ context.Context, id string, draft domain.Draft) (domain.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	member, ok := g.members[id]
	if !ok {
		return domain.Member{}, ports.ErrNotFound
	}
	member.Name = draft.Name
	member.Email = draft.Email
	member.Phone = draft.Phone
	member.Role = draft.Role
	member.Active = draft.Active
	g.members[id] = member
	return member, nil
}

// DeleteMember removes a stored member.
func (g *Gateway) DeleteMember(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.members[id]; !ok {
		return ports.ErrNotFound
	}
	delete(g.members, id)
	return nil
}
