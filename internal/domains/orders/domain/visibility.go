package domain

import "github.com/orderdesk/orderdesk/internal/shared/identity"

// Visibility policy: a pure mapping from (actor, order) to what the actor may
// see and touch. Authorization happens here, before any remote call; the
// entity transition logic itself has no knowledge of actors.

// Visible reports whether the actor may see the order at all. Orders an actor
// cannot see are filtered out of lists entirely, not merely disabled.
func Visible(actor identity.Actor, order Order) bool {
	switch actor.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleStaff:
		// Unassigned means "open to any staff".
		return order.AssignedTo == "" || order.AssignedTo == actor.ID
	case identity.RoleExecutive:
		// An order with no recorded creator fails closed for executives.
		return order.CreatedBy != "" && order.CreatedBy == actor.ID
	default:
		return false
	}
}

// Editable reports whether the actor may mutate the order.
func Editable(actor identity.Actor, order Order) bool {
	if !Visible(actor, order) {
		return false
	}
	switch actor.Role {
	case identity.RoleAdmin, identity.RoleStaff:
		return true
	case identity.RoleExecutive:
		return true
	default:
		return false
	}
}

// CanAssign reports whether the actor may change an order's assignment.
// Executives cannot reassign orders even when they may edit them.
func CanAssign(actor identity.Actor) bool {
	switch actor.Role {
	case identity.RoleAdmin, identity.RoleStaff:
		return true
	default:
		return false
	}
}
