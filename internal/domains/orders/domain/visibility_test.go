package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

func TestVisible(t *testing.T) {
	admin := identity.Actor{ID: "u-admin", Role: identity.RoleAdmin}
	staffA := identity.Actor{ID: "u-staff-a", Role: identity.RoleStaff}
	staffB := identity.Actor{ID: "u-staff-b", Role: identity.RoleStaff}
	exec := identity.Actor{ID: "u-exec", Role: identity.RoleExecutive}

	tests := []struct {
		name  string
		actor identity.Actor
		order Order
		want  bool
	}{
		{"admin sees everything", admin, Order{AssignedTo: "u-staff-a", CreatedBy: "u-exec"}, true},
		{"staff sees unassigned", staffA, Order{}, true},
		{"staff sees own assignment", staffA, Order{AssignedTo: "u-staff-a"}, true},
		{"staff blind to peer assignment", staffA, Order{AssignedTo: "u-staff-b"}, false},
		{"reassignment hides from previous holder", staffB, Order{AssignedTo: "u-staff-a"}, false},
		{"executive sees own orders", exec, Order{CreatedBy: "u-exec", AssignedTo: "u-staff-a"}, true},
		{"executive blind to others", exec, Order{CreatedBy: "u-admin"}, false},
		{"executive fails closed on missing creator", exec, Order{}, false},
		{"unknown role fails closed", identity.Actor{ID: "x", Role: identity.Role("viewer")}, Order{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Visible(tc.actor, tc.order))
		})
	}
}

func TestEditable_RequiresVisibility(t *testing.T) {
	staff := identity.Actor{ID: "u-staff-a", Role: identity.RoleStaff}
	assert.False(t, Editable(staff, Order{AssignedTo: "u-staff-b"}))
	assert.True(t, Editable(staff, Order{AssignedTo: "u-staff-a"}))

	exec := identity.Actor{ID: "u-exec", Role: identity.RoleExecutive}
	assert.True(t, Editable(exec, Order{CreatedBy: "u-exec"}))
	assert.False(t, Editable(exec, Order{CreatedBy: "someone-else"}))
}

func TestCanAssign(t *testing.T) {
	assert.True(t, CanAssign(identity.Actor{Role: identity.RoleAdmin}))
	assert.True(t, CanAssign(identity.Actor{Role: identity.RoleStaff}))
	assert.False(t, CanAssign(identity.Actor{Role: identity.RoleExecutive}))
}
