package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredRoleTable(t *testing.T) {
	tests := []struct {
		resource string
		verb     string
		want     Role
	}{
		{"rooms", "read", RolePublic},
		{"rooms", "write", RoleAuthenticated},
		{"admin/rooms", "write", RoleAdmin},
		{"bookings", "read", RoleOwner},
		{"bookings", "write", RoleOwner},
		{"admin/bookings", "read", RoleAdmin},
		{"team", "read", RolePublic},
		{"gallery", "read", RolePublic},
		{"contact", "write", RolePublic},
		{"admin/messages", "read", RoleAdmin},
		{"me", "read", RoleAuthenticated},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RequiredRole(tt.resource, tt.verb), "%s %s", tt.resource, tt.verb)
	}
}

func TestRequiredRoleFailsClosed(t *testing.T) {
	// unknown resources and verbs demand admin rather than opening up
	assert.Equal(t, RoleAdmin, RequiredRole("no-such-resource", "read"))
	assert.Equal(t, RoleAdmin, RequiredRole("team", "write"))
	assert.Equal(t, RoleAdmin, RequiredRole("contact", "read"))
}
