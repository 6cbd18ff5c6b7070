package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Role is the minimum caller role a resource verb demands.
type Role int

const (
	RolePublic Role = iota
	// RoleOwner rows are additionally scoped to the caller inside the
	// services; at the gate it behaves like an authenticated caller.
	RoleOwner
	RoleAuthenticated
	RoleAdmin
)

// Policy is the resource x verb access table. Routes consult it through
// Require instead of scattering role conditionals across handlers.
var Policy = map[string]map[string]Role{
	"rooms":          {"read": RolePublic, "write": RoleAuthenticated},
	"admin/rooms":    {"read": RoleAdmin, "write": RoleAdmin},
	"bookings":       {"read": RoleOwner, "write": RoleOwner},
	"admin/bookings": {"read": RoleAdmin, "write": RoleAdmin},
	"team":           {"read": RolePublic},
	"admin/team":     {"read": RoleAdmin, "write": RoleAdmin},
	"gallery":        {"read": RolePublic},
	"admin/gallery":  {"read": RoleAdmin, "write": RoleAdmin},
	"contact":        {"write": RolePublic},
	"admin/messages": {"read": RoleAdmin, "write": RoleAdmin},
	"admin/users":    {"read": RoleAdmin, "write": RoleAdmin},
	"me":             {"read": RoleAuthenticated, "write": RoleAuthenticated},
}

// RequiredRole resolves the table entry; an unknown pair fails closed.
func RequiredRole(resource, verb string) Role {
	verbs, ok := Policy[resource]
	if !ok {
		return RoleAdmin
	}
	role, ok := verbs[verb]
	if !ok {
		return RoleAdmin
	}
	return role
}

// Require gates a route group on the policy table entry for the given
// resource and verb.
func Require(resource, verb string) gin.HandlerFunc {
	role := RequiredRole(resource, verb)
	return func(c *gin.Context) {
		if role == RolePublic {
			c.Next()
			return
		}
		user := authenticate(c)
		if user == nil {
			return
		}
		if role == RoleAdmin && !user.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
