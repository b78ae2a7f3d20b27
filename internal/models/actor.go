// internal/models/actor.go
package models

import "time"

type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleBusiness   Role = "business"
	RoleClient     Role = "client"
	RoleAnonymous  Role = "anonymous"
)

// Actor is an identity performing operations against the stores. A
// business actor carries the id of the single business it owns.
// Credentials are never stored on the actor itself.
type Actor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	BusinessID   string    `json:"businessId,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}
