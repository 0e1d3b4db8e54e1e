package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// Estados genéricos de registro (borrado lógico).
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// User representa un usuario de la organización.
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string
	Name           string
	Role           string // "admin" | "vendedor"
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
