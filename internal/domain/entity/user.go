package entity

import "time"

// Roles válidos para User.
const (
	RoleStaff   = "staff"
	RoleKitchen = "kitchen"
	RoleManager = "manager"
	RoleOwner   = "owner"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // staff, kitchen, manager, owner
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
