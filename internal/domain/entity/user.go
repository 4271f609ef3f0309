package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RolePM         = "PM"
	RoleVM         = "VM"
	RoleSuperAdmin = "super_admin"
)

// User representa un usuario del sistema. Team agrupa usuarios (ej. "POD 1");
// la comparación de equipos se hace siempre normalizada (ver domain/access).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, PM, VM, super_admin
	Team         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
