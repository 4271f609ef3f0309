package entity

import "time"

// VendorManager gestor de proveedores (VM) asignado a un bid.
type VendorManager struct {
	ID        string
	Name      string
	Email     string
	Team      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
