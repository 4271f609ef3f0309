package entity

import "time"

// Partner proveedor de panel que recibe invitaciones a bids.
// Code es el identificador de negocio secuencial (ej. "Partner_41"),
// distinto del ID técnico.
type Partner struct {
	ID            string
	Code          string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Website       string
	Specialty     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
