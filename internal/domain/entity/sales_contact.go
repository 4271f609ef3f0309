package entity

import "time"

// SalesContact persona de ventas asociada a un bid.
type SalesContact struct {
	ID        string
	Name      string
	Email     string
	Region    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
