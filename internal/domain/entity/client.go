package entity

import "time"

// Client empresa cliente que solicita estudios.
type Client struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Country       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
