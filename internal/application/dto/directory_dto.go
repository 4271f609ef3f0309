package dto

import "time"

// DTOs de los catálogos de apoyo: clientes, contactos de venta,
// vendor managers y partners.

// SaveClientRequest alta/edición de cliente.
type SaveClientRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Country       string `json:"country,omitempty"`
}

// ClientResponse cliente del catálogo.
type ClientResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Country       string    `json:"country,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SaveSalesContactRequest alta/edición de contacto de ventas.
type SaveSalesContactRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Region string `json:"region,omitempty"`
}

// SalesContactResponse contacto de ventas del catálogo.
type SalesContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Region    string    `json:"region,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveVendorManagerRequest alta/edición de vendor manager.
type SaveVendorManagerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Team  string `json:"team,omitempty"`
}

// VendorManagerResponse vendor manager del catálogo.
type VendorManagerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Team      string    `json:"team,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SavePartnerRequest alta/edición de partner. El código de negocio
// (Partner_N) lo asigna la base, no el caller.
type SavePartnerRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Website       string `json:"website,omitempty"`
	Specialty     string `json:"specialty,omitempty"`
}

// CountryView país del catálogo de referencia.
type CountryView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// PartnerView partner del catálogo.
type PartnerView struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Website       string    `json:"website,omitempty"`
	Specialty     string    `json:"specialty,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
