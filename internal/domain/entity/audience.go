package entity

import "github.com/shopspring/decimal"

// TargetAudience audiencia objetivo de un bid. Cada audiencia define cuántos
// completes se requieren por país; un país sin muestra requerida es inválido.
type TargetAudience struct {
	ID              string
	BidID           string
	Ordinal         int // posición dentro del bid, usada en las claves "audience-N" del API
	Name            string
	Category        string
	BroaderCategory string
	ExactDefinition string
	Mode            string
	IR              decimal.Decimal // incidence rate %
	Comments        string
	Countries       []CountrySample
}

// CountrySample muestra requerida para una audiencia en un país.
type CountrySample struct {
	Country  string
	Required int
}
