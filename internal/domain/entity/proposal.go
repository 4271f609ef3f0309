package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proposal snapshot comercial de un bid: asignaciones seleccionadas más un
// margen. Es independiente del estado del bid; puede crearse en cualquier fase.
type Proposal struct {
	ID        string
	BidID     string
	MarginPct decimal.Decimal
	CreatedBy string
	Items     []ProposalItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProposalItem línea de propuesta para un (audiencia, país, partner, LOI).
// CPI y Allocation se copian de la respuesta del partner al momento del snapshot.
type ProposalItem struct {
	ID         string
	ProposalID string
	AudienceID string
	Country    string
	PartnerID  string
	LOI        int
	Allocation int
	CPI        decimal.Decimal
}
