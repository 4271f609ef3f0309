package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProposalRequest genera una propuesta comercial desde las respuestas
// del bid con el margen indicado (porcentaje, p. ej. 30).
type CreateProposalRequest struct {
	MarginPct decimal.Decimal `json:"margin_pct"`
}

// ProposalItemView renglón de propuesta: el precio de venta se deriva del CPI
// con el margen (cpi × (1 + margen/100)), nunca se almacena ni se edita suelto.
type ProposalItemView struct {
	PartnerID  string          `json:"partner_id"`
	LOI        int             `json:"loi"`
	AudienceID string          `json:"audience_id"`
	Country    string          `json:"country"`
	Allocation int             `json:"allocation"`
	CPI        decimal.Decimal `json:"cpi"`
	SalesPrice decimal.Decimal `json:"sales_price"`
	Cost       decimal.Decimal `json:"cost"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ProposalResponse propuesta con totales calculados al leer.
type ProposalResponse struct {
	ID              string             `json:"id"`
	BidID           string             `json:"bid_id"`
	MarginPct       decimal.Decimal    `json:"margin_pct"`
	Items           []ProposalItemView `json:"items"`
	TotalCost       decimal.Decimal    `json:"total_cost"`
	TotalRevenue    decimal.Decimal    `json:"total_revenue"`
	EffectiveMargin decimal.Decimal    `json:"effective_margin"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ProposalListItem fila del listado de propuestas de un bid.
type ProposalListItem struct {
	ID        string          `json:"id"`
	MarginPct decimal.Decimal `json:"margin_pct"`
	Items     int             `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}
