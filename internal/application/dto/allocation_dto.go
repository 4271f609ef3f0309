package dto

import "github.com/shopspring/decimal"

// SetAllocationRequest asigna muestra a una celda concreta del grid de campo.
type SetAllocationRequest struct {
	PartnerID  string `json:"partner_id"`
	LOI        int    `json:"loi"`
	AudienceID string `json:"audience_id"`
	Country    string `json:"country"`
	Allocation int    `json:"allocation"`
}

// AllocationCellView celda del grid: compromiso del partner más lo asignado.
type AllocationCellView struct {
	PartnerID      string          `json:"partner_id"`
	PartnerName    string          `json:"partner_name"`
	LOI            int             `json:"loi"`
	CommitmentType string          `json:"commitment_type"`
	Commitment     int             `json:"commitment"`
	CPI            decimal.Decimal `json:"cpi"`
	Allocation     int             `json:"allocation"`
}

// AllocationCountryView país dentro de una audiencia: muestra requerida,
// total asignado y las celdas por partner/LOI.
type AllocationCountryView struct {
	Country   string               `json:"country"`
	Required  int                  `json:"required"`
	Allocated int                  `json:"allocated"`
	Cells     []AllocationCellView `json:"cells"`
}

// AllocationAudienceView audiencia del grid de asignación.
type AllocationAudienceView struct {
	AudienceID string                  `json:"audience_id"`
	Ordinal    int                     `json:"ordinal"`
	Name       string                  `json:"name"`
	Countries  []AllocationCountryView `json:"countries"`
}

// AllocationGridResponse grid completo de asignación de campo de un bid.
type AllocationGridResponse struct {
	BidID     string                   `json:"bid_id"`
	BidNumber int                      `json:"bid_number"`
	Audiences []AllocationAudienceView `json:"audiences"`
}

// SetAllocationResponse resultado de asignar: se persiste siempre, pero si el
// total por país supera la muestra requerida se devuelve una advertencia.
type SetAllocationResponse struct {
	Saved         bool   `json:"saved"`
	Warning       string `json:"warning,omitempty"`
	TotalAssigned int    `json:"total_assigned"`
	Required      int    `json:"required"`
}
