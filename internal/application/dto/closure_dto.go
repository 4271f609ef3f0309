package dto

import "github.com/shopspring/decimal"

// El cierre sólo opera sobre celdas con asignación > 0: los países y
// audiencias sin campo asignado no aparecen en la vista ni aceptan escritura.

// ClosureCellView celda de cierre de un país con campo asignado. Los rechazos
// de calidad se reportan aquí, por país, junto a lo entregado.
type ClosureCellView struct {
	PartnerID      string           `json:"partner_id"`
	LOI            int              `json:"loi"`
	AudienceID     string           `json:"audience_id"`
	Country        string           `json:"country"`
	Allocation     int              `json:"allocation"`
	CPI            decimal.Decimal  `json:"cpi"`
	NDelivered     *int             `json:"n_delivered"`
	QualityRejects int              `json:"quality_rejects"`
	FinalCPI       *decimal.Decimal `json:"final_cpi"`
}

// ClosureAudienceView audiencia en la vista de cierre, con sus métricas
// finales y la evaluación del partner por (partner, LOI, audiencia).
// QualityRejects es un total derivado: suma de los rechazos por país de sus
// celdas, nunca un valor almacenado aparte.
type ClosureAudienceView struct {
	PartnerID            string            `json:"partner_id"`
	PartnerName          string            `json:"partner_name"`
	LOI                  int               `json:"loi"`
	AudienceID           string            `json:"audience_id"`
	Ordinal              int               `json:"ordinal"`
	Name                 string            `json:"name"`
	FinalLOI             *int              `json:"final_loi"`
	FinalIR              *decimal.Decimal  `json:"final_ir"`
	FinalTimeline        *int              `json:"final_timeline"`
	QualityRejects       int               `json:"quality_rejects"`
	CommunicationRating  int               `json:"communication_rating"`
	EngagementRating     int               `json:"engagement_rating"`
	ProblemSolvingRating int               `json:"problem_solving_rating"`
	AdditionalFeedback   string            `json:"additional_feedback,omitempty"`
	Cells                []ClosureCellView `json:"countries"`
}

// ClosureView vista editable del cierre, ya filtrada por asignación > 0.
type ClosureView struct {
	BidID     string                `json:"bid_id"`
	BidNumber int                   `json:"bid_number"`
	Status    string                `json:"status"`
	Audiences []ClosureAudienceView `json:"audiences"`
}

// ClosureCellEntry escritura de entregas y rechazos de calidad sobre una
// celda asignada, ambos por país.
type ClosureCellEntry struct {
	PartnerID      string `json:"partner_id"`
	LOI            int    `json:"loi"`
	AudienceID     string `json:"audience_id"`
	Country        string `json:"country"`
	NDelivered     int    `json:"n_delivered"`
	QualityRejects int    `json:"quality_rejects"`
}

// ClosureAudienceEntry métricas finales de una audiencia por (partner, LOI).
type ClosureAudienceEntry struct {
	PartnerID            string           `json:"partner_id"`
	LOI                  int              `json:"loi"`
	AudienceID           string           `json:"audience_id"`
	FinalLOI             *int             `json:"final_loi"`
	FinalIR              *decimal.Decimal `json:"final_ir"`
	FinalTimeline        *int             `json:"final_timeline"`
	CommunicationRating  int              `json:"communication_rating"`
	EngagementRating     int              `json:"engagement_rating"`
	ProblemSolvingRating int              `json:"problem_solving_rating"`
	AdditionalFeedback   string           `json:"additional_feedback,omitempty"`
}

// FieldCloseDateEntry fecha de cierre de campo por (partner, LOI).
type FieldCloseDateEntry struct {
	PartnerID      string `json:"partner_id"`
	LOI            int    `json:"loi"`
	FieldCloseDate string `json:"field_close_date"` // YYYY-MM-DD
}

// SaveClosureRequest escritura del cierre: celdas, métricas de audiencia y
// fechas de cierre de campo, todo en una transacción.
type SaveClosureRequest struct {
	Cells           []ClosureCellEntry     `json:"cells"`
	Audiences       []ClosureAudienceEntry `json:"audiences"`
	FieldCloseDates []FieldCloseDateEntry  `json:"field_close_dates"`
}

// ClosureSummaryRow agregado por partner del resumen de cierre.
type ClosureSummaryRow struct {
	PartnerID      string          `json:"partner_id"`
	PartnerName    string          `json:"partner_name"`
	TotalAllocated int             `json:"total_allocated"`
	TotalDelivered int             `json:"total_delivered"`
	InitialCost    decimal.Decimal `json:"initial_cost"`
	FinalCost      decimal.Decimal `json:"final_cost"`
	Savings        decimal.Decimal `json:"savings"`
}

// ClosureSummaryResponse resumen de cierre del bid completo.
type ClosureSummaryResponse struct {
	BidID          string              `json:"bid_id"`
	BidNumber      int                 `json:"bid_number"`
	Partners       []ClosureSummaryRow `json:"partners"`
	TotalDelivered int                 `json:"total_delivered"`
	TotalSavings   decimal.Decimal     `json:"total_savings"`
}
