package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AudiencePayload audiencia objetivo dentro del agregado de bid.
// CountrySamples mapea país → muestra requerida; un país sin muestra es
// inválido.
type AudiencePayload struct {
	Name            string          `json:"name"`
	Category        string          `json:"ta_category"`
	BroaderCategory string          `json:"broader_category"`
	ExactDefinition string          `json:"exact_definition"`
	Mode            string          `json:"mode"`
	IR              decimal.Decimal `json:"ir"`
	Comments        string          `json:"comments"`
	CountrySamples  map[string]int  `json:"country_samples"`
}

// SaveBidRequest cuerpo de creación/edición del agregado Bid.
type SaveBidRequest struct {
	StudyName          string            `json:"study_name"`
	Methodology        string            `json:"methodology"`
	Team               string            `json:"team"`
	ClientID           string            `json:"client_id"`
	SalesContactID     string            `json:"sales_contact_id"`
	VendorManagerID    string            `json:"vendor_manager_id"`
	ProjectRequirement string            `json:"project_requirement"`
	BidDate            string            `json:"bid_date"` // YYYY-MM-DD
	Countries          []string          `json:"countries"`
	LOIs               []int             `json:"lois"`
	PartnerIDs         []string          `json:"partner_ids"`
	Audiences          []AudiencePayload `json:"target_audiences"`
}

// AudienceView audiencia en la respuesta del detalle de bid.
type AudienceView struct {
	ID              string          `json:"id"`
	Ordinal         int             `json:"ordinal"`
	Name            string          `json:"name"`
	Category        string          `json:"ta_category"`
	BroaderCategory string          `json:"broader_category"`
	ExactDefinition string          `json:"exact_definition"`
	Mode            string          `json:"mode"`
	IR              decimal.Decimal `json:"ir"`
	Comments        string          `json:"comments"`
	CountrySamples  map[string]int  `json:"country_samples"`
}

// BidResponse detalle completo de un bid.
type BidResponse struct {
	ID                 string         `json:"id"`
	BidNumber          int            `json:"bid_number"`
	StudyName          string         `json:"study_name"`
	Methodology        string         `json:"methodology"`
	Status             string         `json:"status"`
	Team               string         `json:"team"`
	ClientID           string         `json:"client_id,omitempty"`
	SalesContactID     string         `json:"sales_contact_id,omitempty"`
	VendorManagerID    string         `json:"vendor_manager_id,omitempty"`
	ProjectRequirement string         `json:"project_requirement"`
	BidDate            string         `json:"bid_date"`
	CreatedBy          string         `json:"created_by,omitempty"`
	PONumber           string         `json:"po_number,omitempty"`
	RejectionReason    string         `json:"rejection_reason,omitempty"`
	RejectionComments  string         `json:"rejection_comments,omitempty"`
	Countries          []string       `json:"countries"`
	LOIs               []int          `json:"lois"`
	PartnerIDs         []string       `json:"partner_ids"`
	Audiences          []AudienceView `json:"target_audiences"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// BidListMetricsView agregados operativos de una fila del listado (solo en
// los listados por fase: infield, closure, ready_for_invoice, completed).
type BidListMetricsView struct {
	TotalAllocated int             `json:"total_allocated"`
	TotalDelivered int             `json:"total_delivered"`
	QualityRejects int             `json:"quality_rejects"`
	AvgFinalLOI    decimal.Decimal `json:"avg_final_loi"`
	AvgFinalIR     decimal.Decimal `json:"avg_final_ir"`
	InvoiceAmount  decimal.Decimal `json:"invoice_amount"`
}

// BidListItem fila del listado de bids (sin el agregado completo).
type BidListItem struct {
	ID        string              `json:"id"`
	BidNumber int                 `json:"bid_number"`
	StudyName string              `json:"study_name"`
	Status    string              `json:"status"`
	Team      string              `json:"team"`
	ClientID  string              `json:"client_id,omitempty"`
	PONumber  string              `json:"po_number,omitempty"`
	Countries []string            `json:"countries"`
	LOIs      []int               `json:"lois"`
	Metrics   *BidListMetricsView `json:"metrics,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// BidListResponse listado paginado de bids visibles para el caller.
type BidListResponse struct {
	Bids  []BidListItem `json:"bids"`
	Total int           `json:"total"`
	Page  PageResponse  `json:"page"`
}

// StatusChangeRequest petición de transición de estado.
type StatusChangeRequest struct {
	Status            string `json:"status"`
	PONumber          string `json:"po_number,omitempty"`
	RejectionReason   string `json:"rejection_reason,omitempty"`
	RejectionComments string `json:"rejection_comments,omitempty"`
}
