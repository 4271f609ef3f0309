package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un bid. La fase de recolección de respuestas
// ocurre dentro de draft y no se persiste como estado propio.
const (
	StatusDraft           = "draft"
	StatusInField         = "infield"
	StatusClosure         = "closure"
	StatusReadyForInvoice = "ready_for_invoice"
	StatusCompleted       = "completed"
	StatusRejected        = "rejected"
)

// Bid licitación/estudio de mercado. BidNumber es el número de negocio
// secuencial visible al usuario; lo asigna la secuencia de la DB dentro de la
// transacción de creación, nunca el cliente.
type Bid struct {
	ID                 string
	BidNumber          int
	StudyName          string
	Methodology        string
	Status             string
	Team               string
	ClientID           string
	SalesContactID     string
	VendorManagerID    string
	ProjectRequirement string
	BidDate            time.Time
	CreatedBy          string
	PONumber           string // vacío hasta que el bid pasa a infield
	RejectionReason    string
	RejectionComments  string
	Countries          []string
	LOIs               []int
	PartnerIDs         []string
	Audiences          []TargetAudience
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BidListMetrics agregados operativos de un bid para los listados por fase.
// Siempre se recalculan por agregación, nunca se almacenan.
type BidListMetrics struct {
	TotalAllocated int
	TotalDelivered int
	QualityRejects int
	AvgFinalLOI    decimal.Decimal
	AvgFinalIR     decimal.Decimal
	InvoiceAmount  decimal.Decimal
}
