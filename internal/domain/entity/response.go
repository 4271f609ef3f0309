package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de compromiso de un partner sobre una celda audiencia×país.
const (
	CommitmentFixed       = "fixed"
	CommitmentBestEfforts = "best_efforts"
)

// PartnerResponse respuesta de un partner para un (bid, partner, LOI).
// Agrupa las celdas por audiencia y lleva los datos de facturación del partner.
type PartnerResponse struct {
	ID             string
	BidID          string
	PartnerID      string
	LOI            int
	Currency       string
	PMF            decimal.Decimal // price multiplying factor
	FieldCloseDate *time.Time
	InvoiceDate    *time.Time
	InvoiceSent    bool
	InvoiceSerial  string
	InvoiceNumber  string
	InvoiceAmount  decimal.Decimal
	Audiences      []ResponseAudience
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ResponseAudience datos por audiencia dentro de una respuesta: timeline de
// campo y, tras el cierre, las métricas finales y la evaluación del partner.
type ResponseAudience struct {
	ID                   string
	ResponseID           string
	AudienceID           string
	TimelineDays         int
	Comments             string
	FinalLOI             *int
	FinalIR              *decimal.Decimal
	FinalTimeline        *int
	CommunicationRating  int // 1-5
	EngagementRating     int // 1-5
	ProblemSolvingRating int // 1-5
	AdditionalFeedback   string
	Cells                []ResponseCell
}

// ResponseCell celda de compromiso por país. Commitment se fuerza a 0 cuando
// el tipo es best_efforts, sin importar lo que envíe el cliente.
// Allocation, NDelivered y QualityRejects se rellenan en fases posteriores
// del ciclo; FinalCPI lo fija el admin en la reconciliación de factura.
// Los rechazos de calidad se llevan por país: cualquier total por audiencia
// o por bid se deriva sumando celdas.
type ResponseCell struct {
	ID                 string
	ResponseAudienceID string
	Country            string
	CommitmentType     string // fixed | best_efforts
	Commitment         int
	CPI                decimal.Decimal
	Allocation         int
	NDelivered         *int
	QualityRejects     int
	FinalCPI           *decimal.Decimal
}

// TotalQualityRejects suma los rechazos de calidad de las celdas de la
// audiencia. El total nunca se almacena: siempre se deriva por país.
func (a ResponseAudience) TotalQualityRejects() int {
	total := 0
	for _, c := range a.Cells {
		total += c.QualityRejects
	}
	return total
}

// InitialCost costo inicial de la celda: allocation × cpi.
func (c ResponseCell) InitialCost() decimal.Decimal {
	return c.CPI.Mul(decimal.NewFromInt(int64(c.Allocation)))
}

// Delivered devuelve los completes entregados (0 si aún no hay cierre).
func (c ResponseCell) Delivered() int {
	if c.NDelivered == nil {
		return 0
	}
	return *c.NDelivered
}
