package repository

import (
	"time"

	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CellKey identifica una celda audiencia×país dentro de la respuesta de un
// (bid, partner, LOI). Es la clave única que reemplaza la deduplicación
// "gana la asignación mayor" del diseño anterior: hay exactamente una fila
// por clave y toda escritura es un update sobre ella.
type CellKey struct {
	BidID      string
	PartnerID  string
	LOI        int
	AudienceID string
	Country    string
}

// InvoiceHeader datos de factura de un (bid, partner, LOI).
type InvoiceHeader struct {
	InvoiceDate   *time.Time
	InvoiceSent   bool
	InvoiceSerial string
	InvoiceNumber string
	InvoiceAmount decimal.Decimal
}

// ResponseRepository puerto de persistencia para respuestas de partners y
// todo lo que cuelga de ellas (celdas, asignaciones, cierre, factura).
type ResponseRepository interface {
	// ListByBid carga el agregado completo: respuestas con audiencias y celdas.
	ListByBid(bidID string) ([]*entity.PartnerResponse, error)
	Get(bidID, partnerID string, loi int) (*entity.PartnerResponse, error)

	// CreateSkeleton crea la respuesta vacía de un (partner, LOI) con sus
	// audiencias y celdas en cero. Idempotente por clave única.
	CreateSkeleton(r *entity.PartnerResponse) error

	// SaveCommitments persiste encabezado (moneda, PMF), timelines y celdas
	// de compromiso de una respuesta. Las celdas llegan ya normalizadas
	// (best_efforts ⇒ commitment 0).
	SaveCommitments(r *entity.PartnerResponse) error

	// SetAllocation actualiza la asignación de una celda existente.
	// Devuelve false si la clave no existe.
	SetAllocation(k CellKey, value int) (bool, error)

	// SetDelivered registra los completes entregados y los rechazos de
	// calidad de una celda. Ambos conteos viven por país; los totales por
	// audiencia se derivan sumando.
	SetDelivered(k CellKey, n, qualityRejects int) (bool, error)

	// SetFinalCPI fija el CPI final reconciliado de una celda entregada.
	SetFinalCPI(k CellKey, cpi decimal.Decimal) (bool, error)

	// SaveAudienceClosure guarda métricas de cierre y evaluación del partner
	// de una audiencia de respuesta.
	SaveAudienceClosure(a *entity.ResponseAudience) error

	SetFieldCloseDate(bidID, partnerID string, loi int, date time.Time) error
	SaveInvoiceHeader(bidID, partnerID string, loi int, h InvoiceHeader) error

	// MetricsByBids agrega los totales operativos de los listados por fase:
	// asignado, entregado, rechazos de calidad, promedios de LOI/IR finales
	// y monto facturado. Bids sin respuestas no aparecen en el mapa.
	MetricsByBids(bidIDs []string) (map[string]entity.BidListMetrics, error)
}
