package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardMetrics resultado crudo de las consultas agregadas del dashboard.
// Lo produce la DB; el use case lo convierte en DTO. Los ahorros y promedios
// se recalculan siempre por agregación, nunca se almacenan.
type DashboardMetrics struct {
	TotalBids         int
	ActiveBids        int            // todo estado excepto completed y rejected
	BidsByStatus      map[string]int
	TotalSavings      decimal.Decimal // Σ (costo inicial − costo final) de entregables reconciliados
	AvgTurnaroundDays float64         // promedio creación→completado de bids completados
}

// DashboardRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type DashboardRepository interface {
	Metrics(ctx context.Context) (*DashboardMetrics, error)
}
