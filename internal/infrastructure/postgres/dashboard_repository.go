package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura para el dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// Metrics calcula las métricas del dashboard por agregación directa. Los
// ahorros se derivan de las celdas reconciliadas, nunca de valores guardados.
func (r *DashboardRepo) Metrics(ctx context.Context) (*repository.DashboardMetrics, error) {
	m := &repository.DashboardMetrics{
		BidsByStatus: map[string]int{},
		TotalSavings: decimal.Zero,
	}

	rows, err := r.q.Query(ctx, `SELECT status, count(*) FROM bids GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("bids by status: %w", err)
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		m.BidsByStatus[status] = n
		m.TotalBids += n
		if status != entity.StatusCompleted && status != entity.StatusRejected {
			m.ActiveBids += n
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.q.QueryRow(ctx, `
		SELECT COALESCE(sum(c.allocation * c.cpi - c.n_delivered * c.final_cpi), 0)
		FROM response_cells c
		WHERE c.n_delivered > 0 AND c.final_cpi IS NOT NULL`,
	).Scan(&m.TotalSavings)
	if err != nil {
		return nil, fmt.Errorf("total savings: %w", err)
	}

	err = r.q.QueryRow(ctx, `
		SELECT COALESCE(avg(EXTRACT(EPOCH FROM (updated_at - created_at)) / 86400), 0)
		FROM bids WHERE status = $1`, entity.StatusCompleted,
	).Scan(&m.AvgTurnaroundDays)
	if err != nil {
		return nil, fmt.Errorf("avg turnaround: %w", err)
	}

	return m, nil
}
