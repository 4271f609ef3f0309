package usecase

import (
	"context"

	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// DashboardUseCase expone las métricas agregadas de la operación.
type DashboardUseCase struct {
	metrics repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(metrics repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{metrics: metrics}
}

// Metrics devuelve los agregados calculados por la DB.
func (uc *DashboardUseCase) Metrics(ctx context.Context) (*dto.DashboardResponse, error) {
	m, err := uc.metrics.Metrics(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalBids:         m.TotalBids,
		ActiveBids:        m.ActiveBids,
		BidsByStatus:      m.BidsByStatus,
		TotalSavings:      m.TotalSavings,
		AvgTurnaroundDays: m.AvgTurnaroundDays,
	}, nil
}
