package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas agregadas de la operación de bids.
type DashboardResponse struct {
	TotalBids         int             `json:"total_bids"`
	ActiveBids        int             `json:"active_bids"`
	BidsByStatus      map[string]int  `json:"bids_by_status"`
	TotalSavings      decimal.Decimal `json:"total_savings"`
	AvgTurnaroundDays float64         `json:"avg_turnaround_days"`
}
