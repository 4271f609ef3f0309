package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de precios de propuesta
// ──────────────────────────────────────────────────────────────────────────────

// Margen 30% sobre cpi 2.50 → precio de venta 3.25.
func TestSalesPrice_VectorMargen30(t *testing.T) {
	got := pricing.SalesPrice(dec("2.50"), dec("30"))
	assert.True(t, got.Equal(dec("3.25")), "esperado 3.25, obtenido %s", got)
}

func TestSalesPrice_MargenCeroDevuelveCPI(t *testing.T) {
	got := pricing.SalesPrice(dec("4.10"), decimal.Zero)
	assert.True(t, got.Equal(dec("4.10")))
}

func TestCostRevenueYMargenEfectivo(t *testing.T) {
	cpi := dec("2.50")
	sales := pricing.SalesPrice(cpi, dec("30"))

	cost := pricing.Cost(200, cpi)
	revenue := pricing.Revenue(200, sales)

	assert.True(t, cost.Equal(dec("500")), "cost = 200×2.50")
	assert.True(t, revenue.Equal(dec("650")), "revenue = 200×3.25")

	margin := pricing.EffectiveMargin(cost, revenue)
	assert.True(t, margin.Equal(dec("30")), "margen efectivo recupera el 30%%, obtenido %s", margin)
}

func TestEffectiveMargin_CostoCeroNoDividePorCero(t *testing.T) {
	assert.True(t, pricing.EffectiveMargin(decimal.Zero, dec("100")).IsZero())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "3.33", pricing.Round2(dec("3.3333")).StringFixed(2))
	assert.Equal(t, "3.34", pricing.Round2(dec("3.335")).StringFixed(2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Costos finales y ahorros de factura
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalCostYSavings(t *testing.T) {
	finalCost := pricing.FinalCost(90, dec("2.40"))
	assert.True(t, finalCost.Equal(dec("216")))

	initial := pricing.Cost(100, dec("2.50")) // 250
	savings := pricing.Savings(initial, finalCost)
	assert.True(t, savings.Equal(dec("34")), "savings = 250−216")
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard del submit de factura: se bloquea si cualquier entregable del bid
// (cualquier partner, cualquier LOI) tiene n_delivered>0 sin CPI final.
// ──────────────────────────────────────────────────────────────────────────────

func delivered(n int, finalCPI *decimal.Decimal) entity.ResponseCell {
	return entity.ResponseCell{
		CommitmentType: entity.CommitmentFixed,
		Commitment:     n,
		CPI:            dec("2.00"),
		Allocation:     n,
		NDelivered:     &n,
		FinalCPI:       finalCPI,
	}
}

func TestMissingFinalCPI_BloqueaConEntregableSinCPIFinal(t *testing.T) {
	fcpi := dec("1.80")
	rs := []entity.PartnerResponse{
		{
			PartnerID: "p1", LOI: 10,
			Audiences: []entity.ResponseAudience{
				{Cells: []entity.ResponseCell{delivered(50, &fcpi)}},
			},
		},
		{
			// otro partner, otro LOI: el guard cruza todo el bid
			PartnerID: "p2", LOI: 20,
			Audiences: []entity.ResponseAudience{
				{Cells: []entity.ResponseCell{delivered(30, nil)}},
			},
		},
	}
	assert.True(t, pricing.MissingFinalCPI(rs))
}

func TestMissingFinalCPI_CPIFinalCeroTambienBloquea(t *testing.T) {
	zero := decimal.Zero
	rs := []entity.PartnerResponse{
		{Audiences: []entity.ResponseAudience{
			{Cells: []entity.ResponseCell{delivered(10, &zero)}},
		}},
	}
	assert.True(t, pricing.MissingFinalCPI(rs))
}

func TestMissingFinalCPI_TodoReconciliadoPermiteSubmit(t *testing.T) {
	fcpi := dec("2.10")
	rs := []entity.PartnerResponse{
		{Audiences: []entity.ResponseAudience{
			{Cells: []entity.ResponseCell{delivered(50, &fcpi)}},
		}},
	}
	assert.False(t, pricing.MissingFinalCPI(rs))
}

func TestMissingFinalCPI_SinEntregasNoBloquea(t *testing.T) {
	rs := []entity.PartnerResponse{
		{Audiences: []entity.ResponseAudience{
			{Cells: []entity.ResponseCell{{
				CommitmentType: entity.CommitmentFixed,
				Commitment:     100,
				CPI:            dec("2.50"),
				Allocation:     100,
			}}},
		}},
	}
	assert.False(t, pricing.MissingFinalCPI(rs),
		"celdas sin n_delivered no participan del guard")
}
