// Package pricing concentra los cálculos derivados de dinero del sistema:
// precios de propuesta, costos de factura y ahorros. Todo se opera con
// decimal para no perder precisión; el redondeo a 2 decimales ocurre solo en
// los bordes (respuestas API), nunca en cálculos intermedios.
package pricing

import (
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SalesPrice precio de venta por complete: cpi × (1 + margin/100).
func SalesPrice(cpi, marginPct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(marginPct.Div(hundred))
	return cpi.Mul(factor)
}

// Cost costo de una línea: allocation × cpi.
func Cost(allocation int, cpi decimal.Decimal) decimal.Decimal {
	return cpi.Mul(decimal.NewFromInt(int64(allocation)))
}

// Revenue ingreso de una línea: allocation × sales_price.
func Revenue(allocation int, salesPrice decimal.Decimal) decimal.Decimal {
	return salesPrice.Mul(decimal.NewFromInt(int64(allocation)))
}

// FinalCost costo final de un entregable: n_delivered × final_cpi.
func FinalCost(nDelivered int, finalCPI decimal.Decimal) decimal.Decimal {
	return finalCPI.Mul(decimal.NewFromInt(int64(nDelivered)))
}

// Savings ahorro de una línea: costo inicial − costo final.
func Savings(initialCost, finalCost decimal.Decimal) decimal.Decimal {
	return initialCost.Sub(finalCost)
}

// EffectiveMargin margen efectivo en %: (revenue − cost) / cost × 100.
// Con costo cero devuelve cero para no dividir por cero.
func EffectiveMargin(cost, revenue decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return revenue.Sub(cost).Div(cost).Mul(hundred)
}

// Round2 redondeo half-up a 2 decimales para montos expuestos al cliente.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MissingFinalCPI recorre todas las respuestas del bid y reporta si existe
// algún entregable con n_delivered>0 sin CPI final positivo. El submit de
// factura se bloquea mientras esto sea cierto, cruzando todos los partners y
// LOIs, no solo el que se está viendo.
func MissingFinalCPI(rs []entity.PartnerResponse) bool {
	for _, r := range rs {
		for _, aud := range r.Audiences {
			for _, cell := range aud.Cells {
				if cell.Delivered() <= 0 {
					continue
				}
				if cell.FinalCPI == nil || !cell.FinalCPI.IsPositive() {
					return true
				}
			}
		}
	}
	return false
}
