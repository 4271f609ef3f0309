package bidflow

import "github.com/jhoicas/bidm-api/internal/domain/entity"

// NormalizeCell aplica la regla de best efforts: si el tipo de compromiso es
// best_efforts, el commitment almacenado siempre es 0, sin importar lo que
// envíe el cliente.
func NormalizeCell(c *entity.ResponseCell) {
	if c.CommitmentType == entity.CommitmentBestEfforts {
		c.Commitment = 0
	}
}

// CellComplete indica si una celda audiencia×país está completa:
// (best_efforts OR commitment>0) AND cpi>0.
func CellComplete(c entity.ResponseCell) bool {
	committed := c.CommitmentType == entity.CommitmentBestEfforts || c.Commitment > 0
	return committed && c.CPI.IsPositive()
}

// ResponseComplete indica si la respuesta de un (partner, LOI) está completa:
// toda audiencia con timeline>0 y todas sus celdas completas.
func ResponseComplete(r entity.PartnerResponse) bool {
	for _, aud := range r.Audiences {
		if aud.TimelineDays <= 0 {
			return false
		}
		for _, cell := range aud.Cells {
			if !CellComplete(cell) {
				return false
			}
		}
	}
	return true
}

// AllComplete reduce ResponseComplete sobre todas las respuestas requeridas
// por el bid. Un bid sin audiencias (ni respuestas) es vacuamente completo.
func AllComplete(rs []entity.PartnerResponse) bool {
	for _, r := range rs {
		if !ResponseComplete(r) {
			return false
		}
	}
	return true
}
