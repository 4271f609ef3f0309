package bidflow_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bidm-api/internal/domain/bidflow"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del predicado de completitud de respuestas
// ──────────────────────────────────────────────────────────────────────────────

func cell(ctype string, commitment int, cpi float64) entity.ResponseCell {
	return entity.ResponseCell{
		CommitmentType: ctype,
		Commitment:     commitment,
		CPI:            decimal.NewFromFloat(cpi),
	}
}

func TestNormalizeCell_BestEffortsFuerzaCommitmentCero(t *testing.T) {
	c := cell(entity.CommitmentBestEfforts, 500, 3.0)
	bidflow.NormalizeCell(&c)
	assert.Equal(t, 0, c.Commitment,
		"best_efforts debe almacenar commitment 0 sin importar el input")

	fixed := cell(entity.CommitmentFixed, 100, 2.5)
	bidflow.NormalizeCell(&fixed)
	assert.Equal(t, 100, fixed.Commitment, "fixed conserva su commitment")
}

func TestCellComplete(t *testing.T) {
	assert.True(t, bidflow.CellComplete(cell(entity.CommitmentFixed, 100, 2.5)))
	assert.True(t, bidflow.CellComplete(cell(entity.CommitmentBestEfforts, 0, 3.0)),
		"best_efforts con cpi>0 está completa aunque commitment sea 0")
	assert.False(t, bidflow.CellComplete(cell(entity.CommitmentFixed, 0, 2.5)),
		"fixed sin commitment está incompleta")
	assert.False(t, bidflow.CellComplete(cell(entity.CommitmentFixed, 100, 0)),
		"sin cpi está incompleta")
	assert.False(t, bidflow.CellComplete(cell(entity.CommitmentBestEfforts, 0, 0)))
}

// Escenario de referencia: bid con India y USA, una audiencia, un partner.
// India fixed/100/cpi=2.5, USA best_efforts/cpi=3.0, timeline=10 días.
// La respuesta debe quedar completa y el commitment de USA almacenado en 0.
func TestResponseComplete_EscenarioIndiaUSA(t *testing.T) {
	usa := cell(entity.CommitmentBestEfforts, 350, 3.0)
	bidflow.NormalizeCell(&usa)

	resp := entity.PartnerResponse{
		BidID:     "bid-1",
		PartnerID: "partner-1",
		LOI:       15,
		Audiences: []entity.ResponseAudience{
			{
				TimelineDays: 10,
				Cells: []entity.ResponseCell{
					cell(entity.CommitmentFixed, 100, 2.5), // India
					usa,
				},
			},
		},
	}

	assert.True(t, bidflow.ResponseComplete(resp))
	assert.Equal(t, 0, resp.Audiences[0].Cells[1].Commitment,
		"USA debe haberse almacenado con commitment 0")
}

func TestResponseComplete_TimelineCeroIncompleta(t *testing.T) {
	resp := entity.PartnerResponse{
		Audiences: []entity.ResponseAudience{
			{
				TimelineDays: 0,
				Cells:        []entity.ResponseCell{cell(entity.CommitmentFixed, 100, 2.5)},
			},
		},
	}
	assert.False(t, bidflow.ResponseComplete(resp),
		"toda audiencia necesita timeline>0")
}

func TestResponseComplete_UnaCeldaIncompletaBastaParaFallar(t *testing.T) {
	resp := entity.PartnerResponse{
		Audiences: []entity.ResponseAudience{
			{
				TimelineDays: 5,
				Cells: []entity.ResponseCell{
					cell(entity.CommitmentFixed, 100, 2.5),
					cell(entity.CommitmentFixed, 0, 1.0), // incompleta
				},
			},
		},
	}
	assert.False(t, bidflow.ResponseComplete(resp))
}

// Un bid sin audiencias es vacuamente completo: la reducción AND sobre cero
// elementos es verdadera.
func TestAllComplete_VacuamenteCompletoSinAudiencias(t *testing.T) {
	assert.True(t, bidflow.AllComplete(nil))
	assert.True(t, bidflow.AllComplete([]entity.PartnerResponse{{}}))
}

func TestAllComplete_UnaRespuestaIncompletaFalla(t *testing.T) {
	ok := entity.PartnerResponse{
		Audiences: []entity.ResponseAudience{
			{TimelineDays: 7, Cells: []entity.ResponseCell{cell(entity.CommitmentFixed, 50, 1.2)}},
		},
	}
	bad := entity.PartnerResponse{
		Audiences: []entity.ResponseAudience{
			{TimelineDays: 7, Cells: []entity.ResponseCell{cell(entity.CommitmentFixed, 50, 0)}},
		},
	}
	assert.False(t, bidflow.AllComplete([]entity.PartnerResponse{ok, bad}))
	assert.True(t, bidflow.AllComplete([]entity.PartnerResponse{ok}))
}
