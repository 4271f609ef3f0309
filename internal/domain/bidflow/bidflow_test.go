package bidflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/bidflow"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la tabla de transiciones. La tabla es cerrada: toda arista que no
// esté enumerada como legal debe rechazarse con ErrInvalidTransition.
// ──────────────────────────────────────────────────────────────────────────────

var legalEdges = []struct {
	from, to string
}{
	{entity.StatusDraft, entity.StatusInField},
	{entity.StatusDraft, entity.StatusRejected},
	{entity.StatusRejected, entity.StatusDraft},
	{entity.StatusInField, entity.StatusClosure},
	{entity.StatusClosure, entity.StatusInField},
	{entity.StatusClosure, entity.StatusReadyForInvoice},
	{entity.StatusReadyForInvoice, entity.StatusClosure},
	{entity.StatusReadyForInvoice, entity.StatusInField},
	{entity.StatusReadyForInvoice, entity.StatusCompleted},
}

func TestTransition_AristasLegales(t *testing.T) {
	for _, e := range legalEdges {
		_, err := bidflow.Transition(e.from, e.to)
		assert.NoError(t, err, "la arista %s→%s debe ser legal", e.from, e.to)
		assert.True(t, bidflow.CanTransition(e.from, e.to))
	}
}

// TestTransition_TablaCerrada verifica por producto cartesiano que toda arista
// fuera de la lista legal se rechaza.
func TestTransition_TablaCerrada(t *testing.T) {
	all := []string{
		entity.StatusDraft, entity.StatusInField, entity.StatusClosure,
		entity.StatusReadyForInvoice, entity.StatusCompleted, entity.StatusRejected,
	}
	isLegal := func(from, to string) bool {
		for _, e := range legalEdges {
			if e.from == from && e.to == to {
				return true
			}
		}
		return false
	}
	for _, from := range all {
		for _, to := range all {
			if isLegal(from, to) {
				continue
			}
			_, err := bidflow.Transition(from, to)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition,
				"la arista %s→%s no debe permitirse", from, to)
		}
	}
}

// Escenario explícito: closure→draft no existe en la tabla.
func TestTransition_ClosureADraftRechazada(t *testing.T) {
	_, err := bidflow.Transition(entity.StatusClosure, entity.StatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// completed es terminal: no sale ninguna arista de él.
func TestTransition_CompletedEsTerminal(t *testing.T) {
	for _, to := range []string{
		entity.StatusDraft, entity.StatusInField, entity.StatusClosure,
		entity.StatusReadyForInvoice, entity.StatusRejected,
	} {
		assert.False(t, bidflow.CanTransition(entity.StatusCompleted, to))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de requisitos por transición
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_DraftAInFieldExigePO(t *testing.T) {
	req, err := bidflow.Transition(entity.StatusDraft, entity.StatusInField)
	require.NoError(t, err)
	assert.True(t, req.PONumber, "pasar a infield exige número de PO")
	assert.False(t, req.RejectionReason)
}

func TestTransition_ReadyForInvoiceAInFieldExigePO(t *testing.T) {
	req, err := bidflow.Transition(entity.StatusReadyForInvoice, entity.StatusInField)
	require.NoError(t, err)
	assert.True(t, req.PONumber)
}

func TestTransition_RechazoExigeMotivo(t *testing.T) {
	req, err := bidflow.Transition(entity.StatusDraft, entity.StatusRejected)
	require.NoError(t, err)
	assert.True(t, req.RejectionReason, "rechazar exige motivo")
}

func TestTransition_ReactivacionSinRequisitos(t *testing.T) {
	req, err := bidflow.Transition(entity.StatusRejected, entity.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, bidflow.Requirements{}, req)
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, bidflow.IsValidStatus(entity.StatusDraft))
	assert.True(t, bidflow.IsValidStatus(entity.StatusCompleted))
	assert.False(t, bidflow.IsValidStatus("partner_response"),
		"la fase de respuestas no es un estado persistido")
	assert.False(t, bidflow.IsValidStatus("invoiced"))
}
