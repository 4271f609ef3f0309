package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bidm-api/internal/application/usecase"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
)

func newInvoiceUseCase(s *memStore) *usecase.InvoiceUseCase {
	return usecase.NewInvoiceUseCase(
		&fakeBidRepo{s: s},
		&fakeResponseRepo{s: s},
		&fakeAccessRepo{s: s},
		&fakePartnerRepo{names: map[string]string{"p1": "Acme Panels"}},
		&fakeTx{s: s},
		zerolog.Nop(),
	)
}

// seedInvoiceBid deja el bid en ready_for_invoice con campo asignado y
// entregado en la celda de India.
func seedInvoiceBid(s *memStore) *entity.Bid {
	b := seedDraftBid(s)
	s.bids[b.ID].Status = entity.StatusReadyForInvoice
	delivered := 70
	cells := s.responses[0].Audiences[0].Cells
	cells[0].Allocation = 80
	cells[0].NDelivered = &delivered
	return s.bids[b.ID]
}

func TestSubmit_SoloDesdeReadyForInvoice(t *testing.T) {
	s := newMemStore()
	b := seedInvoiceBid(s)
	s.bids[b.ID].Status = entity.StatusClosure
	uc := newInvoiceUseCase(s)

	_, err := uc.Submit(context.Background(), owner, b.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSubmit_EntregableSinCPIFinalBloquea(t *testing.T) {
	s := newMemStore()
	b := seedInvoiceBid(s)
	uc := newInvoiceUseCase(s)

	_, err := uc.Submit(context.Background(), owner, b.ID)
	assert.ErrorIs(t, err, domain.ErrIncompleteInvoice)
	assert.Equal(t, entity.StatusReadyForInvoice, s.bids[b.ID].Status,
		"un submit bloqueado no debe completar el bid")
}

func TestSubmit_ConTodoReconciliadoCompleta(t *testing.T) {
	s := newMemStore()
	b := seedInvoiceBid(s)
	final := decimal.NewFromFloat(2.2)
	s.responses[0].Audiences[0].Cells[0].FinalCPI = &final
	uc := newInvoiceUseCase(s)

	out, err := uc.Submit(context.Background(), owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, out.Status)
	assert.Equal(t, b.BidNumber, out.BidNumber)
	assert.Equal(t, entity.StatusCompleted, s.bids[b.ID].Status)
}

func TestSubmit_CPIFinalCeroTambienBloquea(t *testing.T) {
	s := newMemStore()
	b := seedInvoiceBid(s)
	zero := decimal.Zero
	s.responses[0].Audiences[0].Cells[0].FinalCPI = &zero
	uc := newInvoiceUseCase(s)

	_, err := uc.Submit(context.Background(), owner, b.ID)
	assert.ErrorIs(t, err, domain.ErrIncompleteInvoice)
}

func TestSubmit_CarreraPerdidaRetornaConflict(t *testing.T) {
	s := newMemStore()
	b := seedInvoiceBid(s)
	final := decimal.NewFromFloat(2.2)
	s.responses[0].Audiences[0].Cells[0].FinalCPI = &final
	s.statusRaceLost = true
	uc := newInvoiceUseCase(s)

	_, err := uc.Submit(context.Background(), owner, b.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
