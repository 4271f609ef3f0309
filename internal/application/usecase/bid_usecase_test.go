package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/access"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
)

var owner = access.Subject{UserID: "u1", Role: entity.RoleAdmin, Team: "POD 1"}

func newBidUseCase(s *memStore) *usecase.BidUseCase {
	return usecase.NewBidUseCase(
		&fakeBidRepo{s: s},
		&fakeResponseRepo{s: s},
		&fakeAccessRepo{s: s},
		&fakeTx{s: s},
		zerolog.Nop(),
	)
}

// seedDraftBid deja en el store un bid en draft con una audiencia (India y
// USA), el partner p1 invitado y su respuesta de LOI 10 ya contestada.
func seedDraftBid(s *memStore) *entity.Bid {
	b := s.addBid(&entity.Bid{
		ID:         "bid-1",
		BidNumber:  40001,
		StudyName:  "Brand tracker",
		Status:     entity.StatusDraft,
		Team:       "POD 1",
		CreatedBy:  "u1",
		Countries:  []string{"India", "USA"},
		LOIs:       []int{10},
		PartnerIDs: []string{"p1"},
		Audiences: []entity.TargetAudience{{
			ID:      "aud-1",
			BidID:   "bid-1",
			Ordinal: 0,
			Name:    "Gamers",
			Countries: []entity.CountrySample{
				{Country: "India", Required: 100},
				{Country: "USA", Required: 50},
			},
		}},
	})
	s.responses = append(s.responses, &entity.PartnerResponse{
		ID:        "resp-1",
		BidID:     "bid-1",
		PartnerID: "p1",
		LOI:       10,
		Currency:  "USD",
		Audiences: []entity.ResponseAudience{{
			ID:           "ra-1",
			ResponseID:   "resp-1",
			AudienceID:   "aud-1",
			TimelineDays: 12,
			Cells: []entity.ResponseCell{
				{ID: "cell-1", ResponseAudienceID: "ra-1", Country: "India",
					CommitmentType: entity.CommitmentFixed, Commitment: 100,
					CPI: decimal.NewFromFloat(2.5)},
				{ID: "cell-2", ResponseAudienceID: "ra-1", Country: "USA",
					CommitmentType: entity.CommitmentBestEfforts,
					CPI:            decimal.NewFromFloat(3)},
			},
		}},
	})
	return b
}

func saveRequestFor(b *entity.Bid) dto.SaveBidRequest {
	auds := make([]dto.AudiencePayload, 0, len(b.Audiences))
	for _, a := range b.Audiences {
		samples := map[string]int{}
		for _, cs := range a.Countries {
			samples[cs.Country] = cs.Required
		}
		auds = append(auds, dto.AudiencePayload{Name: a.Name, CountrySamples: samples})
	}
	return dto.SaveBidRequest{
		StudyName:  b.StudyName,
		Team:       b.Team,
		Countries:  b.Countries,
		LOIs:       b.LOIs,
		PartnerIDs: b.PartnerIDs,
		Audiences:  auds,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: editar un bid en draft no puede destruir lo que los partners ya
// respondieron. Las audiencias conservan su id por ordinal y los esqueletos
// solo completan lo que falta.
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ConservaRespuestasDePartners(t *testing.T) {
	s := newMemStore()
	b := seedDraftBid(s)
	uc := newBidUseCase(s)

	req := saveRequestFor(b)
	req.StudyName = "Brand tracker v2"
	out, err := uc.Update(context.Background(), owner, b.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Brand tracker v2", out.StudyName)

	// La audiencia mantiene su id: nada colgado de ella se pierde.
	require.Len(t, s.bids[b.ID].Audiences, 1)
	assert.Equal(t, "aud-1", s.bids[b.ID].Audiences[0].ID)

	r := s.response(b.ID, "p1", 10)
	require.NotNil(t, r)
	require.Len(t, r.Audiences, 1, "la respuesta del partner debe sobrevivir la edición")
	ra := r.Audiences[0]
	assert.Equal(t, "ra-1", ra.ID)
	assert.Equal(t, 12, ra.TimelineDays)
	require.Len(t, ra.Cells, 2)
	assert.Equal(t, 100, ra.Cells[0].Commitment)
	assert.True(t, decimal.NewFromFloat(2.5).Equal(ra.Cells[0].CPI))
}

func TestUpdate_AudienciaNuevaSoloAgrega(t *testing.T) {
	s := newMemStore()
	b := seedDraftBid(s)
	uc := newBidUseCase(s)

	req := saveRequestFor(b)
	req.Audiences = append(req.Audiences, dto.AudiencePayload{
		Name:           "Padres",
		CountrySamples: map[string]int{"India": 30},
	})
	_, err := uc.Update(context.Background(), owner, b.ID, req)
	require.NoError(t, err)

	require.Len(t, s.bids[b.ID].Audiences, 2)
	assert.Equal(t, "aud-1", s.bids[b.ID].Audiences[0].ID)
	assert.NotEmpty(t, s.bids[b.ID].Audiences[1].ID)

	// La respuesta existente gana el esqueleto de la audiencia nueva sin
	// perder lo respondido en la primera.
	r := s.response(b.ID, "p1", 10)
	require.Len(t, r.Audiences, 2)
	assert.Equal(t, 12, r.Audiences[0].TimelineDays)
	assert.Equal(t, 0, r.Audiences[1].TimelineDays)
	assert.Len(t, r.Audiences[1].Cells, 1)
}

func TestUpdate_SoloEnDraft(t *testing.T) {
	s := newMemStore()
	b := seedDraftBid(s)
	s.bids[b.ID].Status = entity.StatusInField
	uc := newBidUseCase(s)

	_, err := uc.Update(context.Background(), owner, b.ID, saveRequestFor(b))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_SinAccesoRetornaForbidden(t *testing.T) {
	s := newMemStore()
	b := seedDraftBid(s)
	uc := newBidUseCase(s)

	stranger := access.Subject{UserID: "u9", Role: entity.RoleAdmin, Team: "POD 2"}
	_, err := uc.Update(context.Background(), stranger, b.ID, saveRequestFor(b))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangeStatus: guardas de la máquina de estados evaluadas en el caso de uso.
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_Guardas(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		req     dto.StatusChangeRequest
		wantErr error
	}{
		{
			name:    "infield sin PO",
			from:    entity.StatusDraft,
			req:     dto.StatusChangeRequest{Status: entity.StatusInField},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "rechazo sin motivo",
			from:    entity.StatusDraft,
			req:     dto.StatusChangeRequest{Status: entity.StatusRejected},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "completed solo via factura",
			from:    entity.StatusReadyForInvoice,
			req:     dto.StatusChangeRequest{Status: entity.StatusCompleted},
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "arista inexistente",
			from:    entity.StatusDraft,
			req:     dto.StatusChangeRequest{Status: entity.StatusClosure},
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name:    "estado desconocido",
			from:    entity.StatusDraft,
			req:     dto.StatusChangeRequest{Status: "invoiced"},
			wantErr: domain.ErrInvalidInput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newMemStore()
			b := seedDraftBid(s)
			s.bids[b.ID].Status = tc.from
			uc := newBidUseCase(s)

			_, err := uc.ChangeStatus(context.Background(), owner, b.ID, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.from, s.bids[b.ID].Status, "una guarda fallida no debe mutar el estado")
		})
	}
}

func TestChangeStatus_InFieldExigeRespuestasCompletas(t *testing.T) {
	s := newMemStore()
	b := seedDraftBid(s)
	s.responses[0].Audiences[0].TimelineDays = 0
	uc := newBidUseCase(s)

	_, err := uc.ChangeStatus(context.Background(), owner, b.ID, dto.StatusChangeRequest{
		Status:   entity.StatusInField,
		PONumber: "PO-77",
	})
	assert.ErrorIs(t, err, domain.ErrIncompleteResponse)
	assert.Equal(t, entity.StatusDraft, s.bids[b.ID].Status)
}

func TestChangeStatus_InFieldConPOPersisteYTransiciona(t *testing.T) {
	s := newMemStore()
	b := seedDraftBid(s)
	uc := newBidUseCase(s)

	out, err := uc.ChangeStatus(context.Background(), owner, b.ID, dto.StatusChangeRequest{
		Status:   entity.StatusInField,
		PONumber: " PO-77 ",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInField, out.Status)
	assert.Equal(t, "PO-77", s.bids[b.ID].PONumber, "el PO se guarda recortado")
}

func TestChangeStatus_RechazoYReactivacion(t *testing.T) {
	s := newMemStore()
	b := seedDraftBid(s)
	uc := newBidUseCase(s)

	_, err := uc.ChangeStatus(context.Background(), owner, b.ID, dto.StatusChangeRequest{
		Status:            entity.StatusRejected,
		RejectionReason:   "budget",
		RejectionComments: "cliente pospone el estudio",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, s.bids[b.ID].Status)
	assert.Equal(t, "budget", s.bids[b.ID].RejectionReason)

	out, err := uc.ChangeStatus(context.Background(), owner, b.ID, dto.StatusChangeRequest{
		Status: entity.StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, out.Status)
	assert.Empty(t, s.bids[b.ID].RejectionReason, "reactivar limpia el rechazo")
	assert.Empty(t, s.bids[b.ID].RejectionComments)
}

func TestChangeStatus_CarreraPerdidaRetornaConflict(t *testing.T) {
	s := newMemStore()
	b := seedDraftBid(s)
	s.statusRaceLost = true
	uc := newBidUseCase(s)

	_, err := uc.ChangeStatus(context.Background(), owner, b.ID, dto.StatusChangeRequest{
		Status:   entity.StatusInField,
		PONumber: "PO-77",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
