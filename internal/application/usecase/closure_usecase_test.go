package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
)

func newClosureUseCase(s *memStore) *usecase.ClosureUseCase {
	return usecase.NewClosureUseCase(
		&fakeBidRepo{s: s},
		&fakeResponseRepo{s: s},
		&fakeAccessRepo{s: s},
		&fakePartnerRepo{names: map[string]string{"p1": "Acme Panels"}},
		&fakeTx{s: s},
	)
}

// seedClosureBid deja el bid en closure con campo asignado en ambos países.
func seedClosureBid(s *memStore) *entity.Bid {
	b := seedDraftBid(s)
	s.bids[b.ID].Status = entity.StatusClosure
	cells := s.responses[0].Audiences[0].Cells
	cells[0].Allocation = 80 // India
	cells[1].Allocation = 40 // USA
	return s.bids[b.ID]
}

// Los rechazos de calidad se registran por país, en la celda, junto a lo
// entregado. El total por audiencia nunca se escribe: se deriva sumando.

func TestSaveClosure_GuardaRechazosPorPais(t *testing.T) {
	s := newMemStore()
	b := seedClosureBid(s)
	uc := newClosureUseCase(s)

	err := uc.SaveClosure(context.Background(), owner, b.ID, dto.SaveClosureRequest{
		Cells: []dto.ClosureCellEntry{
			{PartnerID: "p1", LOI: 10, AudienceID: "aud-1", Country: "India",
				NDelivered: 70, QualityRejects: 5},
			{PartnerID: "p1", LOI: 10, AudienceID: "aud-1", Country: "USA",
				NDelivered: 30, QualityRejects: 2},
		},
	})
	require.NoError(t, err)

	cells := s.responses[0].Audiences[0].Cells
	assert.Equal(t, 5, cells[0].QualityRejects)
	assert.Equal(t, 2, cells[1].QualityRejects)
	require.NotNil(t, cells[0].NDelivered)
	assert.Equal(t, 70, *cells[0].NDelivered)
}

func TestGetClosure_SumaRechazosPorAudiencia(t *testing.T) {
	s := newMemStore()
	b := seedClosureBid(s)
	cells := s.responses[0].Audiences[0].Cells
	cells[0].QualityRejects = 5
	cells[1].QualityRejects = 2
	uc := newClosureUseCase(s)

	view, err := uc.GetClosure(owner, b.ID)
	require.NoError(t, err)
	require.Len(t, view.Audiences, 1)
	av := view.Audiences[0]
	assert.Equal(t, 7, av.QualityRejects, "el total por audiencia es la suma de sus países")
	require.Len(t, av.Cells, 2)
	assert.Equal(t, 5, av.Cells[0].QualityRejects)
	assert.Equal(t, 2, av.Cells[1].QualityRejects)
}

func TestSaveClosure_RechazosNegativosInvalidos(t *testing.T) {
	s := newMemStore()
	b := seedClosureBid(s)
	uc := newClosureUseCase(s)

	err := uc.SaveClosure(context.Background(), owner, b.ID, dto.SaveClosureRequest{
		Cells: []dto.ClosureCellEntry{
			{PartnerID: "p1", LOI: 10, AudienceID: "aud-1", Country: "India",
				NDelivered: 70, QualityRejects: -1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveClosure_CeldaSinAsignacionRechazada(t *testing.T) {
	s := newMemStore()
	b := seedClosureBid(s)
	s.responses[0].Audiences[0].Cells[1].Allocation = 0
	uc := newClosureUseCase(s)

	err := uc.SaveClosure(context.Background(), owner, b.ID, dto.SaveClosureRequest{
		Cells: []dto.ClosureCellEntry{
			{PartnerID: "p1", LOI: 10, AudienceID: "aud-1", Country: "USA", NDelivered: 10},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveClosure_SoloEnClosure(t *testing.T) {
	s := newMemStore()
	b := seedClosureBid(s)
	s.bids[b.ID].Status = entity.StatusInField
	uc := newClosureUseCase(s)

	err := uc.SaveClosure(context.Background(), owner, b.ID, dto.SaveClosureRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
