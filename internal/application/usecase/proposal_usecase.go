package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/access"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/pricing"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var defaultMargin = decimal.NewFromInt(30)

// ProposalUseCase genera propuestas comerciales: snapshots de las
// asignaciones del bid con un margen. Los precios de venta, costos y totales
// se derivan siempre de CPI y margen; nunca se almacenan.
type ProposalUseCase struct {
	bids      repository.BidRepository
	grants    repository.AccessRepository
	proposals repository.ProposalRepository
	tx        TxRunner
}

// NewProposalUseCase construye el caso de uso con sus puertos.
func NewProposalUseCase(
	bids repository.BidRepository,
	grants repository.AccessRepository,
	proposals repository.ProposalRepository,
	tx TxRunner,
) *ProposalUseCase {
	return &ProposalUseCase{bids: bids, grants: grants, proposals: proposals, tx: tx}
}

// Create arma la propuesta copiando CPI y asignación de las celdas asignadas
// del bid, dentro de una transacción para que el snapshot sea consistente.
// Sin margen explícito se aplica el 30%.
func (uc *ProposalUseCase) Create(ctx context.Context, sub access.Subject, bidID string, req dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	margin := req.MarginPct
	if margin.IsZero() {
		margin = defaultMargin
	}
	if margin.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	p := &entity.Proposal{
		ID:        uuid.New().String(),
		BidID:     b.ID,
		MarginPct: margin,
		CreatedBy: sub.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.RunProposal(ctx, func(responseRepo repository.ResponseRepository, proposalRepo repository.ProposalRepository) error {
		rs, err := responseRepo.ListByBid(b.ID)
		if err != nil {
			return err
		}
		for _, r := range rs {
			for _, ra := range r.Audiences {
				for _, c := range ra.Cells {
					if c.Allocation <= 0 {
						continue
					}
					p.Items = append(p.Items, entity.ProposalItem{
						ID:         uuid.New().String(),
						AudienceID: ra.AudienceID,
						Country:    c.Country,
						PartnerID:  r.PartnerID,
						LOI:        r.LOI,
						Allocation: c.Allocation,
						CPI:        c.CPI,
					})
				}
			}
		}
		return proposalRepo.Create(p)
	})
	if err != nil {
		return nil, err
	}
	return toProposalResponse(p), nil
}

// Get devuelve la propuesta con precios y totales calculados.
func (uc *ProposalUseCase) Get(sub access.Subject, proposalID string) (*dto.ProposalResponse, error) {
	p, err := uc.proposals.GetByID(proposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := loadAuthorizedBid(uc.bids, uc.grants, sub, p.BidID); err != nil {
		return nil, err
	}
	return toProposalResponse(p), nil
}

// ListByBid lista las propuestas de un bid, la más reciente primero.
func (uc *ProposalUseCase) ListByBid(sub access.Subject, bidID string) ([]dto.ProposalListItem, error) {
	if _, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID); err != nil {
		return nil, err
	}
	list, err := uc.proposals.ListByBid(bidID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProposalListItem, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProposalListItem{
			ID:        p.ID,
			MarginPct: p.MarginPct,
			Items:     len(p.Items),
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

// Delete elimina una propuesta. Lo puede quien gestiona el bid o su autor.
func (uc *ProposalUseCase) Delete(sub access.Subject, proposalID string) error {
	p, err := uc.proposals.GetByID(proposalID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	b, err := uc.bids.GetByID(p.BidID)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if p.CreatedBy != sub.UserID && !access.CanManage(sub, b.Team, b.CreatedBy) {
		return domain.ErrForbidden
	}
	return uc.proposals.Delete(proposalID)
}

func toProposalResponse(p *entity.Proposal) *dto.ProposalResponse {
	out := &dto.ProposalResponse{
		ID:        p.ID,
		BidID:     p.BidID,
		MarginPct: p.MarginPct,
		CreatedAt: p.CreatedAt,
	}
	for _, it := range p.Items {
		salesPrice := pricing.SalesPrice(it.CPI, p.MarginPct)
		cost := pricing.Cost(it.Allocation, it.CPI)
		revenue := pricing.Revenue(it.Allocation, salesPrice)
		out.Items = append(out.Items, dto.ProposalItemView{
			PartnerID:  it.PartnerID,
			LOI:        it.LOI,
			AudienceID: it.AudienceID,
			Country:    it.Country,
			Allocation: it.Allocation,
			CPI:        it.CPI,
			SalesPrice: pricing.Round2(salesPrice),
			Cost:       pricing.Round2(cost),
			Revenue:    pricing.Round2(revenue),
		})
		out.TotalCost = out.TotalCost.Add(cost)
		out.TotalRevenue = out.TotalRevenue.Add(revenue)
	}
	out.EffectiveMargin = pricing.Round2(pricing.EffectiveMargin(out.TotalCost, out.TotalRevenue))
	out.TotalCost = pricing.Round2(out.TotalCost)
	out.TotalRevenue = pricing.Round2(out.TotalRevenue)
	return out
}
