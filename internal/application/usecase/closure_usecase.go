package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/access"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/pricing"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// ClosureUseCase reconcilia lo entregado contra lo asignado. Solo operan las
// celdas con asignación > 0: lo no asignado no aparece en la vista ni acepta
// escritura.
type ClosureUseCase struct {
	bids     repository.BidRepository
	resps    repository.ResponseRepository
	grants   repository.AccessRepository
	partners repository.PartnerRepository
	tx       TxRunner
}

// NewClosureUseCase construye el caso de uso con sus puertos.
func NewClosureUseCase(
	bids repository.BidRepository,
	resps repository.ResponseRepository,
	grants repository.AccessRepository,
	partners repository.PartnerRepository,
	tx TxRunner,
) *ClosureUseCase {
	return &ClosureUseCase{bids: bids, resps: resps, grants: grants, partners: partners, tx: tx}
}

// GetClosure arma la vista de cierre filtrada a celdas asignadas.
func (uc *ClosureUseCase) GetClosure(sub access.Subject, bidID string) (*dto.ClosureView, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	rs, err := uc.resps.ListByBid(b.ID)
	if err != nil {
		return nil, err
	}
	names, err := partnerNames(uc.partners, b.PartnerIDs)
	if err != nil {
		return nil, err
	}

	meta := audienceMeta(b)
	out := &dto.ClosureView{BidID: b.ID, BidNumber: b.BidNumber, Status: b.Status}
	for _, r := range rs {
		for _, ra := range r.Audiences {
			var cells []dto.ClosureCellView
			for _, c := range ra.Cells {
				if c.Allocation <= 0 {
					continue
				}
				cells = append(cells, dto.ClosureCellView{
					PartnerID:      r.PartnerID,
					LOI:            r.LOI,
					AudienceID:     ra.AudienceID,
					Country:        c.Country,
					Allocation:     c.Allocation,
					CPI:            c.CPI,
					NDelivered:     c.NDelivered,
					QualityRejects: c.QualityRejects,
					FinalCPI:       c.FinalCPI,
				})
			}
			if len(cells) == 0 {
				continue
			}
			m := meta[ra.AudienceID]
			out.Audiences = append(out.Audiences, dto.ClosureAudienceView{
				PartnerID:            r.PartnerID,
				PartnerName:          names[r.PartnerID],
				LOI:                  r.LOI,
				AudienceID:           ra.AudienceID,
				Ordinal:              m.ordinal,
				Name:                 m.name,
				FinalLOI:             ra.FinalLOI,
				FinalIR:              ra.FinalIR,
				FinalTimeline:        ra.FinalTimeline,
				QualityRejects:       ra.TotalQualityRejects(),
				CommunicationRating:  ra.CommunicationRating,
				EngagementRating:     ra.EngagementRating,
				ProblemSolvingRating: ra.ProblemSolvingRating,
				AdditionalFeedback:   ra.AdditionalFeedback,
				Cells:                cells,
			})
		}
	}
	return out, nil
}

// SaveClosure persiste entregas, métricas de audiencia y fechas de cierre de
// campo en una transacción. Solo se acepta con el bid en closure, y toda
// escritura a una celda sin asignación se rechaza.
func (uc *ClosureUseCase) SaveClosure(ctx context.Context, sub access.Subject, bidID string, req dto.SaveClosureRequest) error {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return err
	}
	if b.Status != entity.StatusClosure {
		return domain.ErrConflict
	}

	rs, err := uc.resps.ListByBid(b.ID)
	if err != nil {
		return err
	}
	byKey := make(map[string]*entity.PartnerResponse, len(rs))
	for _, r := range rs {
		byKey[dto.ResponseKey(r.PartnerID, r.LOI)] = r
	}

	for _, e := range req.Cells {
		if e.NDelivered < 0 {
			return fmt.Errorf("%w: n_delivered no puede ser negativo", domain.ErrInvalidInput)
		}
		if e.QualityRejects < 0 {
			return fmt.Errorf("%w: quality_rejects no puede ser negativo", domain.ErrInvalidInput)
		}
		r := byKey[dto.ResponseKey(e.PartnerID, e.LOI)]
		if r == nil {
			return domain.ErrNotFound
		}
		cell := findCell(r, e.AudienceID, e.Country)
		if cell == nil {
			return domain.ErrNotFound
		}
		if cell.Allocation <= 0 {
			return fmt.Errorf("%w: la celda %s no tiene campo asignado", domain.ErrInvalidInput, e.Country)
		}
	}

	audienceIDs := make(map[string]string, len(req.Audiences))
	for _, e := range req.Audiences {
		r := byKey[dto.ResponseKey(e.PartnerID, e.LOI)]
		if r == nil {
			return domain.ErrNotFound
		}
		found := ""
		for i := range r.Audiences {
			if r.Audiences[i].AudienceID == e.AudienceID {
				found = r.Audiences[i].ID
				break
			}
		}
		if found == "" {
			return domain.ErrNotFound
		}
		audienceIDs[e.PartnerID+"|"+e.AudienceID+"|"+fmt.Sprint(e.LOI)] = found
	}

	dates := make(map[string]time.Time, len(req.FieldCloseDates))
	for _, e := range req.FieldCloseDates {
		d, err := time.Parse(bidDateLayout, e.FieldCloseDate)
		if err != nil {
			return fmt.Errorf("%w: field_close_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		dates[dto.ResponseKey(e.PartnerID, e.LOI)] = d
	}

	return uc.tx.Run(ctx, func(_ repository.BidRepository, responseRepo repository.ResponseRepository) error {
		for _, e := range req.Cells {
			ok, err := responseRepo.SetDelivered(repository.CellKey{
				BidID:      b.ID,
				PartnerID:  e.PartnerID,
				LOI:        e.LOI,
				AudienceID: e.AudienceID,
				Country:    e.Country,
			}, e.NDelivered, e.QualityRejects)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrNotFound
			}
		}
		for _, e := range req.Audiences {
			id := audienceIDs[e.PartnerID+"|"+e.AudienceID+"|"+fmt.Sprint(e.LOI)]
			if err := responseRepo.SaveAudienceClosure(&entity.ResponseAudience{
				ID:                   id,
				FinalLOI:             e.FinalLOI,
				FinalIR:              e.FinalIR,
				FinalTimeline:        e.FinalTimeline,
				CommunicationRating:  e.CommunicationRating,
				EngagementRating:     e.EngagementRating,
				ProblemSolvingRating: e.ProblemSolvingRating,
				AdditionalFeedback:   e.AdditionalFeedback,
			}); err != nil {
				return err
			}
		}
		for key, d := range dates {
			partnerID, loi, err := dto.ParseResponseKey(key)
			if err != nil {
				return err
			}
			if err := responseRepo.SetFieldCloseDate(b.ID, partnerID, loi, d); err != nil {
				return err
			}
		}
		return nil
	})
}

// Summary agrega el cierre por partner: asignado, entregado, costos y ahorro.
// El ahorro solo cuenta celdas reconciliadas (entregado > 0 con CPI final).
func (uc *ClosureUseCase) Summary(sub access.Subject, bidID string) (*dto.ClosureSummaryResponse, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	rs, err := uc.resps.ListByBid(b.ID)
	if err != nil {
		return nil, err
	}
	names, err := partnerNames(uc.partners, b.PartnerIDs)
	if err != nil {
		return nil, err
	}

	rows := map[string]*dto.ClosureSummaryRow{}
	var order []string
	out := &dto.ClosureSummaryResponse{BidID: b.ID, BidNumber: b.BidNumber}
	for _, r := range rs {
		row := rows[r.PartnerID]
		if row == nil {
			row = &dto.ClosureSummaryRow{PartnerID: r.PartnerID, PartnerName: names[r.PartnerID]}
			rows[r.PartnerID] = row
			order = append(order, r.PartnerID)
		}
		for _, ra := range r.Audiences {
			for _, c := range ra.Cells {
				if c.Allocation <= 0 {
					continue
				}
				row.TotalAllocated += c.Allocation
				row.TotalDelivered += c.Delivered()
				row.InitialCost = row.InitialCost.Add(c.InitialCost())
				if c.Delivered() > 0 && c.FinalCPI != nil {
					final := pricing.FinalCost(c.Delivered(), *c.FinalCPI)
					row.FinalCost = row.FinalCost.Add(final)
					row.Savings = row.Savings.Add(pricing.Savings(c.InitialCost(), final))
				}
			}
		}
	}
	for _, pid := range order {
		row := rows[pid]
		row.InitialCost = pricing.Round2(row.InitialCost)
		row.FinalCost = pricing.Round2(row.FinalCost)
		row.Savings = pricing.Round2(row.Savings)
		out.Partners = append(out.Partners, *row)
		out.TotalDelivered += row.TotalDelivered
		out.TotalSavings = out.TotalSavings.Add(row.Savings)
	}
	out.TotalSavings = pricing.Round2(out.TotalSavings)
	return out, nil
}

type audInfo struct {
	ordinal int
	name    string
}

// audienceMeta indexa ordinal y nombre por ID de audiencia.
func audienceMeta(b *entity.Bid) map[string]audInfo {
	m := make(map[string]audInfo, len(b.Audiences))
	for _, a := range b.Audiences {
		m[a.ID] = audInfo{ordinal: a.Ordinal, name: a.Name}
	}
	return m
}
