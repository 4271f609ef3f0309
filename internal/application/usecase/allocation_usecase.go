package usecase

import (
	"fmt"

	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/access"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// AllocationUseCase reparte la muestra requerida entre los partners que
// respondieron. La sobre-asignación se permite pero se advierte: el exceso
// es una decisión del PM, no un error.
type AllocationUseCase struct {
	bids     repository.BidRepository
	resps    repository.ResponseRepository
	grants   repository.AccessRepository
	partners repository.PartnerRepository
}

// NewAllocationUseCase construye el caso de uso con sus puertos.
func NewAllocationUseCase(
	bids repository.BidRepository,
	resps repository.ResponseRepository,
	grants repository.AccessRepository,
	partners repository.PartnerRepository,
) *AllocationUseCase {
	return &AllocationUseCase{bids: bids, resps: resps, grants: grants, partners: partners}
}

// GetGrid arma el grid de asignación: por audiencia y país, la muestra
// requerida, el total asignado y las celdas de cada (partner, LOI).
func (uc *AllocationUseCase) GetGrid(sub access.Subject, bidID string) (*dto.AllocationGridResponse, error) {
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

	out := &dto.AllocationGridResponse{BidID: b.ID, BidNumber: b.BidNumber}
	for _, a := range b.Audiences {
		av := dto.AllocationAudienceView{
			AudienceID: a.ID,
			Ordinal:    a.Ordinal,
			Name:       a.Name,
		}
		for _, cs := range a.Countries {
			cv := dto.AllocationCountryView{Country: cs.Country, Required: cs.Required}
			for _, r := range rs {
				cell := findCell(r, a.ID, cs.Country)
				if cell == nil {
					continue
				}
				cv.Allocated += cell.Allocation
				cv.Cells = append(cv.Cells, dto.AllocationCellView{
					PartnerID:      r.PartnerID,
					PartnerName:    names[r.PartnerID],
					LOI:            r.LOI,
					CommitmentType: cell.CommitmentType,
					Commitment:     cell.Commitment,
					CPI:            cell.CPI,
					Allocation:     cell.Allocation,
				})
			}
			av.Countries = append(av.Countries, cv)
		}
		out.Audiences = append(out.Audiences, av)
	}
	return out, nil
}

// SetAllocation asigna muestra a una celda. La escritura siempre se persiste;
// si el total del país supera la muestra requerida la respuesta lleva una
// advertencia para que el PM decida.
func (uc *AllocationUseCase) SetAllocation(sub access.Subject, bidID string, req dto.SetAllocationRequest) (*dto.SetAllocationResponse, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	if b.Status != entity.StatusDraft && b.Status != entity.StatusInField {
		return nil, domain.ErrConflict
	}
	if req.Allocation < 0 {
		return nil, fmt.Errorf("%w: la asignación no puede ser negativa", domain.ErrInvalidInput)
	}

	ok, err := uc.resps.SetAllocation(repository.CellKey{
		BidID:      b.ID,
		PartnerID:  req.PartnerID,
		LOI:        req.LOI,
		AudienceID: req.AudienceID,
		Country:    req.Country,
	}, req.Allocation)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	required := 0
	for _, a := range b.Audiences {
		if a.ID != req.AudienceID {
			continue
		}
		for _, cs := range a.Countries {
			if cs.Country == req.Country {
				required = cs.Required
			}
		}
	}
	rs, err := uc.resps.ListByBid(b.ID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, r := range rs {
		if cell := findCell(r, req.AudienceID, req.Country); cell != nil {
			total += cell.Allocation
		}
	}

	resp := &dto.SetAllocationResponse{Saved: true, TotalAssigned: total, Required: required}
	if total > required {
		resp.Warning = fmt.Sprintf("asignado %d sobre una muestra requerida de %d en %s", total, required, req.Country)
	}
	return resp, nil
}

// findCell localiza la celda de (audiencia, país) dentro de una respuesta.
func findCell(r *entity.PartnerResponse, audienceID, country string) *entity.ResponseCell {
	for i := range r.Audiences {
		if r.Audiences[i].AudienceID != audienceID {
			continue
		}
		for j := range r.Audiences[i].Cells {
			if r.Audiences[i].Cells[j].Country == country {
				return &r.Audiences[i].Cells[j]
			}
		}
	}
	return nil
}

// partnerNames resuelve nombre por ID para las vistas.
func partnerNames(partners repository.PartnerRepository, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	list, err := partners.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, p := range list {
		names[p.ID] = p.Name
	}
	return names, nil
}
