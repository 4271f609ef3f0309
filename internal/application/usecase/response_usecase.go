package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/access"
	"github.com/jhoicas/bidm-api/internal/domain/bidflow"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// ResponseUseCase gestiona las respuestas de partners durante la fase de
// recolección: lectura masiva con flags de completitud y escritura masiva
// transaccional.
type ResponseUseCase struct {
	bids   repository.BidRepository
	resps  repository.ResponseRepository
	grants repository.AccessRepository
	tx     TxRunner
}

// NewResponseUseCase construye el caso de uso con sus puertos.
func NewResponseUseCase(
	bids repository.BidRepository,
	resps repository.ResponseRepository,
	grants repository.AccessRepository,
	tx TxRunner,
) *ResponseUseCase {
	return &ResponseUseCase{bids: bids, resps: resps, grants: grants, tx: tx}
}

// GetResponses devuelve todas las respuestas del bid keyed "{partner}-{loi}",
// cada una con su flag de completitud, más el agregado que habilita pasar a
// campo. Un bid sin audiencias es vacuamente completo.
func (uc *ResponseUseCase) GetResponses(sub access.Subject, bidID string) (*dto.ResponsesResponse, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	rs, err := uc.resps.ListByBid(b.ID)
	if err != nil {
		return nil, err
	}
	return buildResponsesView(b, rs), nil
}

// SaveResponses aplica una escritura masiva de respuestas. Solo se acepta en
// draft; cada celda se normaliza (best_efforts ⇒ commitment 0) y la escritura
// completa es una transacción: o entran todas las celdas o ninguna.
func (uc *ResponseUseCase) SaveResponses(ctx context.Context, sub access.Subject, bidID string, req dto.SaveResponsesRequest) (*dto.ResponsesResponse, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	if b.Status != entity.StatusDraft {
		return nil, domain.ErrConflict
	}

	all, err := uc.resps.ListByBid(b.ID)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*entity.PartnerResponse, len(all))
	for _, r := range all {
		byKey[dto.ResponseKey(r.PartnerID, r.LOI)] = r
	}
	audIDByOrdinal := make(map[int]string, len(b.Audiences))
	for _, a := range b.Audiences {
		audIDByOrdinal[a.Ordinal] = a.ID
	}

	touched := make([]*entity.PartnerResponse, 0, len(req.Responses))
	for key, payload := range req.Responses {
		partnerID, loi, err := dto.ParseResponseKey(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		resp := byKey[dto.ResponseKey(partnerID, loi)]
		if resp == nil {
			return nil, fmt.Errorf("%w: el bid no incluye al partner %s con LOI %d", domain.ErrInvalidInput, partnerID, loi)
		}
		if err := applyResponsePayload(resp, payload, audIDByOrdinal); err != nil {
			return nil, err
		}
		touched = append(touched, resp)
	}

	err = uc.tx.Run(ctx, func(_ repository.BidRepository, responseRepo repository.ResponseRepository) error {
		for _, resp := range touched {
			if err := responseRepo.SaveCommitments(resp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buildResponsesView(b, all), nil
}

// applyResponsePayload vuelca el payload sobre el agregado ya cargado,
// validando que toda audiencia y país referido exista en el bid.
func applyResponsePayload(resp *entity.PartnerResponse, p dto.PartnerResponsePayload, audIDByOrdinal map[int]string) error {
	resp.Currency = p.Currency
	resp.PMF = p.PMF

	for audKey, ap := range p.Audiences {
		ordinal, err := dto.ParseAudienceKey(audKey)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		audID, ok := audIDByOrdinal[ordinal]
		if !ok {
			return fmt.Errorf("%w: audiencia %d inexistente", domain.ErrInvalidInput, ordinal)
		}
		var ra *entity.ResponseAudience
		for i := range resp.Audiences {
			if resp.Audiences[i].AudienceID == audID {
				ra = &resp.Audiences[i]
				break
			}
		}
		if ra == nil {
			return fmt.Errorf("%w: audiencia %d sin esqueleto de respuesta", domain.ErrInvalidInput, ordinal)
		}
		ra.TimelineDays = ap.TimelineDays
		ra.Comments = ap.Comments

		for country, cp := range ap.Countries {
			var cell *entity.ResponseCell
			for j := range ra.Cells {
				if ra.Cells[j].Country == country {
					cell = &ra.Cells[j]
					break
				}
			}
			if cell == nil {
				return fmt.Errorf("%w: país %s fuera de la audiencia %d", domain.ErrInvalidInput, country, ordinal)
			}
			if cp.CommitmentType != entity.CommitmentFixed && cp.CommitmentType != entity.CommitmentBestEfforts {
				return fmt.Errorf("%w: commitment_type %q desconocido", domain.ErrInvalidInput, cp.CommitmentType)
			}
			if cp.Commitment < 0 || cp.CPI.IsNegative() {
				return fmt.Errorf("%w: commitment y cpi no pueden ser negativos", domain.ErrInvalidInput)
			}
			cell.CommitmentType = cp.CommitmentType
			cell.Commitment = cp.Commitment
			cell.CPI = cp.CPI
			bidflow.NormalizeCell(cell)
		}
	}
	return nil
}

// buildResponsesView arma la vista masiva con flags de completitud.
func buildResponsesView(b *entity.Bid, rs []*entity.PartnerResponse) *dto.ResponsesResponse {
	ordinalByAudID := make(map[string]int, len(b.Audiences))
	for _, a := range b.Audiences {
		ordinalByAudID[a.ID] = a.Ordinal
	}

	out := &dto.ResponsesResponse{
		Responses:   make(map[string]dto.PartnerResponseView, len(rs)),
		AllComplete: true,
	}
	for _, r := range rs {
		view := dto.PartnerResponseView{
			PartnerID: r.PartnerID,
			LOI:       r.LOI,
			Currency:  r.Currency,
			PMF:       r.PMF,
			Complete:  bidflow.ResponseComplete(*r),
			Audiences: make(map[string]dto.AudienceResponsePayload, len(r.Audiences)),
		}
		for _, ra := range r.Audiences {
			countries := make(map[string]dto.CellPayload, len(ra.Cells))
			for _, c := range ra.Cells {
				countries[c.Country] = dto.CellPayload{
					CommitmentType: c.CommitmentType,
					Commitment:     c.Commitment,
					CPI:            c.CPI,
				}
			}
			view.Audiences[dto.AudienceKey(ordinalByAudID[ra.AudienceID])] = dto.AudienceResponsePayload{
				TimelineDays: ra.TimelineDays,
				Comments:     ra.Comments,
				Countries:    countries,
			}
		}
		if !view.Complete {
			out.AllComplete = false
		}
		out.Responses[dto.ResponseKey(r.PartnerID, r.LOI)] = view
	}
	return out
}
