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
	"github.com/rs/zerolog"
)

// InvoiceUseCase reconcilia la factura del bid: CPIs finales por entregable,
// cabeceras por (partner, LOI) y el submit que completa el ciclo. La regla
// dura: mientras exista un entregable sin CPI final positivo en cualquier
// partner o LOI del bid, el submit se rechaza.
type InvoiceUseCase struct {
	bids     repository.BidRepository
	resps    repository.ResponseRepository
	grants   repository.AccessRepository
	partners repository.PartnerRepository
	tx       TxRunner
	log      zerolog.Logger
}

// NewInvoiceUseCase construye el caso de uso con sus puertos.
func NewInvoiceUseCase(
	bids repository.BidRepository,
	resps repository.ResponseRepository,
	grants repository.AccessRepository,
	partners repository.PartnerRepository,
	tx TxRunner,
	log zerolog.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{bids: bids, resps: resps, grants: grants, partners: partners, tx: tx, log: log}
}

// GetByNumber arma la vista de facturación resolviendo el bid por número de
// negocio. Los costos y ahorros se calculan al leer; nunca se almacenan.
func (uc *InvoiceUseCase) GetByNumber(sub access.Subject, bidNumber int) (*dto.InvoiceDataResponse, error) {
	b, err := uc.bids.GetByNumber(bidNumber)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := loadAuthorizedBid(uc.bids, uc.grants, sub, b.ID); err != nil {
		return nil, err
	}
	return uc.buildView(b)
}

// Get arma la vista de facturación por ID de bid.
func (uc *InvoiceUseCase) Get(sub access.Subject, bidID string) (*dto.InvoiceDataResponse, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	return uc.buildView(b)
}

func (uc *InvoiceUseCase) buildView(b *entity.Bid) (*dto.InvoiceDataResponse, error) {
	rs, err := uc.resps.ListByBid(b.ID)
	if err != nil {
		return nil, err
	}
	names, err := partnerNames(uc.partners, b.PartnerIDs)
	if err != nil {
		return nil, err
	}
	meta := audienceMeta(b)

	out := &dto.InvoiceDataResponse{BidID: b.ID, BidNumber: b.BidNumber, Status: b.Status}
	for _, r := range rs {
		pv := dto.InvoicePartnerView{
			PartnerID:     r.PartnerID,
			PartnerName:   names[r.PartnerID],
			LOI:           r.LOI,
			Currency:      r.Currency,
			InvoiceSent:   r.InvoiceSent,
			InvoiceSerial: r.InvoiceSerial,
			InvoiceNumber: r.InvoiceNumber,
			InvoiceAmount: r.InvoiceAmount,
		}
		if r.InvoiceDate != nil {
			pv.InvoiceDate = r.InvoiceDate.Format(bidDateLayout)
		}
		for _, ra := range r.Audiences {
			for _, c := range ra.Cells {
				if c.Allocation <= 0 {
					continue
				}
				initial := c.InitialCost()
				cv := dto.InvoiceCellView{
					AudienceID:  ra.AudienceID,
					Ordinal:     meta[ra.AudienceID].ordinal,
					Country:     c.Country,
					Allocation:  c.Allocation,
					CPI:         c.CPI,
					NDelivered:  c.NDelivered,
					FinalCPI:    c.FinalCPI,
					InitialCost: pricing.Round2(initial),
				}
				if c.Delivered() > 0 && c.FinalCPI != nil {
					final := pricing.FinalCost(c.Delivered(), *c.FinalCPI)
					cv.FinalCost = pricing.Round2(final)
					cv.Savings = pricing.Round2(pricing.Savings(initial, final))
					pv.FinalCost = pv.FinalCost.Add(final)
					pv.Savings = pv.Savings.Add(pricing.Savings(initial, final))
				}
				pv.InitialCost = pv.InitialCost.Add(initial)
				pv.Cells = append(pv.Cells, cv)
			}
		}
		out.TotalInitial = out.TotalInitial.Add(pv.InitialCost)
		out.TotalFinal = out.TotalFinal.Add(pv.FinalCost)
		out.TotalSavings = out.TotalSavings.Add(pv.Savings)
		pv.InitialCost = pricing.Round2(pv.InitialCost)
		pv.FinalCost = pricing.Round2(pv.FinalCost)
		pv.Savings = pricing.Round2(pv.Savings)
		out.Partners = append(out.Partners, pv)
	}
	out.TotalInitial = pricing.Round2(out.TotalInitial)
	out.TotalFinal = pricing.Round2(out.TotalFinal)
	out.TotalSavings = pricing.Round2(out.TotalSavings)
	return out, nil
}

// SaveByNumber persiste cabeceras de factura y CPIs finales en una
// transacción, resolviendo el bid por número. Se acepta en closure y
// ready_for_invoice.
func (uc *InvoiceUseCase) SaveByNumber(ctx context.Context, sub access.Subject, bidNumber int, req dto.SaveInvoiceRequest) error {
	b, err := uc.bids.GetByNumber(bidNumber)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if _, err := loadAuthorizedBid(uc.bids, uc.grants, sub, b.ID); err != nil {
		return err
	}
	if b.Status != entity.StatusClosure && b.Status != entity.StatusReadyForInvoice {
		return domain.ErrConflict
	}

	for _, e := range req.FinalCPIs {
		if !e.FinalCPI.IsPositive() {
			return fmt.Errorf("%w: el CPI final debe ser positivo", domain.ErrInvalidInput)
		}
	}
	headers := make([]repository.InvoiceHeader, len(req.Headers))
	for i, h := range req.Headers {
		hdr := repository.InvoiceHeader{
			InvoiceSent:   h.InvoiceSent,
			InvoiceSerial: h.InvoiceSerial,
			InvoiceNumber: h.InvoiceNumber,
			InvoiceAmount: h.InvoiceAmount,
		}
		if h.InvoiceDate != "" {
			d, err := time.Parse(bidDateLayout, h.InvoiceDate)
			if err != nil {
				return fmt.Errorf("%w: invoice_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
			}
			hdr.InvoiceDate = &d
		}
		headers[i] = hdr
	}

	return uc.tx.Run(ctx, func(_ repository.BidRepository, responseRepo repository.ResponseRepository) error {
		for i, h := range req.Headers {
			if err := responseRepo.SaveInvoiceHeader(b.ID, h.PartnerID, h.LOI, headers[i]); err != nil {
				return err
			}
		}
		for _, e := range req.FinalCPIs {
			ok, err := responseRepo.SetFinalCPI(repository.CellKey{
				BidID:      b.ID,
				PartnerID:  e.PartnerID,
				LOI:        e.LOI,
				AudienceID: e.AudienceID,
				Country:    e.Country,
			}, e.FinalCPI)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrNotFound
			}
		}
		return nil
	})
}

// Submit completa el bid. Valida contra todas las respuestas del bid que no
// quede ningún entregable sin CPI final; la transición usa el update
// condicionado, así que dos submits concurrentes no completan dos veces.
func (uc *InvoiceUseCase) Submit(ctx context.Context, sub access.Subject, bidID string) (*dto.SubmitInvoiceResponse, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	if b.Status != entity.StatusReadyForInvoice {
		return nil, domain.ErrInvalidTransition
	}

	rs, err := uc.resps.ListByBid(b.ID)
	if err != nil {
		return nil, err
	}
	flat := make([]entity.PartnerResponse, len(rs))
	for i, r := range rs {
		flat[i] = *r
	}
	if pricing.MissingFinalCPI(flat) {
		return nil, domain.ErrIncompleteInvoice
	}

	err = uc.tx.Run(ctx, func(bidRepo repository.BidRepository, _ repository.ResponseRepository) error {
		ok, err := bidRepo.UpdateStatus(b.ID, entity.StatusReadyForInvoice, entity.StatusCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int("bid_number", b.BidNumber).Msg("factura enviada, bid completado")
	return &dto.SubmitInvoiceResponse{BidID: b.ID, BidNumber: b.BidNumber, Status: entity.StatusCompleted}, nil
}
