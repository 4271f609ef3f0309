package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/access"
	"github.com/jhoicas/bidm-api/internal/domain/bidflow"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/pricing"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

const bidDateLayout = "2006-01-02"

// BidUseCase orquesta el ciclo de vida del agregado Bid: creación, edición,
// listado con visibilidad y transiciones de estado.
type BidUseCase struct {
	bids   repository.BidRepository
	resps  repository.ResponseRepository
	grants repository.AccessRepository
	tx     TxRunner
	log    zerolog.Logger
}

// NewBidUseCase construye el caso de uso con sus puertos.
func NewBidUseCase(
	bids repository.BidRepository,
	resps repository.ResponseRepository,
	grants repository.AccessRepository,
	tx TxRunner,
	log zerolog.Logger,
) *BidUseCase {
	return &BidUseCase{bids: bids, resps: resps, grants: grants, tx: tx, log: log}
}

// Create crea el bid en draft junto con audiencias, partners invitados y los
// esqueletos de respuesta por (partner, LOI), todo en una transacción. El
// número de bid lo asigna la secuencia de la DB.
func (uc *BidUseCase) Create(ctx context.Context, sub access.Subject, req dto.SaveBidRequest) (*dto.BidResponse, error) {
	b, auds, err := buildBidAggregate(req)
	if err != nil {
		return nil, err
	}
	b.ID = uuid.New().String()
	b.Status = entity.StatusDraft
	b.CreatedBy = sub.UserID
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	err = uc.tx.Run(ctx, func(bidRepo repository.BidRepository, responseRepo repository.ResponseRepository) error {
		if err := bidRepo.Create(b); err != nil {
			return err
		}
		if err := bidRepo.SaveAudiences(b.ID, auds); err != nil {
			return err
		}
		if err := bidRepo.SetPartners(b.ID, req.PartnerIDs); err != nil {
			return err
		}
		return createResponseSkeletons(responseRepo, b.ID, req.PartnerIDs, req.LOIs, auds)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int("bid_number", b.BidNumber).Str("team", b.Team).Msg("bid creado")

	b.Audiences = auds
	b.PartnerIDs = req.PartnerIDs
	return toBidResponse(b), nil
}

// Update reemplaza los datos editables del agregado. Solo se permite en
// draft; partners y audiencias se reconcilian y los esqueletos de respuesta
// se completan sin pisar lo ya respondido.
func (uc *BidUseCase) Update(ctx context.Context, sub access.Subject, bidID string, req dto.SaveBidRequest) (*dto.BidResponse, error) {
	current, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	if current.Status != entity.StatusDraft {
		return nil, domain.ErrConflict
	}

	b, auds, err := buildBidAggregate(req)
	if err != nil {
		return nil, err
	}
	b.ID = current.ID
	b.BidNumber = current.BidNumber
	b.Status = current.Status
	b.CreatedBy = current.CreatedBy
	b.CreatedAt = current.CreatedAt

	// Las audiencias conservan su identidad por ordinal: editar un bid no
	// debe regenerar ids ni arrastrar las respuestas que ya cuelgan de ellas.
	byOrdinal := make(map[int]string, len(current.Audiences))
	for _, a := range current.Audiences {
		byOrdinal[a.Ordinal] = a.ID
	}
	for i := range auds {
		if id, ok := byOrdinal[auds[i].Ordinal]; ok {
			auds[i].ID = id
		}
	}

	err = uc.tx.Run(ctx, func(bidRepo repository.BidRepository, responseRepo repository.ResponseRepository) error {
		if err := bidRepo.UpdateDetails(b); err != nil {
			return err
		}
		if err := bidRepo.SaveAudiences(b.ID, auds); err != nil {
			return err
		}
		if err := bidRepo.SetPartners(b.ID, req.PartnerIDs); err != nil {
			return err
		}
		return createResponseSkeletons(responseRepo, b.ID, req.PartnerIDs, req.LOIs, auds)
	})
	if err != nil {
		return nil, err
	}

	b.Audiences = auds
	b.PartnerIDs = req.PartnerIDs
	return toBidResponse(b), nil
}

// Get devuelve el detalle del bid si el caller tiene acceso. Un bid visible
// pero ajeno devuelve ErrForbidden, distinto de ErrNotFound: el caller sabe
// que existe y puede solicitar acceso.
func (uc *BidUseCase) Get(sub access.Subject, bidID string) (*dto.BidResponse, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}
	return toBidResponse(b), nil
}

// GetByNumber resuelve por número de negocio y aplica la misma política.
func (uc *BidUseCase) GetByNumber(sub access.Subject, number int) (*dto.BidResponse, error) {
	b, err := uc.bids.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return uc.Get(sub, b.ID)
}

// List lista los bids visibles para el caller, con búsqueda por número,
// nombre de estudio o cliente, y filtro por estado.
func (uc *BidUseCase) List(sub access.Subject, search, status string, page dto.PageRequest) (*dto.BidListResponse, error) {
	if status != "" && !bidflow.IsValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()

	list, total, err := uc.bids.List(repository.BidFilter{
		Search:         search,
		Status:         status,
		ViewerID:       sub.UserID,
		ViewerTeamNorm: access.NormalizeTeam(sub.Team),
		SuperAdmin:     sub.IsSuperAdmin(),
		Limit:          page.Limit,
		Offset:         page.Offset,
	})
	if err != nil {
		return nil, err
	}

	// Los listados por fase llevan agregados operativos; el listado general
	// y el de borradores no los necesitan.
	var metrics map[string]entity.BidListMetrics
	switch status {
	case entity.StatusInField, entity.StatusClosure, entity.StatusReadyForInvoice, entity.StatusCompleted:
		ids := make([]string, 0, len(list))
		for _, b := range list {
			ids = append(ids, b.ID)
		}
		metrics, err = uc.resps.MetricsByBids(ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.BidListItem, 0, len(list))
	for _, b := range list {
		item := dto.BidListItem{
			ID:        b.ID,
			BidNumber: b.BidNumber,
			StudyName: b.StudyName,
			Status:    b.Status,
			Team:      b.Team,
			ClientID:  b.ClientID,
			PONumber:  b.PONumber,
			Countries: b.Countries,
			LOIs:      b.LOIs,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		}
		if m, ok := metrics[b.ID]; ok {
			item.Metrics = &dto.BidListMetricsView{
				TotalAllocated: m.TotalAllocated,
				TotalDelivered: m.TotalDelivered,
				QualityRejects: m.QualityRejects,
				AvgFinalLOI:    pricing.Round2(m.AvgFinalLOI),
				AvgFinalIR:     pricing.Round2(m.AvgFinalIR),
				InvoiceAmount:  pricing.Round2(m.InvoiceAmount),
			}
		}
		items = append(items, item)
	}
	return &dto.BidListResponse{
		Bids:  items,
		Total: total,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ChangeStatus aplica una transición de la máquina de estados. completed
// nunca se acepta por esta vía: solo lo produce el submit de factura. El
// update condicionado al estado origen serializa transiciones concurrentes;
// la petición que pierde la carrera recibe ErrConflict.
func (uc *BidUseCase) ChangeStatus(ctx context.Context, sub access.Subject, bidID string, req dto.StatusChangeRequest) (*dto.BidResponse, error) {
	b, err := loadAuthorizedBid(uc.bids, uc.grants, sub, bidID)
	if err != nil {
		return nil, err
	}

	to := req.Status
	if !bidflow.IsValidStatus(to) {
		return nil, domain.ErrInvalidInput
	}
	if to == entity.StatusCompleted {
		return nil, domain.ErrInvalidTransition
	}
	needs, err := bidflow.Transition(b.Status, to)
	if err != nil {
		return nil, err
	}

	po := strings.TrimSpace(req.PONumber)
	if needs.PONumber && po == "" && b.PONumber == "" {
		return nil, fmt.Errorf("%w: la transición requiere número de PO", domain.ErrInvalidInput)
	}
	if needs.RejectionReason && strings.TrimSpace(req.RejectionReason) == "" {
		return nil, fmt.Errorf("%w: la transición requiere motivo de rechazo", domain.ErrInvalidInput)
	}

	// Pasar a campo exige que toda respuesta requerida esté completa; la
	// regla se evalúa aquí, no en el cliente.
	if b.Status == entity.StatusDraft && to == entity.StatusInField {
		rs, err := uc.resps.ListByBid(b.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range rs {
			if !bidflow.ResponseComplete(*r) {
				return nil, domain.ErrIncompleteResponse
			}
		}
	}

	from := b.Status
	err = uc.tx.Run(ctx, func(bidRepo repository.BidRepository, _ repository.ResponseRepository) error {
		ok, err := bidRepo.UpdateStatus(b.ID, from, to)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		if needs.PONumber && po != "" {
			if err := bidRepo.UpsertPONumber(b.ID, po); err != nil {
				return err
			}
		}
		if to == entity.StatusRejected {
			return bidRepo.SetRejection(b.ID, strings.TrimSpace(req.RejectionReason), strings.TrimSpace(req.RejectionComments))
		}
		if from == entity.StatusRejected && to == entity.StatusDraft {
			return bidRepo.ClearRejection(b.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int("bid_number", b.BidNumber).Str("from", from).Str("to", to).Msg("transición de estado")

	updated, err := uc.bids.GetByID(b.ID)
	if err != nil {
		return nil, err
	}
	return toBidResponse(updated), nil
}

// ChangeStatusByNumber aplica la transición resolviendo el bid por número de
// negocio (las pantallas de campo y factura operan con el número).
func (uc *BidUseCase) ChangeStatusByNumber(ctx context.Context, sub access.Subject, number int, req dto.StatusChangeRequest) (*dto.BidResponse, error) {
	b, err := uc.bids.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return uc.ChangeStatus(ctx, sub, b.ID, req)
}

// buildBidAggregate valida el request y arma el bid con sus audiencias.
func buildBidAggregate(req dto.SaveBidRequest) (*entity.Bid, []entity.TargetAudience, error) {
	if strings.TrimSpace(req.StudyName) == "" || strings.TrimSpace(req.Team) == "" {
		return nil, nil, fmt.Errorf("%w: study_name y team son obligatorios", domain.ErrInvalidInput)
	}
	if len(req.Countries) == 0 || len(req.LOIs) == 0 {
		return nil, nil, fmt.Errorf("%w: se requiere al menos un país y un LOI", domain.ErrInvalidInput)
	}
	for _, loi := range req.LOIs {
		if loi <= 0 {
			return nil, nil, fmt.Errorf("%w: LOI debe ser positivo", domain.ErrInvalidInput)
		}
	}

	var bidDate time.Time
	if req.BidDate != "" {
		var err error
		bidDate, err = time.Parse(bidDateLayout, req.BidDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: bid_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
	} else {
		bidDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	auds := make([]entity.TargetAudience, 0, len(req.Audiences))
	for i, ap := range req.Audiences {
		if len(ap.CountrySamples) == 0 {
			return nil, nil, fmt.Errorf("%w: toda audiencia requiere muestras por país", domain.ErrInvalidInput)
		}
		countries := make([]entity.CountrySample, 0, len(ap.CountrySamples))
		for country, required := range ap.CountrySamples {
			if required <= 0 {
				return nil, nil, fmt.Errorf("%w: la muestra requerida de %s debe ser positiva", domain.ErrInvalidInput, country)
			}
			countries = append(countries, entity.CountrySample{Country: country, Required: required})
		}
		sort.Slice(countries, func(a, b int) bool { return countries[a].Country < countries[b].Country })

		auds = append(auds, entity.TargetAudience{
			Ordinal:         i,
			Name:            ap.Name,
			Category:        ap.Category,
			BroaderCategory: ap.BroaderCategory,
			ExactDefinition: ap.ExactDefinition,
			Mode:            ap.Mode,
			IR:              ap.IR,
			Comments:        ap.Comments,
			Countries:       countries,
		})
	}

	return &entity.Bid{
		StudyName:          strings.TrimSpace(req.StudyName),
		Methodology:        req.Methodology,
		Team:               strings.TrimSpace(req.Team),
		ClientID:           req.ClientID,
		SalesContactID:     req.SalesContactID,
		VendorManagerID:    req.VendorManagerID,
		ProjectRequirement: req.ProjectRequirement,
		BidDate:            bidDate,
		Countries:          req.Countries,
		LOIs:               req.LOIs,
	}, auds, nil
}

// createResponseSkeletons asegura una respuesta vacía por (partner, LOI) con
// sus celdas audiencia×país en cero. Idempotente: no pisa lo ya respondido.
func createResponseSkeletons(
	responseRepo repository.ResponseRepository,
	bidID string,
	partnerIDs []string,
	lois []int,
	auds []entity.TargetAudience,
) error {
	for _, pid := range partnerIDs {
		for _, loi := range lois {
			resp := &entity.PartnerResponse{BidID: bidID, PartnerID: pid, LOI: loi}
			for _, a := range auds {
				ra := entity.ResponseAudience{AudienceID: a.ID}
				for _, cs := range a.Countries {
					ra.Cells = append(ra.Cells, entity.ResponseCell{
						Country:        cs.Country,
						CommitmentType: entity.CommitmentFixed,
					})
				}
				resp.Audiences = append(resp.Audiences, ra)
			}
			if err := responseRepo.CreateSkeleton(resp); err != nil {
				return err
			}
		}
	}
	return nil
}

func toBidResponse(b *entity.Bid) *dto.BidResponse {
	auds := make([]dto.AudienceView, 0, len(b.Audiences))
	for _, a := range b.Audiences {
		samples := make(map[string]int, len(a.Countries))
		for _, cs := range a.Countries {
			samples[cs.Country] = cs.Required
		}
		auds = append(auds, dto.AudienceView{
			ID:              a.ID,
			Ordinal:         a.Ordinal,
			Name:            a.Name,
			Category:        a.Category,
			BroaderCategory: a.BroaderCategory,
			ExactDefinition: a.ExactDefinition,
			Mode:            a.Mode,
			IR:              a.IR,
			Comments:        a.Comments,
			CountrySamples:  samples,
		})
	}
	return &dto.BidResponse{
		ID:                 b.ID,
		BidNumber:          b.BidNumber,
		StudyName:          b.StudyName,
		Methodology:        b.Methodology,
		Status:             b.Status,
		Team:               b.Team,
		ClientID:           b.ClientID,
		SalesContactID:     b.SalesContactID,
		VendorManagerID:    b.VendorManagerID,
		ProjectRequirement: b.ProjectRequirement,
		BidDate:            b.BidDate.Format(bidDateLayout),
		CreatedBy:          b.CreatedBy,
		PONumber:           b.PONumber,
		RejectionReason:    b.RejectionReason,
		RejectionComments:  b.RejectionComments,
		Countries:          b.Countries,
		LOIs:               b.LOIs,
		PartnerIDs:         b.PartnerIDs,
		Audiences:          auds,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}
