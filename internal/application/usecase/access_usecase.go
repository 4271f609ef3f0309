package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/access"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// AccessUseCase gestiona solicitudes y concesiones de acceso a bids ajenos.
// Conceder, denegar y revocar lo pueden el creador del bid, un admin del
// mismo equipo o el super admin.
type AccessUseCase struct {
	bids     repository.BidRepository
	requests repository.AccessRepository
	tx       TxRunner
	log      zerolog.Logger
}

// NewAccessUseCase construye el caso de uso con sus puertos.
func NewAccessUseCase(
	bids repository.BidRepository,
	requests repository.AccessRepository,
	tx TxRunner,
	log zerolog.Logger,
) *AccessUseCase {
	return &AccessUseCase{bids: bids, requests: requests, tx: tx, log: log}
}

// Check responde si el caller puede ver el bid y por qué no en caso negativo.
func (uc *AccessUseCase) Check(sub access.Subject, bidID string) (*dto.AccessCheckResponse, error) {
	b, err := uc.bids.GetByID(bidID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if access.HasAccess(sub, b.Team, b.CreatedBy, false) {
		return &dto.AccessCheckResponse{HasAccess: true}, nil
	}
	hasGrant, err := uc.requests.HasGrant(b.ID, sub.UserID)
	if err != nil {
		return nil, err
	}
	if hasGrant {
		return &dto.AccessCheckResponse{HasAccess: true}, nil
	}
	return &dto.AccessCheckResponse{
		HasAccess: false,
		Reason:    "el bid pertenece a otro equipo; puede solicitar acceso",
	}, nil
}

// Request crea una solicitud de acceso pendiente. Una segunda solicitud
// pendiente del mismo usuario sobre el mismo bid es un duplicado; solicitar
// acceso a un bid que ya se puede ver es un conflicto.
func (uc *AccessUseCase) Request(sub access.Subject, req dto.AccessRequestCreate) (*dto.AccessRequestView, error) {
	b, err := uc.bids.GetByID(req.BidID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if access.HasAccess(sub, b.Team, b.CreatedBy, false) {
		return nil, domain.ErrConflict
	}
	if pending, err := uc.requests.FindPendingRequest(b.ID, sub.UserID); err != nil {
		return nil, err
	} else if pending != nil {
		return nil, domain.ErrDuplicate
	}

	r := &entity.AccessRequest{
		ID:        uuid.New().String(),
		BidID:     b.ID,
		UserID:    sub.UserID,
		Team:      sub.Team,
		Status:    entity.AccessPending,
		Reason:    req.Reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.requests.CreateRequest(r); err != nil {
		return nil, err
	}
	uc.log.Info().Int("bid_number", b.BidNumber).Str("user_id", sub.UserID).Msg("solicitud de acceso creada")
	return toRequestView(r), nil
}

// Grant aprueba una solicitud pendiente y materializa la concesión en la
// misma transacción. Resolver una solicitud ya resuelta es un conflicto.
func (uc *AccessUseCase) Grant(ctx context.Context, sub access.Subject, requestID string) error {
	r, b, err := uc.loadManaged(sub, requestID)
	if err != nil {
		return err
	}
	err = uc.tx.RunAccess(ctx, func(accessRepo repository.AccessRepository) error {
		if err := accessRepo.ResolveRequest(r.ID, entity.AccessGranted, sub.UserID); err != nil {
			return err
		}
		return accessRepo.CreateGrant(&entity.AccessGrant{
			ID:        uuid.New().String(),
			BidID:     r.BidID,
			UserID:    r.UserID,
			GrantedBy: sub.UserID,
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int("bid_number", b.BidNumber).Str("user_id", r.UserID).Msg("acceso concedido")
	return nil
}

// Deny rechaza una solicitud pendiente.
func (uc *AccessUseCase) Deny(ctx context.Context, sub access.Subject, requestID string) error {
	r, _, err := uc.loadManaged(sub, requestID)
	if err != nil {
		return err
	}
	return uc.tx.RunAccess(ctx, func(accessRepo repository.AccessRepository) error {
		return accessRepo.ResolveRequest(r.ID, entity.AccessDenied, sub.UserID)
	})
}

// Revoke retira la concesión de un usuario sobre un bid.
func (uc *AccessUseCase) Revoke(sub access.Subject, req dto.RevokeAccessRequest) error {
	b, err := uc.bids.GetByID(req.BidID)
	if err != nil {
		return err
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if !access.CanManage(sub, b.Team, b.CreatedBy) {
		return domain.ErrForbidden
	}
	return uc.requests.DeleteGrant(req.BidID, req.UserID)
}

// ListRequests lista las solicitudes de un bid (para quien lo gestiona).
func (uc *AccessUseCase) ListRequests(sub access.Subject, bidID string) ([]dto.AccessRequestView, error) {
	b, err := uc.bids.GetByID(bidID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanManage(sub, b.Team, b.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.requests.ListRequestsByBid(bidID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccessRequestView, 0, len(list))
	for _, r := range list {
		out = append(out, *toRequestView(r))
	}
	return out, nil
}

// ListPending lista la bandeja de solicitudes pendientes sobre bids del
// equipo del caller.
func (uc *AccessUseCase) ListPending(sub access.Subject) ([]dto.AccessRequestView, error) {
	list, err := uc.requests.ListPendingByTeam(access.NormalizeTeam(sub.Team))
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccessRequestView, 0, len(list))
	for _, r := range list {
		out = append(out, *toRequestView(r))
	}
	return out, nil
}

// ListGrants lista las concesiones vigentes de un bid.
func (uc *AccessUseCase) ListGrants(sub access.Subject, bidID string) ([]dto.AccessGrantView, error) {
	b, err := uc.bids.GetByID(bidID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanManage(sub, b.Team, b.CreatedBy) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.requests.ListGrantsByBid(bidID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccessGrantView, 0, len(list))
	for _, g := range list {
		out = append(out, dto.AccessGrantView{
			ID:        g.ID,
			BidID:     g.BidID,
			UserID:    g.UserID,
			GrantedBy: g.GrantedBy,
			CreatedAt: g.CreatedAt,
		})
	}
	return out, nil
}

// loadManaged carga solicitud y bid verificando que el caller pueda
// gestionarlo.
func (uc *AccessUseCase) loadManaged(sub access.Subject, requestID string) (*entity.AccessRequest, *entity.Bid, error) {
	r, err := uc.requests.GetRequest(requestID)
	if err != nil {
		return nil, nil, err
	}
	if r == nil {
		return nil, nil, domain.ErrNotFound
	}
	b, err := uc.bids.GetByID(r.BidID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !access.CanManage(sub, b.Team, b.CreatedBy) {
		return nil, nil, domain.ErrForbidden
	}
	return r, b, nil
}

func toRequestView(r *entity.AccessRequest) *dto.AccessRequestView {
	return &dto.AccessRequestView{
		ID:         r.ID,
		BidID:      r.BidID,
		UserID:     r.UserID,
		Team:       r.Team,
		Reason:     r.Reason,
		Status:     r.Status,
		ResolvedBy: r.ResolvedBy,
		CreatedAt:  r.CreatedAt,
	}
}
