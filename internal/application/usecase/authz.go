package usecase

import (
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/access"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// loadAuthorizedBid carga el bid y aplica la política de visibilidad: equipo
// normalizado, creador, super admin o concesión explícita. La concesión se
// consulta solo cuando las reglas baratas no alcanzan.
func loadAuthorizedBid(
	bids repository.BidRepository,
	grants repository.AccessRepository,
	sub access.Subject,
	bidID string,
) (*entity.Bid, error) {
	b, err := bids.GetByID(bidID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if access.HasAccess(sub, b.Team, b.CreatedBy, false) {
		return b, nil
	}
	hasGrant, err := grants.HasGrant(b.ID, sub.UserID)
	if err != nil {
		return nil, err
	}
	if !hasGrant {
		return nil, domain.ErrForbidden
	}
	return b, nil
}
