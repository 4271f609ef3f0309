package repository

import "github.com/jhoicas/bidm-api/internal/domain/entity"

// AccessRepository puerto de persistencia para solicitudes y concesiones de
// acceso a bids.
type AccessRepository interface {
	CreateRequest(r *entity.AccessRequest) error
	GetRequest(id string) (*entity.AccessRequest, error)
	FindPendingRequest(bidID, userID string) (*entity.AccessRequest, error)
	ListRequestsByBid(bidID string) ([]*entity.AccessRequest, error)
	ListPendingByTeam(teamNorm string) ([]*entity.AccessRequest, error)
	ResolveRequest(id, status, resolvedBy string) error

	CreateGrant(g *entity.AccessGrant) error
	DeleteGrant(bidID, userID string) error
	HasGrant(bidID, userID string) (bool, error)
	ListGrantsByBid(bidID string) ([]*entity.AccessGrant, error)
}
