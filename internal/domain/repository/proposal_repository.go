package repository

import "github.com/jhoicas/bidm-api/internal/domain/entity"

// ProposalRepository puerto de persistencia para propuestas comerciales.
type ProposalRepository interface {
	Create(p *entity.Proposal) error
	GetByID(id string) (*entity.Proposal, error)
	ListByBid(bidID string) ([]*entity.Proposal, error)
	Delete(id string) error
}
