package usecase

import (
	"context"

	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una misma
// transacción. Cada variante expone solo los repos que la operación necesita.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		bidRepo repository.BidRepository,
		responseRepo repository.ResponseRepository,
	) error) error

	RunAccess(ctx context.Context, fn func(
		accessRepo repository.AccessRepository,
	) error) error

	RunProposal(ctx context.Context, fn func(
		responseRepo repository.ResponseRepository,
		proposalRepo repository.ProposalRepository,
	) error) error
}
