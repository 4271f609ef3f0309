package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.TxRunner.
var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de bids y respuestas
// atados a la tx y hace Commit o Rollback. Lo usan la creación/edición del
// agregado Bid, las escrituras multi-celda y el submit de factura: o se
// escribe todo o nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	bidRepo repository.BidRepository,
	responseRepo repository.ResponseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bidRepo := NewBidRepository(tx)
	responseRepo := NewResponseRepository(tx)

	if err := fn(bidRepo, responseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAccess inicia una transacción con el repo de accesos (resolver la
// solicitud y materializar la concesión es una sola operación).
func (r *TxRunner) RunAccess(ctx context.Context, fn func(
	accessRepo repository.AccessRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAccessRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProposal inicia una transacción con repos de respuestas y propuestas
// (el snapshot copia CPIs de las respuestas al crear la propuesta).
func (r *TxRunner) RunProposal(ctx context.Context, fn func(
	responseRepo repository.ResponseRepository,
	proposalRepo repository.ProposalRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewResponseRepository(tx), NewProposalRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
