package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

var _ repository.ProposalRepository = (*ProposalRepo)(nil)

// ProposalRepo implementación del puerto ProposalRepository sobre PostgreSQL (usable con pool o tx).
type ProposalRepo struct {
	q Querier
}

// NewProposalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProposalRepository(q Querier) *ProposalRepo {
	return &ProposalRepo{q: q}
}

// Create persiste la propuesta con sus líneas. Se invoca dentro del TxRunner.
func (r *ProposalRepo) Create(p *entity.Proposal) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO proposals (id, bid_id, margin_pct, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.BidID, p.MarginPct, nullIfEmpty(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert proposal: %w", err)
	}
	for i := range p.Items {
		it := &p.Items[i]
		it.ProposalID = p.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO proposal_items (id, proposal_id, audience_id, country, partner_id, loi, allocation, cpi)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, it.ProposalID, it.AudienceID, it.Country, it.PartnerID, it.LOI, it.Allocation, it.CPI,
		)
		if err != nil {
			return fmt.Errorf("insert proposal item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la propuesta con sus líneas.
func (r *ProposalRepo) GetByID(id string) (*entity.Proposal, error) {
	var p entity.Proposal
	err := r.q.QueryRow(context.Background(), `
		SELECT id, bid_id, margin_pct, COALESCE(created_by::text, ''), created_at, updated_at
		FROM proposals WHERE id = $1`, id,
	).Scan(&p.ID, &p.BidID, &p.MarginPct, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if err := r.loadItems(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByBid lista las propuestas de un bid, la más reciente primero.
func (r *ProposalRepo) ListByBid(bidID string) ([]*entity.Proposal, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, bid_id, margin_pct, COALESCE(created_by::text, ''), created_at, updated_at
		FROM proposals WHERE bid_id = $1 ORDER BY created_at DESC`, bidID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proposal
	for rows.Next() {
		var p entity.Proposal
		if err := rows.Scan(&p.ID, &p.BidID, &p.MarginPct, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		if err := r.loadItems(p); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *ProposalRepo) loadItems(p *entity.Proposal) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, proposal_id, audience_id, country, partner_id, loi, allocation, cpi
		FROM proposal_items WHERE proposal_id = $1 ORDER BY country, loi`, p.ID)
	if err != nil {
		return fmt.Errorf("load proposal items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ProposalItem
		if err := rows.Scan(&it.ID, &it.ProposalID, &it.AudienceID, &it.Country, &it.PartnerID,
			&it.LOI, &it.Allocation, &it.CPI); err != nil {
			return fmt.Errorf("scan proposal item: %w", err)
		}
		p.Items = append(p.Items, it)
	}
	return rows.Err()
}

// Delete elimina la propuesta (las líneas caen por cascada).
func (r *ProposalRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}
	return nil
}
