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

var _ repository.AccessRepository = (*AccessRepo)(nil)

// AccessRepo implementación del puerto AccessRepository sobre PostgreSQL (usable con pool o tx).
type AccessRepo struct {
	q Querier
}

// NewAccessRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccessRepository(q Querier) *AccessRepo {
	return &AccessRepo{q: q}
}

const requestColumns = `id, bid_id, user_id, team, status, reason,
	COALESCE(resolved_by::text, ''), resolved_at, created_at`

// CreateRequest crea una solicitud pendiente. El índice único parcial de la
// tabla impide dos pendientes del mismo usuario sobre el mismo bid.
func (r *AccessRepo) CreateRequest(req *entity.AccessRequest) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO access_requests (id, bid_id, user_id, team, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		req.ID, req.BidID, req.UserID, req.Team, req.Status, req.Reason, req.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert access request: %w", err)
	}
	return nil
}

// GetRequest obtiene una solicitud por ID.
func (r *AccessRepo) GetRequest(id string) (*entity.AccessRequest, error) {
	var req entity.AccessRequest
	err := r.q.QueryRow(context.Background(),
		`SELECT `+requestColumns+` FROM access_requests WHERE id = $1`, id,
	).Scan(&req.ID, &req.BidID, &req.UserID, &req.Team, &req.Status, &req.Reason,
		&req.ResolvedBy, &req.ResolvedAt, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get access request: %w", err)
	}
	return &req, nil
}

// FindPendingRequest busca la solicitud pendiente de un usuario sobre un bid.
func (r *AccessRepo) FindPendingRequest(bidID, userID string) (*entity.AccessRequest, error) {
	var req entity.AccessRequest
	err := r.q.QueryRow(context.Background(),
		`SELECT `+requestColumns+` FROM access_requests
		WHERE bid_id = $1 AND user_id = $2 AND status = 'pending'`, bidID, userID,
	).Scan(&req.ID, &req.BidID, &req.UserID, &req.Team, &req.Status, &req.Reason,
		&req.ResolvedBy, &req.ResolvedAt, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find pending request: %w", err)
	}
	return &req, nil
}

// ListRequestsByBid lista todas las solicitudes de un bid.
func (r *AccessRepo) ListRequestsByBid(bidID string) ([]*entity.AccessRequest, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+requestColumns+` FROM access_requests WHERE bid_id = $1 ORDER BY created_at DESC`,
		bidID)
	if err != nil {
		return nil, fmt.Errorf("list access requests: %w", err)
	}
	defer rows.Close()
	return scanRequests(rows)
}

// ListPendingByTeam lista solicitudes pendientes sobre bids de un equipo
// (normalizado): lo que ve un admin en su bandeja.
func (r *AccessRepo) ListPendingByTeam(teamNorm string) ([]*entity.AccessRequest, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT r.id, r.bid_id, r.user_id, r.team, r.status, r.reason,
			COALESCE(r.resolved_by::text, ''), r.resolved_at, r.created_at
		FROM access_requests r
		JOIN bids b ON b.id = r.bid_id
		WHERE r.status = 'pending' AND b.team_norm = $1
		ORDER BY r.created_at`, teamNorm)
	if err != nil {
		return nil, fmt.Errorf("list pending by team: %w", err)
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]*entity.AccessRequest, error) {
	var list []*entity.AccessRequest
	for rows.Next() {
		var req entity.AccessRequest
		if err := rows.Scan(&req.ID, &req.BidID, &req.UserID, &req.Team, &req.Status, &req.Reason,
			&req.ResolvedBy, &req.ResolvedAt, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan access request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

// ResolveRequest transiciona una solicitud pendiente a granted/denied.
// Solo resuelve pendientes: resolver dos veces es conflicto.
func (r *AccessRepo) ResolveRequest(id, status, resolvedBy string) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE access_requests SET status = $2, resolved_by = $3, resolved_at = now()
		WHERE id = $1 AND status = 'pending'`,
		id, status, nullIfEmpty(resolvedBy),
	)
	if err != nil {
		return fmt.Errorf("resolve access request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// CreateGrant materializa la concesión. Idempotente por (bid, usuario).
func (r *AccessRepo) CreateGrant(g *entity.AccessGrant) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO access_grants (id, bid_id, user_id, granted_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (bid_id, user_id) DO NOTHING`,
		g.ID, g.BidID, g.UserID, nullIfEmpty(g.GrantedBy), g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert access grant: %w", err)
	}
	return nil
}

// DeleteGrant revoca la concesión de un usuario sobre un bid.
func (r *AccessRepo) DeleteGrant(bidID, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM access_grants WHERE bid_id = $1 AND user_id = $2`, bidID, userID)
	if err != nil {
		return fmt.Errorf("delete access grant: %w", err)
	}
	return nil
}

// HasGrant consulta si el usuario tiene concesión explícita sobre el bid.
func (r *AccessRepo) HasGrant(bidID, userID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM access_grants WHERE bid_id = $1 AND user_id = $2)`,
		bidID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has grant: %w", err)
	}
	return exists, nil
}

// ListGrantsByBid lista las concesiones vigentes de un bid.
func (r *AccessRepo) ListGrantsByBid(bidID string) ([]*entity.AccessGrant, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, bid_id, user_id, COALESCE(granted_by::text, ''), created_at
		FROM access_grants WHERE bid_id = $1 ORDER BY created_at`, bidID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccessGrant
	for rows.Next() {
		var g entity.AccessGrant
		if err := rows.Scan(&g.ID, &g.BidID, &g.UserID, &g.GrantedBy, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}
