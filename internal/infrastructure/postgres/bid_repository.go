package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

var _ repository.BidRepository = (*BidRepo)(nil)

// BidRepo implementación del puerto BidRepository sobre PostgreSQL (usable con pool o tx).
type BidRepo struct {
	q Querier
}

// NewBidRepository construye el adaptador de persistencia para bids. Pasar pool o tx (Querier).
func NewBidRepository(q Querier) *BidRepo {
	return &BidRepo{q: q}
}

const bidColumns = `
	id, bid_number, study_name, methodology, status, team,
	COALESCE(client_id::text, ''), COALESCE(sales_contact_id::text, ''), COALESCE(vendor_manager_id::text, ''),
	project_requirement, bid_date, COALESCE(created_by::text, ''),
	po_number, rejection_reason, rejection_comments, countries, lois, created_at, updated_at`

// Create persiste el bid. El bid_number lo asigna la secuencia dentro del
// INSERT (RETURNING), de modo que creaciones concurrentes nunca colisionan.
func (r *BidRepo) Create(b *entity.Bid) error {
	query := `
		INSERT INTO bids (id, study_name, methodology, status, team, client_id, sales_contact_id,
			vendor_manager_id, project_requirement, bid_date, created_by, countries, lois, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING bid_number`
	err := r.q.QueryRow(context.Background(), query,
		b.ID, b.StudyName, b.Methodology, b.Status, b.Team,
		nullIfEmpty(b.ClientID), nullIfEmpty(b.SalesContactID), nullIfEmpty(b.VendorManagerID),
		b.ProjectRequirement, b.BidDate, nullIfEmpty(b.CreatedBy),
		b.Countries, b.LOIs, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.BidNumber)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

// GetByID obtiene el agregado completo por ID.
func (r *BidRepo) GetByID(id string) (*entity.Bid, error) {
	return r.getBy("id = $1", id)
}

// GetByNumber obtiene el agregado completo por número de bid (los movimientos
// de infield/closure se referencian por número, no por ID).
func (r *BidRepo) GetByNumber(number int) (*entity.Bid, error) {
	return r.getBy("bid_number = $1", number)
}

func (r *BidRepo) getBy(cond string, arg any) (*entity.Bid, error) {
	var b entity.Bid
	err := r.q.QueryRow(context.Background(),
		`SELECT `+bidColumns+` FROM bids WHERE `+cond, arg,
	).Scan(
		&b.ID, &b.BidNumber, &b.StudyName, &b.Methodology, &b.Status, &b.Team,
		&b.ClientID, &b.SalesContactID, &b.VendorManagerID,
		&b.ProjectRequirement, &b.BidDate, &b.CreatedBy,
		&b.PONumber, &b.RejectionReason, &b.RejectionComments,
		&b.Countries, &b.LOIs, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bid: %w", err)
	}
	if err := r.loadPartners(&b); err != nil {
		return nil, err
	}
	if err := r.loadAudiences(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BidRepo) loadPartners(b *entity.Bid) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT partner_id FROM bid_partners WHERE bid_id = $1`, b.ID)
	if err != nil {
		return fmt.Errorf("load bid partners: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pid string
		if err := rows.Scan(&pid); err != nil {
			return fmt.Errorf("scan bid partner: %w", err)
		}
		b.PartnerIDs = append(b.PartnerIDs, pid)
	}
	return rows.Err()
}

func (r *BidRepo) loadAudiences(b *entity.Bid) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, ordinal, name, category, broader_category, exact_definition, mode, ir, comments
		FROM target_audiences WHERE bid_id = $1 ORDER BY ordinal`, b.ID)
	if err != nil {
		return fmt.Errorf("load audiences: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		a := entity.TargetAudience{BidID: b.ID}
		if err := rows.Scan(&a.ID, &a.Ordinal, &a.Name, &a.Category, &a.BroaderCategory,
			&a.ExactDefinition, &a.Mode, &a.IR, &a.Comments); err != nil {
			return fmt.Errorf("scan audience: %w", err)
		}
		b.Audiences = append(b.Audiences, a)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range b.Audiences {
		crows, err := r.q.Query(context.Background(),
			`SELECT country, required FROM audience_countries WHERE audience_id = $1 ORDER BY country`,
			b.Audiences[i].ID)
		if err != nil {
			return fmt.Errorf("load audience countries: %w", err)
		}
		for crows.Next() {
			var cs entity.CountrySample
			if err := crows.Scan(&cs.Country, &cs.Required); err != nil {
				crows.Close()
				return fmt.Errorf("scan audience country: %w", err)
			}
			b.Audiences[i].Countries = append(b.Audiences[i].Countries, cs)
		}
		crows.Close()
		if err := crows.Err(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateDetails actualiza los campos editables del bid. No toca status,
// po_number ni rejection_*: esos tienen sus propias operaciones.
func (r *BidRepo) UpdateDetails(b *entity.Bid) error {
	query := `
		UPDATE bids SET study_name = $2, methodology = $3, team = $4, client_id = $5,
			sales_contact_id = $6, vendor_manager_id = $7, project_requirement = $8,
			bid_date = $9, countries = $10, lois = $11, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		b.ID, b.StudyName, b.Methodology, b.Team,
		nullIfEmpty(b.ClientID), nullIfEmpty(b.SalesContactID), nullIfEmpty(b.VendorManagerID),
		b.ProjectRequirement, b.BidDate, b.Countries, b.LOIs,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update bid: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado solo si el actual coincide con from. El WHERE
// condicionado serializa transiciones concurrentes: la segunda petición ve 0
// filas afectadas y se rechaza como conflicto.
func (r *BidRepo) UpdateStatus(id, from, to string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE bids SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("update bid status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SetRejection guarda motivo y comentarios de rechazo.
func (r *BidRepo) SetRejection(id, reason, comments string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bids SET rejection_reason = $2, rejection_comments = $3, updated_at = now() WHERE id = $1`,
		id, reason, comments,
	)
	if err != nil {
		return fmt.Errorf("set rejection: %w", err)
	}
	return nil
}

// ClearRejection limpia los campos de rechazo al reactivar.
func (r *BidRepo) ClearRejection(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE bids SET rejection_reason = '', rejection_comments = '', updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("clear rejection: %w", err)
	}
	return nil
}

// UpsertPONumber fija o reemplaza el número de PO del bid.
func (r *BidRepo) UpsertPONumber(bidID, poNumber string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE bids SET po_number = $2, updated_at = now() WHERE id = $1`,
		bidID, poNumber,
	)
	if err != nil {
		return fmt.Errorf("upsert po number: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveAudiences reconcilia las audiencias del bid por ordinal: actualiza las
// existentes en su sitio, inserta las nuevas y borra solo las que salieron
// del agregado. Así las filas conservan su id y las respuestas de partners
// que cuelgan de ellas sobreviven la edición. Se invoca dentro de la
// transacción del agregado (TxRunner).
func (r *BidRepo) SaveAudiences(bidID string, audiences []entity.TargetAudience) error {
	ctx := context.Background()

	ordinals := make([]int, len(audiences))
	for i := range audiences {
		ordinals[i] = audiences[i].Ordinal
	}
	if _, err := r.q.Exec(ctx,
		`DELETE FROM target_audiences WHERE bid_id = $1 AND NOT (ordinal = ANY($2))`,
		bidID, ordinals,
	); err != nil {
		return fmt.Errorf("prune audiences: %w", err)
	}

	for i := range audiences {
		a := &audiences[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		// El conflicto por (bid_id, ordinal) preserva el id de la fila viva
		// aunque el caller traiga uno nuevo; el id real vuelve en RETURNING.
		err := r.q.QueryRow(ctx, `
			INSERT INTO target_audiences (id, bid_id, ordinal, name, category, broader_category, exact_definition, mode, ir, comments)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (bid_id, ordinal) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				broader_category = EXCLUDED.broader_category,
				exact_definition = EXCLUDED.exact_definition,
				mode = EXCLUDED.mode,
				ir = EXCLUDED.ir,
				comments = EXCLUDED.comments
			RETURNING id`,
			a.ID, bidID, a.Ordinal, a.Name, a.Category, a.BroaderCategory,
			a.ExactDefinition, a.Mode, a.IR, a.Comments,
		).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("upsert audience: %w", err)
		}

		countries := make([]string, len(a.Countries))
		for j, cs := range a.Countries {
			countries[j] = cs.Country
			_, err := r.q.Exec(ctx, `
				INSERT INTO audience_countries (audience_id, country, required)
				VALUES ($1, $2, $3)
				ON CONFLICT (audience_id, country) DO UPDATE SET required = EXCLUDED.required`,
				a.ID, cs.Country, cs.Required,
			)
			if err != nil {
				return fmt.Errorf("upsert audience country: %w", err)
			}
		}
		if _, err := r.q.Exec(ctx,
			`DELETE FROM audience_countries WHERE audience_id = $1 AND NOT (country = ANY($2))`,
			a.ID, countries,
		); err != nil {
			return fmt.Errorf("prune audience countries: %w", err)
		}
		// Las celdas de respuesta de países retirados quedan huérfanas de
		// muestra; se eliminan junto con el país.
		if _, err := r.q.Exec(ctx, `
			DELETE FROM response_cells rc
			USING response_audiences ra
			WHERE ra.id = rc.response_audience_id
			  AND ra.audience_id = $1
			  AND NOT (rc.country = ANY($2))`,
			a.ID, countries,
		); err != nil {
			return fmt.Errorf("prune response cells: %w", err)
		}
	}
	return nil
}

// SetPartners reemplaza los partners invitados al bid.
func (r *BidRepo) SetPartners(bidID string, partnerIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM bid_partners WHERE bid_id = $1`, bidID); err != nil {
		return fmt.Errorf("delete bid partners: %w", err)
	}
	for _, pid := range partnerIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO bid_partners (bid_id, partner_id) VALUES ($1, $2)`, bidID, pid)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidInput
			}
			return fmt.Errorf("insert bid partner: %w", err)
		}
	}
	return nil
}

// List lista bids visibles para el caller con búsqueda y paginación.
// La visibilidad se filtra en SQL con el equipo normalizado del caller.
func (r *BidRepo) List(f repository.BidFilter) ([]*entity.Bid, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !f.SuperAdmin {
		team := arg(f.ViewerTeamNorm)
		viewer := arg(f.ViewerID)
		conds = append(conds, fmt.Sprintf(
			`(b.team_norm = %s OR b.created_by::text = %s OR EXISTS (
				SELECT 1 FROM access_grants g WHERE g.bid_id = b.id AND g.user_id::text = %s))`,
			team, viewer, viewer))
	}
	if f.Status != "" {
		conds = append(conds, "b.status = "+arg(f.Status))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf(
			`(b.bid_number::text ILIKE %s OR b.study_name ILIKE %s OR COALESCE(c.name, '') ILIKE %s)`,
			p, p, p))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	base := ` FROM bids b LEFT JOIN clients c ON c.id = b.client_id` + where

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bids: %w", err)
	}

	query := `SELECT b.id, b.bid_number, b.study_name, b.methodology, b.status, b.team,
		COALESCE(b.client_id::text, ''), COALESCE(b.created_by::text, ''), b.po_number,
		b.countries, b.lois, b.created_at, b.updated_at` + base +
		` ORDER BY b.bid_number DESC LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bids: %w", err)
	}
	defer rows.Close()

	var list []*entity.Bid
	for rows.Next() {
		var b entity.Bid
		if err := rows.Scan(&b.ID, &b.BidNumber, &b.StudyName, &b.Methodology, &b.Status, &b.Team,
			&b.ClientID, &b.CreatedBy, &b.PONumber, &b.Countries, &b.LOIs, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan bid: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

// nullIfEmpty convierte "" en NULL para columnas UUID opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
