package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ResponseRepository = (*ResponseRepo)(nil)

// ResponseRepo implementación del puerto ResponseRepository sobre PostgreSQL (usable con pool o tx).
type ResponseRepo struct {
	q Querier
}

// NewResponseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewResponseRepository(q Querier) *ResponseRepo {
	return &ResponseRepo{q: q}
}

// ListByBid carga todas las respuestas del bid con audiencias y celdas en
// tres consultas (una por nivel), no N+1.
func (r *ResponseRepo) ListByBid(bidID string) ([]*entity.PartnerResponse, error) {
	ctx := context.Background()

	rows, err := r.q.Query(ctx, `
		SELECT id, bid_id, partner_id, loi, currency, pmf, field_close_date,
			invoice_date, invoice_sent, invoice_serial, invoice_number, invoice_amount,
			created_at, updated_at
		FROM partner_responses WHERE bid_id = $1 ORDER BY partner_id, loi`, bidID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	byID := map[string]*entity.PartnerResponse{}
	var list []*entity.PartnerResponse
	for rows.Next() {
		var resp entity.PartnerResponse
		if err := rows.Scan(&resp.ID, &resp.BidID, &resp.PartnerID, &resp.LOI, &resp.Currency,
			&resp.PMF, &resp.FieldCloseDate, &resp.InvoiceDate, &resp.InvoiceSent,
			&resp.InvoiceSerial, &resp.InvoiceNumber, &resp.InvoiceAmount,
			&resp.CreatedAt, &resp.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan response: %w", err)
		}
		list = append(list, &resp)
		byID[resp.ID] = &resp
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	audRows, err := r.q.Query(ctx, `
		SELECT ra.id, ra.response_id, ra.audience_id, ra.timeline_days, ra.comments,
			ra.final_loi, ra.final_ir, ra.final_timeline,
			ra.communication_rating, ra.engagement_rating, ra.problem_solving_rating,
			ra.additional_feedback
		FROM response_audiences ra
		JOIN partner_responses pr ON pr.id = ra.response_id
		JOIN target_audiences ta ON ta.id = ra.audience_id
		WHERE pr.bid_id = $1 ORDER BY ta.ordinal`, bidID)
	if err != nil {
		return nil, fmt.Errorf("list response audiences: %w", err)
	}
	audByID := map[string]*entity.ResponseAudience{}
	for audRows.Next() {
		var a entity.ResponseAudience
		if err := audRows.Scan(&a.ID, &a.ResponseID, &a.AudienceID, &a.TimelineDays, &a.Comments,
			&a.FinalLOI, &a.FinalIR, &a.FinalTimeline,
			&a.CommunicationRating, &a.EngagementRating, &a.ProblemSolvingRating,
			&a.AdditionalFeedback); err != nil {
			audRows.Close()
			return nil, fmt.Errorf("scan response audience: %w", err)
		}
		resp := byID[a.ResponseID]
		resp.Audiences = append(resp.Audiences, a)
		audByID[a.ID] = &resp.Audiences[len(resp.Audiences)-1]
	}
	audRows.Close()
	if err := audRows.Err(); err != nil {
		return nil, err
	}

	cellRows, err := r.q.Query(ctx, `
		SELECT c.id, c.response_audience_id, c.country, c.commitment_type, c.commitment,
			c.cpi, c.allocation, c.n_delivered, c.quality_rejects, c.final_cpi
		FROM response_cells c
		JOIN response_audiences ra ON ra.id = c.response_audience_id
		JOIN partner_responses pr ON pr.id = ra.response_id
		WHERE pr.bid_id = $1 ORDER BY c.country`, bidID)
	if err != nil {
		return nil, fmt.Errorf("list response cells: %w", err)
	}
	defer cellRows.Close()
	for cellRows.Next() {
		var c entity.ResponseCell
		if err := cellRows.Scan(&c.ID, &c.ResponseAudienceID, &c.Country, &c.CommitmentType,
			&c.Commitment, &c.CPI, &c.Allocation, &c.NDelivered, &c.QualityRejects, &c.FinalCPI); err != nil {
			return nil, fmt.Errorf("scan response cell: %w", err)
		}
		aud := audByID[c.ResponseAudienceID]
		aud.Cells = append(aud.Cells, c)
	}
	return list, cellRows.Err()
}

// Get obtiene una respuesta por su clave de negocio.
func (r *ResponseRepo) Get(bidID, partnerID string, loi int) (*entity.PartnerResponse, error) {
	all, err := r.ListByBid(bidID)
	if err != nil {
		return nil, err
	}
	for _, resp := range all {
		if resp.PartnerID == partnerID && resp.LOI == loi {
			return resp, nil
		}
	}
	return nil, nil
}

// CreateSkeleton crea la respuesta vacía con audiencias y celdas en cero.
// Idempotente: los ON CONFLICT dejan intacto lo ya respondido.
func (r *ResponseRepo) CreateSkeleton(resp *entity.PartnerResponse) error {
	ctx := context.Background()

	if resp.ID == "" {
		resp.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO partner_responses (id, bid_id, partner_id, loi, currency, pmf, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (bid_id, partner_id, loi) DO UPDATE SET updated_at = partner_responses.updated_at
		RETURNING id`,
		resp.ID, resp.BidID, resp.PartnerID, resp.LOI, resp.Currency, resp.PMF,
	).Scan(&resp.ID)
	if err != nil {
		return fmt.Errorf("insert response skeleton: %w", err)
	}

	for i := range resp.Audiences {
		a := &resp.Audiences[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		a.ResponseID = resp.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO response_audiences (id, response_id, audience_id, timeline_days, comments)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (response_id, audience_id) DO UPDATE SET audience_id = response_audiences.audience_id
			RETURNING id`,
			a.ID, a.ResponseID, a.AudienceID, a.TimelineDays, a.Comments,
		).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("insert response audience skeleton: %w", err)
		}
		for j := range a.Cells {
			c := &a.Cells[j]
			if c.ID == "" {
				c.ID = uuid.New().String()
			}
			c.ResponseAudienceID = a.ID
			_, err := r.q.Exec(ctx, `
				INSERT INTO response_cells (id, response_audience_id, country, commitment_type, commitment, cpi)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (response_audience_id, country) DO NOTHING`,
				c.ID, c.ResponseAudienceID, c.Country, c.CommitmentType, c.Commitment, c.CPI,
			)
			if err != nil {
				return fmt.Errorf("insert response cell skeleton: %w", err)
			}
		}
	}
	return nil
}

// SaveCommitments persiste encabezado, timelines y celdas de compromiso de
// una respuesta ya cargada (IDs poblados). Se invoca dentro del TxRunner:
// o se escriben todas las celdas o ninguna.
func (r *ResponseRepo) SaveCommitments(resp *entity.PartnerResponse) error {
	ctx := context.Background()

	_, err := r.q.Exec(ctx,
		`UPDATE partner_responses SET currency = $2, pmf = $3, updated_at = now() WHERE id = $1`,
		resp.ID, resp.Currency, resp.PMF,
	)
	if err != nil {
		return fmt.Errorf("update response header: %w", err)
	}

	for i := range resp.Audiences {
		a := &resp.Audiences[i]
		_, err := r.q.Exec(ctx,
			`UPDATE response_audiences SET timeline_days = $2, comments = $3 WHERE id = $1`,
			a.ID, a.TimelineDays, a.Comments,
		)
		if err != nil {
			return fmt.Errorf("update response audience: %w", err)
		}
		for j := range a.Cells {
			c := &a.Cells[j]
			_, err := r.q.Exec(ctx,
				`UPDATE response_cells SET commitment_type = $2, commitment = $3, cpi = $4 WHERE id = $1`,
				c.ID, c.CommitmentType, c.Commitment, c.CPI,
			)
			if err != nil {
				return fmt.Errorf("update response cell: %w", err)
			}
		}
	}
	return nil
}

// updateCellByKey actualiza una columna de la celda direccionada por la clave
// de negocio (bid, partner, loi, audiencia, país).
func (r *ResponseRepo) updateCellByKey(k repository.CellKey, set string, value any) (bool, error) {
	query := `
		UPDATE response_cells c SET ` + set + ` = $6
		FROM response_audiences ra
		JOIN partner_responses pr ON pr.id = ra.response_id
		WHERE c.response_audience_id = ra.id
			AND pr.bid_id = $1 AND pr.partner_id = $2 AND pr.loi = $3
			AND ra.audience_id = $4 AND c.country = $5`
	cmd, err := r.q.Exec(context.Background(), query,
		k.BidID, k.PartnerID, k.LOI, k.AudienceID, k.Country, value)
	if err != nil {
		return false, fmt.Errorf("update cell %s: %w", set, err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SetAllocation actualiza la asignación de la celda. La clave única de la
// tabla garantiza una sola fila por (respuesta-audiencia, país).
func (r *ResponseRepo) SetAllocation(k repository.CellKey, value int) (bool, error) {
	return r.updateCellByKey(k, "allocation", value)
}

// SetDelivered registra los completes entregados y los rechazos de calidad
// de la celda, ambos por país.
func (r *ResponseRepo) SetDelivered(k repository.CellKey, n, qualityRejects int) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE response_cells c SET n_delivered = $6, quality_rejects = $7
		FROM response_audiences ra
		JOIN partner_responses pr ON pr.id = ra.response_id
		WHERE c.response_audience_id = ra.id
			AND pr.bid_id = $1 AND pr.partner_id = $2 AND pr.loi = $3
			AND ra.audience_id = $4 AND c.country = $5`,
		k.BidID, k.PartnerID, k.LOI, k.AudienceID, k.Country, n, qualityRejects)
	if err != nil {
		return false, fmt.Errorf("update cell delivered: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SetFinalCPI fija el CPI final reconciliado de la celda.
func (r *ResponseRepo) SetFinalCPI(k repository.CellKey, cpi decimal.Decimal) (bool, error) {
	return r.updateCellByKey(k, "final_cpi", cpi)
}

// SaveAudienceClosure guarda métricas finales y evaluación del partner. Los
// rechazos de calidad no se escriben aquí: viven en las celdas, por país.
func (r *ResponseRepo) SaveAudienceClosure(a *entity.ResponseAudience) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE response_audiences SET final_loi = $2, final_ir = $3, final_timeline = $4,
			communication_rating = $5, engagement_rating = $6,
			problem_solving_rating = $7, additional_feedback = $8
		WHERE id = $1`,
		a.ID, a.FinalLOI, a.FinalIR, a.FinalTimeline,
		a.CommunicationRating, a.EngagementRating, a.ProblemSolvingRating, a.AdditionalFeedback,
	)
	if err != nil {
		return fmt.Errorf("save audience closure: %w", err)
	}
	return nil
}

// SetFieldCloseDate fija la fecha de cierre de campo de un (partner, LOI).
func (r *ResponseRepo) SetFieldCloseDate(bidID, partnerID string, loi int, date time.Time) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE partner_responses SET field_close_date = $4, updated_at = now()
		WHERE bid_id = $1 AND partner_id = $2 AND loi = $3`,
		bidID, partnerID, loi, date,
	)
	if err != nil {
		return fmt.Errorf("set field close date: %w", err)
	}
	return nil
}

// SaveInvoiceHeader guarda los datos de factura de un (partner, LOI).
func (r *ResponseRepo) SaveInvoiceHeader(bidID, partnerID string, loi int, h repository.InvoiceHeader) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE partner_responses SET invoice_date = $4, invoice_sent = $5, invoice_serial = $6,
			invoice_number = $7, invoice_amount = $8, updated_at = now()
		WHERE bid_id = $1 AND partner_id = $2 AND loi = $3`,
		bidID, partnerID, loi,
		h.InvoiceDate, h.InvoiceSent, h.InvoiceSerial, h.InvoiceNumber, h.InvoiceAmount,
	)
	if err != nil {
		return fmt.Errorf("save invoice header: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MetricsByBids agrega por bid los totales de los listados por fase. Los
// promedios ignoran audiencias sin cierre (final_loi/final_ir en NULL).
func (r *ResponseRepo) MetricsByBids(bidIDs []string) (map[string]entity.BidListMetrics, error) {
	if len(bidIDs) == 0 {
		return map[string]entity.BidListMetrics{}, nil
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT pr.bid_id,
			COALESCE(c.total_allocated, 0),
			COALESCE(c.total_delivered, 0),
			COALESCE(c.quality_rejects, 0),
			COALESCE(a.avg_final_loi, 0),
			COALESCE(a.avg_final_ir, 0),
			COALESCE(SUM(pr.invoice_amount), 0)
		FROM partner_responses pr
		LEFT JOIN (
			SELECT p.bid_id,
				SUM(rc.allocation) AS total_allocated,
				SUM(COALESCE(rc.n_delivered, 0)) AS total_delivered,
				SUM(rc.quality_rejects) AS quality_rejects
			FROM partner_responses p
			JOIN response_audiences ra ON ra.response_id = p.id
			JOIN response_cells rc ON rc.response_audience_id = ra.id
			WHERE p.bid_id = ANY($1)
			GROUP BY p.bid_id
		) c ON c.bid_id = pr.bid_id
		LEFT JOIN (
			SELECT p.bid_id,
				AVG(ra.final_loi) AS avg_final_loi,
				AVG(ra.final_ir) AS avg_final_ir
			FROM partner_responses p
			JOIN response_audiences ra ON ra.response_id = p.id
			WHERE p.bid_id = ANY($1)
			GROUP BY p.bid_id
		) a ON a.bid_id = pr.bid_id
		WHERE pr.bid_id = ANY($1)
		GROUP BY pr.bid_id, c.total_allocated, c.total_delivered,
			c.quality_rejects, a.avg_final_loi, a.avg_final_ir`,
		bidIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("bid metrics: %w", err)
	}
	defer rows.Close()

	out := make(map[string]entity.BidListMetrics, len(bidIDs))
	for rows.Next() {
		var bidID string
		var m entity.BidListMetrics
		if err := rows.Scan(&bidID, &m.TotalAllocated, &m.TotalDelivered,
			&m.QualityRejects, &m.AvgFinalLOI, &m.AvgFinalIR, &m.InvoiceAmount); err != nil {
			return nil, fmt.Errorf("scan bid metrics: %w", err)
		}
		out[bidID] = m
	}
	return out, rows.Err()
}
