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

// Adaptadores de las entidades de directorio: clientes, contactos de ventas,
// vendor managers y partners. CRUD plano sin sorpresas; el único caso especial
// es el código de negocio secuencial de partners.

var _ repository.ClientRepository = (*ClientRepo)(nil)
var _ repository.SalesContactRepository = (*SalesContactRepo)(nil)
var _ repository.VendorManagerRepository = (*VendorManagerRepo)(nil)
var _ repository.PartnerRepository = (*PartnerRepo)(nil)
var _ repository.CountryRepository = (*CountryRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

// ClientRepo adaptador de persistencia para clientes.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func (r *ClientRepo) Create(c *entity.Client) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO clients (id, name, contact_person, email, phone, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.ContactPerson, c.Email, c.Phone, c.Country, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(context.Background(), `
		SELECT id, name, contact_person, email, phone, country, created_at, updated_at
		FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.ContactPerson, &c.Email, &c.Phone, &c.Country, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, name, contact_person, email, phone, country, created_at, updated_at
		FROM clients ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactPerson, &c.Email, &c.Phone, &c.Country,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *ClientRepo) Update(c *entity.Client) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE clients SET name = $2, contact_person = $3, email = $4, phone = $5, country = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Name, c.ContactPerson, c.Email, c.Phone, c.Country, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Contactos de ventas
// ──────────────────────────────────────────────────────────────────────────────

// SalesContactRepo adaptador de persistencia para contactos de ventas.
type SalesContactRepo struct {
	q Querier
}

// NewSalesContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesContactRepository(q Querier) *SalesContactRepo {
	return &SalesContactRepo{q: q}
}

func (r *SalesContactRepo) Create(s *entity.SalesContact) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO sales_contacts (id, name, email, region, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.Email, s.Region, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sales contact: %w", err)
	}
	return nil
}

func (r *SalesContactRepo) GetByID(id string) (*entity.SalesContact, error) {
	var s entity.SalesContact
	err := r.q.QueryRow(context.Background(), `
		SELECT id, name, email, region, created_at, updated_at FROM sales_contacts WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Region, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales contact: %w", err)
	}
	return &s, nil
}

func (r *SalesContactRepo) List(limit, offset int) ([]*entity.SalesContact, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, name, email, region, created_at, updated_at
		FROM sales_contacts ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesContact
	for rows.Next() {
		var s entity.SalesContact
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Region, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales contact: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SalesContactRepo) Update(s *entity.SalesContact) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE sales_contacts SET name = $2, email = $3, region = $4, updated_at = $5 WHERE id = $1`,
		s.ID, s.Name, s.Email, s.Region, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SalesContactRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales_contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales contact: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Vendor managers
// ──────────────────────────────────────────────────────────────────────────────

// VendorManagerRepo adaptador de persistencia para vendor managers.
type VendorManagerRepo struct {
	q Querier
}

// NewVendorManagerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorManagerRepository(q Querier) *VendorManagerRepo {
	return &VendorManagerRepo{q: q}
}

func (r *VendorManagerRepo) Create(v *entity.VendorManager) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO vendor_managers (id, name, email, team, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.Name, v.Email, v.Team, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vendor manager: %w", err)
	}
	return nil
}

func (r *VendorManagerRepo) GetByID(id string) (*entity.VendorManager, error) {
	var v entity.VendorManager
	err := r.q.QueryRow(context.Background(), `
		SELECT id, name, email, team, created_at, updated_at FROM vendor_managers WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.Email, &v.Team, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor manager: %w", err)
	}
	return &v, nil
}

func (r *VendorManagerRepo) List(limit, offset int) ([]*entity.VendorManager, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, name, email, team, created_at, updated_at
		FROM vendor_managers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendor managers: %w", err)
	}
	defer rows.Close()
	var list []*entity.VendorManager
	for rows.Next() {
		var v entity.VendorManager
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Team, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vendor manager: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

func (r *VendorManagerRepo) Update(v *entity.VendorManager) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE vendor_managers SET name = $2, email = $3, team = $4, updated_at = $5 WHERE id = $1`,
		v.ID, v.Name, v.Email, v.Team, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor manager: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VendorManagerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vendor_managers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor manager: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Partners
// ──────────────────────────────────────────────────────────────────────────────

// PartnerRepo adaptador de persistencia para partners.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

const partnerColumns = `id, code, name, contact_person, email, phone, website, specialty, created_at, updated_at`

// Create persiste el partner. El código de negocio (Partner_N) lo genera la
// secuencia dentro del INSERT; creaciones concurrentes no colisionan.
func (r *PartnerRepo) Create(p *entity.Partner) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO partners (id, code, name, contact_person, email, phone, website, specialty, created_at, updated_at)
		VALUES ($1, 'Partner_' || nextval('partner_code_seq'), $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING code`,
		p.ID, p.Name, p.ContactPerson, p.Email, p.Phone, p.Website, p.Specialty,
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.Code)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

func (r *PartnerRepo) GetByID(id string) (*entity.Partner, error) {
	var p entity.Partner
	err := r.q.QueryRow(context.Background(),
		`SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id,
	).Scan(&p.ID, &p.Code, &p.Name, &p.ContactPerson, &p.Email, &p.Phone, &p.Website,
		&p.Specialty, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return &p, nil
}

// GetByIDs obtiene varios partners de una vez (para armar las respuestas de
// un bid sin N+1).
func (r *PartnerRepo) GetByIDs(ids []string) ([]*entity.Partner, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT `+partnerColumns+` FROM partners WHERE id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("get partners: %w", err)
	}
	defer rows.Close()
	return scanPartners(rows)
}

func (r *PartnerRepo) List(limit, offset int) ([]*entity.Partner, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+partnerColumns+` FROM partners ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()
	return scanPartners(rows)
}

func scanPartners(rows pgx.Rows) ([]*entity.Partner, error) {
	var list []*entity.Partner
	for rows.Next() {
		var p entity.Partner
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.ContactPerson, &p.Email, &p.Phone,
			&p.Website, &p.Specialty, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *PartnerRepo) Update(p *entity.Partner) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE partners SET name = $2, contact_person = $3, email = $4, phone = $5,
			website = $6, specialty = $7, updated_at = $8
		WHERE id = $1`,
		p.ID, p.Name, p.ContactPerson, p.Email, p.Phone, p.Website, p.Specialty, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartnerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete partner: %w", err)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Países
// ──────────────────────────────────────────────────────────────────────────────

// CountryRepo catálogo de países sembrado por migración (solo lectura).
type CountryRepo struct {
	q Querier
}

// NewCountryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountryRepository(q Querier) *CountryRepo {
	return &CountryRepo{q: q}
}

func (r *CountryRepo) List() ([]entity.Country, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT code, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()
	var list []entity.Country
	for rows.Next() {
		var c entity.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
