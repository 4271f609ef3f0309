package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// ╔══════════════════════════════════════════════════════════════════╗
// ║  Catálogos: clientes, contactos de venta, VMs y partners          ║
// ╚══════════════════════════════════════════════════════════════════╝

// DirectoryUseCase agrupa el CRUD de los catálogos que alimentan un bid.
type DirectoryUseCase struct {
	clients   repository.ClientRepository
	sales     repository.SalesContactRepository
	vms       repository.VendorManagerRepository
	partners  repository.PartnerRepository
	countries repository.CountryRepository
}

// NewDirectoryUseCase construye el caso de uso con sus puertos.
func NewDirectoryUseCase(
	clients repository.ClientRepository,
	sales repository.SalesContactRepository,
	vms repository.VendorManagerRepository,
	partners repository.PartnerRepository,
	countries repository.CountryRepository,
) *DirectoryUseCase {
	return &DirectoryUseCase{clients: clients, sales: sales, vms: vms, partners: partners, countries: countries}
}

// ── Clientes ──────────────────────────────────────────────────────────

// CreateClient da de alta un cliente. El nombre es único.
func (uc *DirectoryUseCase) CreateClient(req dto.SaveClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	c := &entity.Client{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Country:       req.Country,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.clients.Create(c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetClient obtiene un cliente por ID.
func (uc *DirectoryUseCase) GetClient(id string) (*dto.ClientResponse, error) {
	c, err := uc.clients.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// ListClients lista clientes paginados.
func (uc *DirectoryUseCase) ListClients(page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.clients.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// UpdateClient actualiza un cliente existente.
func (uc *DirectoryUseCase) UpdateClient(id string, req dto.SaveClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.clients.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	c.Name = strings.TrimSpace(req.Name)
	c.ContactPerson = req.ContactPerson
	c.Email = req.Email
	c.Phone = req.Phone
	c.Country = req.Country
	if err := uc.clients.Update(c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// DeleteClient elimina un cliente.
func (uc *DirectoryUseCase) DeleteClient(id string) error {
	return uc.clients.Delete(id)
}

// ── Contactos de venta ────────────────────────────────────────────────

// CreateSalesContact da de alta un contacto de ventas.
func (uc *DirectoryUseCase) CreateSalesContact(req dto.SaveSalesContactRequest) (*dto.SalesContactResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	s := &entity.SalesContact{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Region:    req.Region,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sales.Create(s); err != nil {
		return nil, err
	}
	return toSalesContactResponse(s), nil
}

// ListSalesContacts lista contactos de venta paginados.
func (uc *DirectoryUseCase) ListSalesContacts(page dto.PageRequest) ([]dto.SalesContactResponse, error) {
	page.DefaultPage()
	list, err := uc.sales.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesContactResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSalesContactResponse(s))
	}
	return out, nil
}

// UpdateSalesContact actualiza un contacto existente.
func (uc *DirectoryUseCase) UpdateSalesContact(id string, req dto.SaveSalesContactRequest) (*dto.SalesContactResponse, error) {
	s, err := uc.sales.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Name = strings.TrimSpace(req.Name)
	s.Email = req.Email
	s.Region = req.Region
	if err := uc.sales.Update(s); err != nil {
		return nil, err
	}
	return toSalesContactResponse(s), nil
}

// DeleteSalesContact elimina un contacto de ventas.
func (uc *DirectoryUseCase) DeleteSalesContact(id string) error {
	return uc.sales.Delete(id)
}

// ── Vendor managers ───────────────────────────────────────────────────

// CreateVendorManager da de alta un VM.
func (uc *DirectoryUseCase) CreateVendorManager(req dto.SaveVendorManagerRequest) (*dto.VendorManagerResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	v := &entity.VendorManager{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Team:      req.Team,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.vms.Create(v); err != nil {
		return nil, err
	}
	return toVendorManagerResponse(v), nil
}

// ListVendorManagers lista VMs paginados.
func (uc *DirectoryUseCase) ListVendorManagers(page dto.PageRequest) ([]dto.VendorManagerResponse, error) {
	page.DefaultPage()
	list, err := uc.vms.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorManagerResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVendorManagerResponse(v))
	}
	return out, nil
}

// UpdateVendorManager actualiza un VM existente.
func (uc *DirectoryUseCase) UpdateVendorManager(id string, req dto.SaveVendorManagerRequest) (*dto.VendorManagerResponse, error) {
	v, err := uc.vms.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	v.Name = strings.TrimSpace(req.Name)
	v.Email = req.Email
	v.Team = req.Team
	if err := uc.vms.Update(v); err != nil {
		return nil, err
	}
	return toVendorManagerResponse(v), nil
}

// DeleteVendorManager elimina un VM.
func (uc *DirectoryUseCase) DeleteVendorManager(id string) error {
	return uc.vms.Delete(id)
}

// ── Partners ──────────────────────────────────────────────────────────

// CreatePartner da de alta un partner. El código Partner_N lo asigna la
// secuencia de la DB dentro del INSERT.
func (uc *DirectoryUseCase) CreatePartner(req dto.SavePartnerRequest) (*dto.PartnerView, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	p := &entity.Partner{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Website:       req.Website,
		Specialty:     req.Specialty,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.partners.Create(p); err != nil {
		return nil, err
	}
	return toPartnerView(p), nil
}

// GetPartner obtiene un partner por ID.
func (uc *DirectoryUseCase) GetPartner(id string) (*dto.PartnerView, error) {
	p, err := uc.partners.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPartnerView(p), nil
}

// ListPartners lista partners paginados.
func (uc *DirectoryUseCase) ListPartners(page dto.PageRequest) ([]dto.PartnerView, error) {
	page.DefaultPage()
	list, err := uc.partners.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartnerView, 0, len(list))
	for _, p := range list {
		out = append(out, *toPartnerView(p))
	}
	return out, nil
}

// UpdatePartner actualiza un partner existente. El código nunca cambia.
func (uc *DirectoryUseCase) UpdatePartner(id string, req dto.SavePartnerRequest) (*dto.PartnerView, error) {
	p, err := uc.partners.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Name = strings.TrimSpace(req.Name)
	p.ContactPerson = req.ContactPerson
	p.Email = req.Email
	p.Phone = req.Phone
	p.Website = req.Website
	p.Specialty = req.Specialty
	if err := uc.partners.Update(p); err != nil {
		return nil, err
	}
	return toPartnerView(p), nil
}

// DeletePartner elimina un partner.
func (uc *DirectoryUseCase) DeletePartner(id string) error {
	return uc.partners.Delete(id)
}

// ── Países ────────────────────────────────────────────────────────────

// ListCountries lista el catálogo completo de países, ordenado por nombre.
func (uc *DirectoryUseCase) ListCountries() ([]dto.CountryView, error) {
	list, err := uc.countries.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CountryView, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CountryView{Code: c.Code, Name: c.Name})
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		Country:       c.Country,
		CreatedAt:     c.CreatedAt,
	}
}

func toSalesContactResponse(s *entity.SalesContact) *dto.SalesContactResponse {
	return &dto.SalesContactResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Region:    s.Region,
		CreatedAt: s.CreatedAt,
	}
}

func toVendorManagerResponse(v *entity.VendorManager) *dto.VendorManagerResponse {
	return &dto.VendorManagerResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Team:      v.Team,
		CreatedAt: v.CreatedAt,
	}
}

func toPartnerView(p *entity.Partner) *dto.PartnerView {
	return &dto.PartnerView{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		ContactPerson: p.ContactPerson,
		Email:         p.Email,
		Phone:         p.Phone,
		Website:       p.Website,
		Specialty:     p.Specialty,
		CreatedAt:     p.CreatedAt,
	}
}
