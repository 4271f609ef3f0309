package repository

import "github.com/jhoicas/bidm-api/internal/domain/entity"

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	Create(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
	Update(c *entity.Client) error
	Delete(id string) error
}

// SalesContactRepository puerto de persistencia para contactos de ventas.
type SalesContactRepository interface {
	Create(s *entity.SalesContact) error
	GetByID(id string) (*entity.SalesContact, error)
	List(limit, offset int) ([]*entity.SalesContact, error)
	Update(s *entity.SalesContact) error
	Delete(id string) error
}

// VendorManagerRepository puerto de persistencia para vendor managers.
type VendorManagerRepository interface {
	Create(v *entity.VendorManager) error
	GetByID(id string) (*entity.VendorManager, error)
	List(limit, offset int) ([]*entity.VendorManager, error)
	Update(v *entity.VendorManager) error
	Delete(id string) error
}

// CountryRepository catálogo de países de solo lectura.
type CountryRepository interface {
	List() ([]entity.Country, error)
}

// PartnerRepository puerto de persistencia para partners. Create asigna el
// código de negocio secuencial (Partner_N) desde la secuencia de la DB.
type PartnerRepository interface {
	Create(p *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	GetByIDs(ids []string) ([]*entity.Partner, error)
	List(limit, offset int) ([]*entity.Partner, error)
	Update(p *entity.Partner) error
	Delete(id string) error
}
