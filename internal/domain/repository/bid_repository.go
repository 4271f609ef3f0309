package repository

import "github.com/jhoicas/bidm-api/internal/domain/entity"

// BidFilter criterios de listado. El filtrado de visibilidad se resuelve en
// SQL: super admin ve todo; el resto ve bids de su equipo (normalizado),
// creados por él, o con concesión explícita.
type BidFilter struct {
	Search         string // busca en bid_number, study_name y nombre de cliente
	Status         string // vacío = todos
	ViewerID       string
	ViewerTeamNorm string // equipo del caller ya normalizado (access.NormalizeTeam)
	SuperAdmin     bool
	Limit          int
	Offset         int
}

// BidRepository puerto de persistencia para el agregado Bid. Create asigna
// BidNumber desde la secuencia de la DB dentro del INSERT; el número nunca lo
// propone el cliente.
type BidRepository interface {
	Create(b *entity.Bid) error
	GetByID(id string) (*entity.Bid, error)
	GetByNumber(number int) (*entity.Bid, error)
	UpdateDetails(b *entity.Bid) error

	// UpdateStatus cambia el estado solo si el estado actual coincide con
	// from. Devuelve false si otra transición ganó la carrera.
	UpdateStatus(id, from, to string) (bool, error)
	SetRejection(id, reason, comments string) error
	ClearRejection(id string) error
	UpsertPONumber(bidID, poNumber string) error

	SaveAudiences(bidID string, audiences []entity.TargetAudience) error
	SetPartners(bidID string, partnerIDs []string) error

	List(f BidFilter) ([]*entity.Bid, int, error)
}
