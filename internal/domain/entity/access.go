package entity

import "time"

// Estados de una solicitud de acceso a un bid.
const (
	AccessPending = "pending"
	AccessGranted = "granted"
	AccessDenied  = "denied"
)

// AccessRequest solicitud de un usuario para ver un bid de otro equipo.
type AccessRequest struct {
	ID         string
	BidID      string
	UserID     string
	Team       string
	Status     string // pending, granted, denied
	Reason     string
	ResolvedBy string
	ResolvedAt *time.Time
	CreatedAt  time.Time
}

// AccessGrant concesión de acceso explícita resultante de una solicitud
// aprobada. La consulta de visibilidad la usa junto con la regla de equipo.
type AccessGrant struct {
	ID        string
	BidID     string
	UserID    string
	GrantedBy string
	CreatedAt time.Time
}
