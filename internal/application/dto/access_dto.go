package dto

import "time"

// AccessCheckResponse resultado de la verificación de acceso a un bid.
type AccessCheckResponse struct {
	HasAccess bool   `json:"has_access"`
	Reason    string `json:"reason,omitempty"`
}

// AccessRequestCreate solicitud de acceso a un bid ajeno.
type AccessRequestCreate struct {
	BidID  string `json:"bid_id"`
	Reason string `json:"reason,omitempty"`
}

// AccessRequestView solicitud de acceso con su estado.
type AccessRequestView struct {
	ID         string    `json:"id"`
	BidID      string    `json:"bid_id"`
	UserID     string    `json:"user_id"`
	Team       string    `json:"team"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `json:"status"`
	ResolvedBy string    `json:"resolved_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AccessGrantView concesión de acceso vigente sobre un bid.
type AccessGrantView struct {
	ID        string    `json:"id"`
	BidID     string    `json:"bid_id"`
	UserID    string    `json:"user_id"`
	GrantedBy string    `json:"granted_by"`
	CreatedAt time.Time `json:"created_at"`
}

// RevokeAccessRequest retira la concesión de un usuario sobre un bid.
type RevokeAccessRequest struct {
	BidID  string `json:"bid_id"`
	UserID string `json:"user_id"`
}
