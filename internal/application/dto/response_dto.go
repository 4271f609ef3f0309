package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Las respuestas de partners viajan como mapas anidados:
// responses["{partnerId}-{loi}"].audiences["audience-{ordinal}"].countries["India"].
// El partnerId es un UUID (contiene guiones), así que la clave se parte por el
// último guión.

// ResponseKey arma la clave de una respuesta (partner, LOI).
func ResponseKey(partnerID string, loi int) string {
	return fmt.Sprintf("%s-%d", partnerID, loi)
}

// ParseResponseKey descompone "{partnerId}-{loi}".
func ParseResponseKey(key string) (partnerID string, loi int, err error) {
	i := strings.LastIndexByte(key, '-')
	if i <= 0 || i == len(key)-1 {
		return "", 0, fmt.Errorf("clave de respuesta inválida: %q", key)
	}
	loi, err = strconv.Atoi(key[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("clave de respuesta inválida: %q", key)
	}
	return key[:i], loi, nil
}

// AudienceKey arma la clave "audience-{ordinal}".
func AudienceKey(ordinal int) string {
	return fmt.Sprintf("audience-%d", ordinal)
}

// ParseAudienceKey descompone "audience-{ordinal}".
func ParseAudienceKey(key string) (ordinal int, err error) {
	rest, ok := strings.CutPrefix(key, "audience-")
	if !ok {
		return 0, fmt.Errorf("clave de audiencia inválida: %q", key)
	}
	ordinal, err = strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("clave de audiencia inválida: %q", key)
	}
	return ordinal, nil
}

// CellPayload celda de compromiso por país.
type CellPayload struct {
	CommitmentType string          `json:"commitment_type"`
	Commitment     int             `json:"commitment"`
	CPI            decimal.Decimal `json:"cpi"`
}

// AudienceResponsePayload datos por audiencia: timeline más celdas por país.
type AudienceResponsePayload struct {
	TimelineDays int                    `json:"timeline"`
	Comments     string                 `json:"comments"`
	Countries    map[string]CellPayload `json:"countries"`
}

// PartnerResponsePayload respuesta de un (partner, LOI).
type PartnerResponsePayload struct {
	Currency  string                             `json:"currency"`
	PMF       decimal.Decimal                    `json:"pmf"`
	Audiences map[string]AudienceResponsePayload `json:"audiences"`
}

// SaveResponsesRequest escritura masiva de respuestas, keyed "{partnerId}-{loi}".
type SaveResponsesRequest struct {
	Responses map[string]PartnerResponsePayload `json:"responses"`
}

// PartnerResponseView respuesta con su flag de completitud.
type PartnerResponseView struct {
	PartnerID string                             `json:"partner_id"`
	LOI       int                                `json:"loi"`
	Currency  string                             `json:"currency"`
	PMF       decimal.Decimal                    `json:"pmf"`
	Complete  bool                               `json:"complete"`
	Audiences map[string]AudienceResponsePayload `json:"audiences"`
}

// ResponsesResponse lectura masiva: todas las respuestas del bid más el flag
// agregado que habilita el submit.
type ResponsesResponse struct {
	Responses   map[string]PartnerResponseView `json:"responses"`
	AllComplete bool                           `json:"all_complete"`
}
