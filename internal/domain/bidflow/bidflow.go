// Package bidflow implementa la máquina de estados del ciclo de vida de un
// bid. Es lógica pura: decide qué transiciones son legales y qué datos exige
// cada una; la serialización de transiciones concurrentes la resuelve la capa
// de persistencia con un update condicionado al estado origen.
package bidflow

import (
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
)

// Requirements datos adicionales que exige una transición.
type Requirements struct {
	PONumber        bool // el caller debe aportar número de PO
	RejectionReason bool // el caller debe aportar motivo de rechazo
}

// transitions tabla de aristas legales. Toda transición ausente es inválida.
// completed solo se alcanza vía el submit de factura, nunca por el endpoint
// genérico de estado.
var transitions = map[string]map[string]Requirements{
	entity.StatusDraft: {
		entity.StatusInField:  {PONumber: true},
		entity.StatusRejected: {RejectionReason: true},
	},
	entity.StatusRejected: {
		entity.StatusDraft: {},
	},
	entity.StatusInField: {
		entity.StatusClosure: {},
	},
	entity.StatusClosure: {
		entity.StatusInField:         {},
		entity.StatusReadyForInvoice: {},
	},
	entity.StatusReadyForInvoice: {
		entity.StatusClosure:   {},
		entity.StatusInField:   {PONumber: true},
		entity.StatusCompleted: {},
	},
}

// IsValidStatus indica si s es un estado conocido.
func IsValidStatus(s string) bool {
	switch s {
	case entity.StatusDraft, entity.StatusInField, entity.StatusClosure,
		entity.StatusReadyForInvoice, entity.StatusCompleted, entity.StatusRejected:
		return true
	}
	return false
}

// CanTransition indica si la arista from→to existe en la tabla.
func CanTransition(from, to string) bool {
	_, ok := transitions[from][to]
	return ok
}

// Transition valida la arista from→to y devuelve los requisitos de la
// transición. Retorna domain.ErrInvalidTransition si la arista no existe.
func Transition(from, to string) (Requirements, error) {
	req, ok := transitions[from][to]
	if !ok {
		return Requirements{}, domain.ErrInvalidTransition
	}
	return req, nil
}
