// Package order contiene los servicios de dominio de la orden: la máquina de
// estados del ciclo de vida y el diff estructural entre líneas.
package order

import (
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// transitions es la tabla explícita de aristas legales de la máquina de estados.
// completed y cancelled son terminales; cancelled solo es alcanzable desde
// pending o preparing.
var transitions = map[string][]string{
	entity.OrderStatusPending:   {entity.OrderStatusPreparing, entity.OrderStatusCancelled},
	entity.OrderStatusPreparing: {entity.OrderStatusReady, entity.OrderStatusCancelled},
	entity.OrderStatusReady:     {entity.OrderStatusCompleted},
	entity.OrderStatusCompleted: {},
	entity.OrderStatusCancelled: {},
}

// amendableStatuses: estados en los que la orden todavía admite reemplazo de líneas.
var amendableStatuses = map[string]bool{
	entity.OrderStatusPending:   true,
	entity.OrderStatusPreparing: true,
	entity.OrderStatusReady:     true,
}

// CanTransition indica si la arista (from -> to) es legal.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition retorna InvalidTransitionError si la arista es ilegal.
// Pedir el mismo estado también es inválido: no hay auto-aristas.
func ValidateTransition(from, to string) error {
	if !CanTransition(from, to) {
		return &domain.InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// CanAmend indica si una orden en el estado dado admite modificación de líneas.
func CanAmend(status string) bool {
	return amendableStatuses[status]
}

// IsValidStatus indica si el string es un estado conocido de la máquina.
func IsValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}
