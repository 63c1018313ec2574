package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrOrderNotAmendable      = errors.New("la orden ya no admite modificaciones")
	ErrOrderNotPayable        = errors.New("la orden no admite pago en su estado actual")
	ErrConcurrentModification = errors.New("conflicto de concurrencia, reintentar")
	ErrTooManyAttempts        = errors.New("demasiados intentos, espere e intente de nuevo")
	ErrShiftAlreadyOpen       = errors.New("ya existe un turno abierto")
	ErrNoOpenShift            = errors.New("no hay turno abierto para cerrar")
)

// InvalidTransitionError indica una arista ilegal en la máquina de estados de la orden.
// La orden queda intacta; el caller recibe el par (desde, hacia) para diagnóstico.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida: %s -> %s", e.From, e.To)
}

// Shortage detalla un faltante de un ingrediente: lo disponible vs lo requerido.
type Shortage struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Available      decimal.Decimal `json:"available"`
	Required       decimal.Decimal `json:"required"`
	Unit           string          `json:"unit"`
}

// InsufficientInventoryError agrupa todos los faltantes detectados en una operación
// del ledger. Nunca hay deducción parcial: o alcanzan todos o no se descuenta ninguno.
type InsufficientInventoryError struct {
	Shortages []Shortage
}

func (e *InsufficientInventoryError) Error() string {
	names := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		names = append(names, s.IngredientName)
	}
	return "inventario insuficiente: " + strings.Join(names, ", ")
}

// AsInsufficientInventory extrae el error tipado de una cadena de errores.
func AsInsufficientInventory(err error) (*InsufficientInventoryError, bool) {
	var target *InsufficientInventoryError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsInvalidTransition extrae el error tipado de una cadena de errores.
func AsInvalidTransition(err error) (*InvalidTransitionError, bool) {
	var target *InvalidTransitionError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
