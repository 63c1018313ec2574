package repository

import (
	"time"

	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del log de movimientos
// (append-only; los movimientos nunca se actualizan ni se borran).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByIngredient(ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// CountByReference permite verificar idempotencia de restauraciones por tag.
	CountByReference(reference string) (int, error)
}
