package inventory

import (
	"context"

	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// TxRepos repositorios atados a una transacción para operaciones de inventario.
type TxRepos struct {
	Ingredients repository.IngredientRepository
	Movements   repository.StockMovementRepository
	Audit       repository.AuditLogRepository
}

// Ledger devuelve los repos en la forma que consume el ledger.
func (r TxRepos) Ledger() LedgerRepos {
	return LedgerRepos{Ingredients: r.Ingredients, Movements: r.Movements}
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
