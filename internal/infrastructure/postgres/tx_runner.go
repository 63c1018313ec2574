package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/breakfast-pos/internal/application/inventory"
	"github.com/tu-usuario/breakfast-pos/internal/application/orders"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
)

var _ inventory.TxRunner = (*InventoryTxRunner)(nil)
var _ orders.TxRunner = (*OrderTxRunner)(nil)

// lockTimeout acota la espera por filas bloqueadas dentro de una transacción.
// Al expirar, PostgreSQL responde 55P03 y la operación se reporta como
// conflicto de concurrencia en vez de quedar encolada indefinidamente.
const lockTimeout = "3s"

// runInTx inicia una transacción con lock_timeout local, ejecuta fn y hace
// Commit o Rollback. Traduce errores de unicidad y de lock a errores de dominio.
func runInTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%s'", lockTimeout)); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	if err := fn(tx); err != nil {
		return translateTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", translateTxError(err))
	}
	return nil
}

func translateTxError(err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	case isLockNotAvailable(err):
		return fmt.Errorf("%w: %v", domain.ErrConcurrentModification, err)
	default:
		return err
	}
}

// InventoryTxRunner ejecuta callbacks del motor de inventario en una transacción.
type InventoryTxRunner struct {
	pool *pgxpool.Pool
}

// NewInventoryTxRunner construye el runner con el pool.
func NewInventoryTxRunner(pool *pgxpool.Pool) *InventoryTxRunner {
	return &InventoryTxRunner{pool: pool}
}

// Run ejecuta fn con repositorios atados a la transacción.
func (r *InventoryTxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(inventory.TxRepos{
			Ingredients: NewIngredientRepository(tx),
			Movements:   NewStockMovementRepository(tx),
			Audit:       NewAuditLogRepository(tx),
		})
	})
}

// OrderTxRunner ejecuta callbacks del coordinador de órdenes en una transacción.
type OrderTxRunner struct {
	pool *pgxpool.Pool
}

// NewOrderTxRunner construye el runner con el pool.
func NewOrderTxRunner(pool *pgxpool.Pool) *OrderTxRunner {
	return &OrderTxRunner{pool: pool}
}

// Run ejecuta fn con todos los repositorios que componen una operación de orden
// atados a la misma transacción.
func (r *OrderTxRunner) Run(ctx context.Context, fn func(repos orders.TxRepos) error) error {
	return runInTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(orders.TxRepos{
			Orders:      NewOrderRepository(tx),
			MenuItems:   NewMenuItemRepository(tx),
			Recipes:     NewRecipeRepository(tx),
			Ingredients: NewIngredientRepository(tx),
			Movements:   NewStockMovementRepository(tx),
			Audit:       NewAuditLogRepository(tx),
		})
	})
}
