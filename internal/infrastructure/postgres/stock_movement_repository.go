package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, ingredient_id, type, quantity, unit_cost, reference, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.IngredientID, movement.Type, movement.Quantity,
		movement.UnitCost, movement.Reference, movement.Notes, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByIngredient lista movimientos de un ingrediente, recientes primero,
// con filtro opcional de rango de fechas.
func (r *StockMovementRepo) ListByIngredient(ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, ingredient_id, type, quantity, unit_cost, reference, notes, created_at, created_by
		FROM stock_movements
		WHERE ingredient_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, ingredientID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.IngredientID, &m.Type, &m.Quantity, &m.UnitCost, &m.Reference, &m.Notes, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// CountByReference cuenta los movimientos con una referencia exacta. Sirve de
// guarda de idempotencia para restauraciones por cancelación.
func (r *StockMovementRepo) CountByReference(reference string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_movements WHERE reference = $1`, reference,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements by reference: %w", err)
	}
	return count, nil
}
