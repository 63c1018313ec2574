// Package inventory implementa el ledger de inventario: las únicas operaciones
// que mutan stock. Cada operación corre dentro de la transacción del caller y
// es todo-o-nada: o se aplican todos los deltas por ingrediente o ninguno.
package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	invdomain "github.com/tu-usuario/breakfast-pos/internal/domain/inventory"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// LedgerRepos agrupa los repositorios atados a la transacción en curso.
type LedgerRepos struct {
	Ingredients repository.IngredientRepository
	Movements   repository.StockMovementRepository
}

// Ledger operaciones atómicas de stock. Sin estado propio: todo el estado vive
// en la base de datos y se serializa con bloqueos de fila por ingrediente.
type Ledger struct {
	now func() time.Time
}

// NewLedger construye el ledger.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// lockAll bloquea las filas de todos los ingredientes en orden ascendente de id
// (orden estable: evita deadlocks entre órdenes que compiten por los mismos insumos).
// Los requirements ya vienen ordenados por id desde el dominio.
func (l *Ledger) lockAll(repos LedgerRepos, reqs []invdomain.Requirement) (map[string]*entity.Ingredient, error) {
	locked := make(map[string]*entity.Ingredient, len(reqs))
	for _, req := range reqs {
		ingredient, err := repos.Ingredients.GetForUpdate(req.IngredientID)
		if err != nil {
			return nil, err
		}
		if ingredient == nil {
			return nil, fmt.Errorf("ingrediente %s: %w", req.IngredientID, domain.ErrNotFound)
		}
		locked[req.IngredientID] = ingredient
	}
	return locked, nil
}

// appendMovement agrega un movimiento firmado y materializa el nuevo stock.
// Es el único camino de escritura sobre CurrentStock.
func (l *Ledger) appendMovement(
	repos LedgerRepos,
	ingredient *entity.Ingredient,
	movementType string,
	quantity decimal.Decimal,
	unitCost *decimal.Decimal,
	reference, notes, userID string,
) (*entity.StockMovement, error) {
	movement := &entity.StockMovement{
		IngredientID: ingredient.ID,
		Type:         movementType,
		Quantity:     quantity,
		UnitCost:     unitCost,
		Reference:    reference,
		Notes:        notes,
		CreatedAt:    l.now(),
		CreatedBy:    userID,
	}
	if err := repos.Movements.Create(movement); err != nil {
		return nil, err
	}
	ingredient.CurrentStock = ingredient.CurrentStock.Add(quantity)
	if unitCost != nil && !unitCost.IsNegative() {
		ingredient.CostPerUnit = *unitCost
	}
	ingredient.UpdatedAt = l.now()
	if err := repos.Ingredients.UpdateStock(ingredient); err != nil {
		return nil, err
	}
	return movement, nil
}

// ReserveAndDeduct valida que el stock alcance para todos los requerimientos y,
// solo si alcanzan todos, descuenta cada uno con un movimiento "usage" negativo
// etiquetado con reference. Si falta cualquiera, retorna InsufficientInventoryError
// con la lista completa de faltantes y no descuenta nada.
// Comparaciones exactas sobre decimales: nunca tolerancia epsilon.
// Retorna los ingredientes tocados con su stock ya actualizado.
func (l *Ledger) ReserveAndDeduct(repos LedgerRepos, reqs []invdomain.Requirement, reference, userID string) ([]*entity.Ingredient, error) {
	reqs = invdomain.Aggregate(reqs)
	locked, err := l.lockAll(repos, reqs)
	if err != nil {
		return nil, err
	}

	var shortages []domain.Shortage
	for _, req := range reqs {
		ingredient := locked[req.IngredientID]
		if ingredient.CurrentStock.LessThan(req.Quantity) {
			shortages = append(shortages, domain.Shortage{
				IngredientID:   ingredient.ID,
				IngredientName: ingredient.Name,
				Available:      ingredient.CurrentStock,
				Required:       req.Quantity,
				Unit:           ingredient.Unit,
			})
		}
	}
	if len(shortages) > 0 {
		return nil, &domain.InsufficientInventoryError{Shortages: shortages}
	}

	touched := make([]*entity.Ingredient, 0, len(reqs))
	for _, req := range reqs {
		ingredient := locked[req.IngredientID]
		if _, err := l.appendMovement(repos, ingredient, entity.MovementTypeUsage, req.Quantity.Neg(), nil, reference, "", userID); err != nil {
			return nil, err
		}
		touched = append(touched, ingredient)
	}
	return touched, nil
}

// Restore agrega un movimiento "adjustment" positivo por ingrediente. Restaurar
// stock no puede ser "insuficiente": siempre procede (se usa al cancelar una
// orden pagada, con los ítems registrados al momento de la cancelación).
func (l *Ledger) Restore(repos LedgerRepos, reqs []invdomain.Requirement, reference, notes, userID string) ([]*entity.Ingredient, error) {
	reqs = invdomain.Aggregate(reqs)
	locked, err := l.lockAll(repos, reqs)
	if err != nil {
		return nil, err
	}
	touched := make([]*entity.Ingredient, 0, len(reqs))
	for _, req := range reqs {
		ingredient := locked[req.IngredientID]
		if _, err := l.appendMovement(repos, ingredient, entity.MovementTypeAdjustment, req.Quantity, nil, reference, notes, userID); err != nil {
			return nil, err
		}
		touched = append(touched, ingredient)
	}
	return touched, nil
}

// ApplyDelta aplica el delta neto por ingrediente entre dos conjuntos de
// requerimientos (new − old). Deltas positivos (más consumo) se validan como en
// ReserveAndDeduct; negativos restauran la diferencia. Todos los deltas de la
// llamada comprometen juntos o ninguno.
func (l *Ledger) ApplyDelta(repos LedgerRepos, oldReqs, newReqs []invdomain.Requirement, reference, userID string) ([]*entity.Ingredient, error) {
	deltas := invdomain.Delta(oldReqs, newReqs)
	if len(deltas) == 0 {
		return nil, nil
	}
	locked, err := l.lockAll(repos, deltas)
	if err != nil {
		return nil, err
	}

	var shortages []domain.Shortage
	for _, delta := range deltas {
		if !delta.Quantity.IsPositive() {
			continue
		}
		ingredient := locked[delta.IngredientID]
		if ingredient.CurrentStock.LessThan(delta.Quantity) {
			shortages = append(shortages, domain.Shortage{
				IngredientID:   ingredient.ID,
				IngredientName: ingredient.Name,
				Available:      ingredient.CurrentStock,
				Required:       delta.Quantity,
				Unit:           ingredient.Unit,
			})
		}
	}
	if len(shortages) > 0 {
		return nil, &domain.InsufficientInventoryError{Shortages: shortages}
	}

	touched := make([]*entity.Ingredient, 0, len(deltas))
	for _, delta := range deltas {
		ingredient := locked[delta.IngredientID]
		if delta.Quantity.IsPositive() {
			// Consumo adicional por la modificación
			if _, err := l.appendMovement(repos, ingredient, entity.MovementTypeUsage, delta.Quantity.Neg(), nil, reference, "Ajuste automático por modificación de orden", userID); err != nil {
				return nil, err
			}
		} else {
			// Restauración de la diferencia
			if _, err := l.appendMovement(repos, ingredient, entity.MovementTypeAdjustment, delta.Quantity.Neg(), nil, reference, "Restauración automática por modificación de orden", userID); err != nil {
				return nil, err
			}
		}
		touched = append(touched, ingredient)
	}
	return touched, nil
}
