package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// ManualOverrideReference etiqueta movimientos generados por edición directa de stock.
const ManualOverrideReference = "MANUAL_OVERRIDE"

// UseCase administra ingredientes y movimientos manuales (compra, merma, ajuste).
// Toda mutación de stock pasa por el ledger dentro de una transacción; no existe
// camino de escritura directa sobre current_stock.
type UseCase struct {
	txRunner    TxRunner
	ledger      *Ledger
	ingredients repository.IngredientRepository
	movements   repository.StockMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	ledger *Ledger,
	ingredients repository.IngredientRepository,
	movements repository.StockMovementRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, ledger: ledger, ingredients: ingredients, movements: movements}
}

// CreateIngredientInput entrada para crear un ingrediente.
type CreateIngredientInput struct {
	Name         string
	Unit         string
	CurrentStock decimal.Decimal
	ReorderLevel decimal.Decimal
	CostPerUnit  decimal.Decimal
}

// CreateIngredient crea el ingrediente; si trae stock inicial, lo registra como
// movimiento de compra para que el invariante stock == Σ movimientos se cumpla
// desde el primer día.
func (uc *UseCase) CreateIngredient(ctx context.Context, actor audit.Actor, in CreateIngredientInput) (*entity.Ingredient, error) {
	if in.Name == "" || in.Unit == "" || in.CurrentStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.ingredients.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	ingredient := &entity.Ingredient{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Unit:         in.Unit,
		CurrentStock: decimal.Zero,
		ReorderLevel: in.ReorderLevel,
		CostPerUnit:  in.CostPerUnit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Ingredients.Create(ingredient); err != nil {
			return err
		}
		if in.CurrentStock.IsPositive() {
			unitCost := in.CostPerUnit
			if _, err := uc.ledger.appendMovement(repos.Ledger(), ingredient, entity.MovementTypePurchase, in.CurrentStock, &unitCost, "", "Stock inicial", actor.UserID); err != nil {
				return err
			}
		}
		return audit.Record(repos.Audit, actor, entity.AuditIngredientCreate, "ingredient", ingredient.ID, map[string]any{
			"name":          ingredient.Name,
			"unit":          ingredient.Unit,
			"current_stock": ingredient.CurrentStock,
			"reorder_level": ingredient.ReorderLevel,
		})
	})
	if err != nil {
		return nil, err
	}
	return ingredient, nil
}

// UpdateIngredientInput entrada de actualización; campos nil no se tocan.
// CurrentStock no se escribe directo: genera un ajuste vía ledger.
type UpdateIngredientInput struct {
	Name         *string
	Unit         *string
	CurrentStock *decimal.Decimal
	ReorderLevel *decimal.Decimal
	CostPerUnit  *decimal.Decimal
}

// UpdateIngredient actualiza metadatos; un cambio de CurrentStock se materializa
// como movimiento "adjustment" con referencia MANUAL_OVERRIDE (rastro auditable).
func (uc *UseCase) UpdateIngredient(ctx context.Context, actor audit.Actor, id string, in UpdateIngredientInput) (*entity.Ingredient, error) {
	if in.CurrentStock != nil && in.CurrentStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Ingredient
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		ingredient, err := repos.Ingredients.GetForUpdate(id)
		if err != nil {
			return err
		}
		if ingredient == nil {
			return domain.ErrNotFound
		}

		if in.CurrentStock != nil {
			delta := in.CurrentStock.Sub(ingredient.CurrentStock)
			if !delta.IsZero() {
				notes := fmt.Sprintf("Stock fijado de %s a %s", ingredient.CurrentStock.String(), in.CurrentStock.String())
				if _, err := uc.ledger.appendMovement(repos.Ledger(), ingredient, entity.MovementTypeAdjustment, delta, nil, ManualOverrideReference, notes, actor.UserID); err != nil {
					return err
				}
			}
		}
		if in.Name != nil {
			ingredient.Name = *in.Name
		}
		if in.Unit != nil {
			ingredient.Unit = *in.Unit
		}
		if in.ReorderLevel != nil {
			ingredient.ReorderLevel = *in.ReorderLevel
		}
		if in.CostPerUnit != nil {
			ingredient.CostPerUnit = *in.CostPerUnit
		}
		ingredient.UpdatedAt = time.Now()
		if err := repos.Ingredients.Update(ingredient); err != nil {
			return err
		}
		updated = ingredient
		return audit.Record(repos.Audit, actor, entity.AuditIngredientUpdate, "ingredient", ingredient.ID, map[string]any{
			"name":          ingredient.Name,
			"current_stock": ingredient.CurrentStock,
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ManualMovementInput entrada para un movimiento manual.
type ManualMovementInput struct {
	IngredientID string
	Type         string // purchase, waste, adjustment
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Reference    string
	Notes        string
}

// RegisterManualMovement registra compra (+), merma (−) o ajuste (firmado),
// validando que el stock proyectado no quede negativo. Transaccional con su
// registro de auditoría.
func (uc *UseCase) RegisterManualMovement(ctx context.Context, actor audit.Actor, in ManualMovementInput) (*entity.StockMovement, error) {
	var delta decimal.Decimal
	switch in.Type {
	case entity.MovementTypePurchase:
		delta = in.Quantity.Abs()
		if in.UnitCost == nil || in.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeWaste:
		delta = in.Quantity.Abs().Neg()
	case entity.MovementTypeAdjustment:
		delta = in.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}
	if delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		ingredient, err := repos.Ingredients.GetForUpdate(in.IngredientID)
		if err != nil {
			return err
		}
		if ingredient == nil {
			return domain.ErrNotFound
		}
		projected := ingredient.CurrentStock.Add(delta)
		if projected.IsNegative() {
			return &domain.InsufficientInventoryError{Shortages: []domain.Shortage{{
				IngredientID:   ingredient.ID,
				IngredientName: ingredient.Name,
				Available:      ingredient.CurrentStock,
				Required:       delta.Neg(),
				Unit:           ingredient.Unit,
			}}}
		}
		movement, err := uc.ledger.appendMovement(repos.Ledger(), ingredient, in.Type, delta, in.UnitCost, in.Reference, in.Notes, actor.UserID)
		if err != nil {
			return err
		}
		created = movement
		return audit.Record(repos.Audit, actor, entity.AuditManualMovement, "ingredient", ingredient.ID, map[string]any{
			"type":      in.Type,
			"quantity":  delta,
			"reference": in.Reference,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListIngredients lista todos los ingredientes.
func (uc *UseCase) ListIngredients(ctx context.Context) ([]*entity.Ingredient, error) {
	return uc.ingredients.List()
}

// GetIngredient devuelve un ingrediente por id.
func (uc *UseCase) GetIngredient(ctx context.Context, id string) (*entity.Ingredient, error) {
	ingredient, err := uc.ingredients.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, domain.ErrNotFound
	}
	return ingredient, nil
}

// ListLowStock devuelve los ingredientes en o bajo su punto de reorden.
func (uc *UseCase) ListLowStock(ctx context.Context) ([]*entity.Ingredient, error) {
	return uc.ingredients.ListLowStock()
}

// ListMovements lista los movimientos de un ingrediente en un rango de fechas.
func (uc *UseCase) ListMovements(ctx context.Context, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.movements.ListByIngredient(ingredientID, from, to, limit, offset)
}
