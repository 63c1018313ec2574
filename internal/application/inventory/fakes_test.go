package inventory_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/breakfast-pos/internal/application/inventory"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica de copia (como una fila de BD: GetForUpdate
// devuelve una copia y UpdateStock la escribe de vuelta).
// ──────────────────────────────────────────────────────────────────────────────

type fakeIngredientRepo struct {
	rows map[string]entity.Ingredient
}

func newFakeIngredientRepo(ingredients ...entity.Ingredient) *fakeIngredientRepo {
	repo := &fakeIngredientRepo{rows: map[string]entity.Ingredient{}}
	for _, ing := range ingredients {
		repo.rows[ing.ID] = ing
	}
	return repo
}

func (r *fakeIngredientRepo) get(id string) (*entity.Ingredient, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (r *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error)     { return r.get(id) }
func (r *fakeIngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) { return r.get(id) }

func (r *fakeIngredientRepo) GetByName(name string) (*entity.Ingredient, error) {
	for _, row := range r.rows {
		if row.Name == name {
			copied := row
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeIngredientRepo) List() ([]*entity.Ingredient, error) {
	out := make([]*entity.Ingredient, 0, len(r.rows))
	for _, row := range r.rows {
		copied := row
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeIngredientRepo) ListLowStock() ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, row := range r.rows {
		if row.CurrentStock.LessThanOrEqual(row.ReorderLevel) {
			copied := row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeIngredientRepo) Create(ingredient *entity.Ingredient) error {
	r.rows[ingredient.ID] = *ingredient
	return nil
}

func (r *fakeIngredientRepo) Update(ingredient *entity.Ingredient) error {
	r.rows[ingredient.ID] = *ingredient
	return nil
}

func (r *fakeIngredientRepo) UpdateStock(ingredient *entity.Ingredient) error {
	r.rows[ingredient.ID] = *ingredient
	return nil
}

func (r *fakeIngredientRepo) snapshot() map[string]entity.Ingredient {
	copied := make(map[string]entity.Ingredient, len(r.rows))
	for id, row := range r.rows {
		copied[id] = row
	}
	return copied
}

func (r *fakeIngredientRepo) stockOf(id string) decimal.Decimal {
	return r.rows[id].CurrentStock
}

type fakeMovementRepo struct {
	rows []entity.StockMovement
}

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.rows = append(r.rows, *movement)
	return nil
}

func (r *fakeMovementRepo) ListByIngredient(ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.rows {
		if r.rows[i].IngredientID == ingredientID {
			copied := r.rows[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) CountByReference(reference string) (int, error) {
	count := 0
	for i := range r.rows {
		if r.rows[i].Reference == reference {
			count++
		}
	}
	return count, nil
}

func (r *fakeMovementRepo) byIngredient(ingredientID string) []entity.StockMovement {
	var out []entity.StockMovement
	for _, row := range r.rows {
		if row.IngredientID == ingredientID {
			out = append(out, row)
		}
	}
	return out
}

type fakeAuditRepo struct {
	rows []entity.AuditLog
}

func (r *fakeAuditRepo) Create(log *entity.AuditLog) error {
	r.rows = append(r.rows, *log)
	return nil
}

func (r *fakeAuditRepo) List(limit int) ([]*entity.AuditLog, error) {
	out := make([]*entity.AuditLog, 0, len(r.rows))
	for i := range r.rows {
		copied := r.rows[i]
		out = append(out, &copied)
	}
	return out, nil
}

// fakeTxRunner simula la atomicidad: toma una instantánea del estado y la
// restaura si fn falla, igual que un ROLLBACK.
type fakeTxRunner struct {
	ingredients *fakeIngredientRepo
	movements   *fakeMovementRepo
	audit       *fakeAuditRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	ingredientsBefore := r.ingredients.snapshot()
	movementsBefore := len(r.movements.rows)
	auditBefore := len(r.audit.rows)

	err := fn(inventory.TxRepos{
		Ingredients: r.ingredients,
		Movements:   r.movements,
		Audit:       r.audit,
	})
	if err != nil {
		r.ingredients.rows = ingredientsBefore
		r.movements.rows = r.movements.rows[:movementsBefore]
		r.audit.rows = r.audit.rows[:auditBefore]
		return fmt.Errorf("transacción de inventario: %w", err)
	}
	return nil
}
