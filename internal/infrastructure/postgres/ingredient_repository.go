package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

const ingredientColumns = `id, name, unit, current_stock, reorder_level, cost_per_unit, created_at, updated_at`

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var i entity.Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.Unit, &i.CurrentStock, &i.ReorderLevel, &i.CostPerUnit, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

// GetByID obtiene un ingrediente por ID. Retorna nil sin error si no existe.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	i, err := scanIngredient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return i, nil
}

// GetByName obtiene un ingrediente por nombre exacto.
func (r *IngredientRepo) GetByName(name string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE name = $1`
	i, err := scanIngredient(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		return nil, fmt.Errorf("get ingredient by name: %w", err)
	}
	return i, nil
}

// GetForUpdate obtiene el ingrediente y bloquea su fila (SELECT FOR UPDATE).
// Serializa deducciones concurrentes sobre el mismo insumo.
func (r *IngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 FOR UPDATE`
	i, err := scanIngredient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get ingredient for update: %w", err)
	}
	return i, nil
}

// List lista todos los ingredientes ordenados por nombre.
func (r *IngredientRepo) List() ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients ORDER BY name`
	return r.list(query)
}

// ListLowStock lista los ingredientes en o bajo su punto de reorden.
func (r *IngredientRepo) ListLowStock() ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE current_stock <= reorder_level ORDER BY name`
	return r.list(query)
}

func (r *IngredientRepo) list(query string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var out []*entity.Ingredient
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.Unit, &i.CurrentStock, &i.ReorderLevel, &i.CostPerUnit, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

// Create persiste un ingrediente nuevo.
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Unit, ingredient.CurrentStock,
		ingredient.ReorderLevel, ingredient.CostPerUnit, ingredient.CreatedAt, ingredient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create ingredient: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("create ingredient: %w", err)
	}
	return nil
}

// Update actualiza metadatos del ingrediente (no el stock: ver UpdateStock).
func (r *IngredientRepo) Update(ingredient *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2, unit = $3, reorder_level = $4, cost_per_unit = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Unit,
		ingredient.ReorderLevel, ingredient.CostPerUnit, ingredient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update ingredient: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// UpdateStock materializa el stock y costo calculados por el ledger. Solo el
// ledger llama aquí, siempre con la fila ya bloqueada por GetForUpdate.
func (r *IngredientRepo) UpdateStock(ingredient *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET current_stock = $2, cost_per_unit = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.CurrentStock, ingredient.CostPerUnit, ingredient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ingredient stock: %w", err)
	}
	return nil
}
