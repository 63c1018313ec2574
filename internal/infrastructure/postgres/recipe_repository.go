package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// ListByMenuItem lista las líneas de receta de un ítem. Vacío si no tiene receta.
func (r *RecipeRepo) ListByMenuItem(menuItemID string) ([]*entity.RecipeLine, error) {
	query := `
		SELECT id, menu_item_id, ingredient_id, quantity
		FROM recipe_lines
		WHERE menu_item_id = $1
		ORDER BY ingredient_id`
	rows, err := r.q.Query(context.Background(), query, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.RecipeLine
	for rows.Next() {
		var line entity.RecipeLine
		if err := rows.Scan(&line.ID, &line.MenuItemID, &line.IngredientID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		out = append(out, &line)
	}
	return out, rows.Err()
}

// Replace reemplaza la receta completa de un ítem (DELETE + INSERT).
func (r *RecipeRepo) Replace(menuItemID string, lines []*entity.RecipeLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_lines WHERE menu_item_id = $1`, menuItemID); err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx,
			`INSERT INTO recipe_lines (id, menu_item_id, ingredient_id, quantity) VALUES ($1, $2, $3, $4)`,
			line.ID, menuItemID, line.IngredientID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}
