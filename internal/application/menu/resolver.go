package menu

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	invdomain "github.com/tu-usuario/breakfast-pos/internal/domain/inventory"
)

// RecipeSource abstrae de dónde se leen las líneas de receta (repo atado a una
// transacción, o el caché de lectura).
type RecipeSource interface {
	ListByMenuItem(menuItemID string) ([]*entity.RecipeLine, error)
}

// ResolveLine es la entrada del resolver: un ítem del menú y su cantidad ordenada.
type ResolveLine struct {
	MenuItemID string
	Quantity   int
}

// ResolveRequirements es función pura sobre los datos de receta: multiplica la
// cantidad por unidad de cada ingrediente por la cantidad de la línea y agrega
// duplicados entre líneas. Ítems sin receta no aportan requerimientos (no es error).
func ResolveRequirements(recipes RecipeSource, lines []ResolveLine) ([]invdomain.Requirement, error) {
	var reqs []invdomain.Requirement
	for _, line := range lines {
		recipeLines, err := recipes.ListByMenuItem(line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("cargar receta de %s: %w", line.MenuItemID, err)
		}
		for _, rl := range recipeLines {
			reqs = append(reqs, invdomain.Requirement{
				IngredientID: rl.IngredientID,
				Quantity:     rl.Quantity.Mul(decimal.NewFromInt(int64(line.Quantity))),
			})
		}
	}
	return invdomain.Aggregate(reqs), nil
}
