package entity

import "github.com/shopspring/decimal"

// RecipeLine indica cuánto de un ingrediente consume una unidad de un ítem del menú.
// Un ítem sin líneas de receta no consume inventario rastreado (caso válido).
type RecipeLine struct {
	ID           string
	MenuItemID   string
	IngredientID string
	Quantity     decimal.Decimal // por unidad del ítem
}
