package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// CreateMenuItemRequest body para POST /api/menu.
type CreateMenuItemRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	IsActive *bool           `json:"is_active,omitempty"` // default true
}

// UpdateMenuItemRequest body para PUT /api/menu/:id; campos nulos no se tocan.
type UpdateMenuItemRequest struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

// MenuItemResponse ítem del menú en respuestas.
type MenuItemResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"is_active"`
}

// NewMenuItemResponse mapea la entidad a su respuesta.
func NewMenuItemResponse(item *entity.MenuItem) MenuItemResponse {
	return MenuItemResponse{ID: item.ID, Name: item.Name, Price: item.Price, IsActive: item.IsActive}
}

// NewMenuItemListResponse mapea un listado de ítems.
func NewMenuItemListResponse(items []*entity.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewMenuItemResponse(item))
	}
	return out
}

// RecipeLineRequest línea de receta en PUT /api/menu/:id/recipe.
type RecipeLineRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ReplaceRecipeRequest body para PUT /api/menu/:id/recipe: reemplazo completo.
type ReplaceRecipeRequest struct {
	Lines []RecipeLineRequest `json:"lines"`
}

// RecipeLineResponse línea de receta en respuestas.
type RecipeLineResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// NewRecipeResponse mapea las líneas de receta de un ítem.
func NewRecipeResponse(lines []*entity.RecipeLine) []RecipeLineResponse {
	out := make([]RecipeLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, RecipeLineResponse{IngredientID: line.IngredientID, Quantity: line.Quantity})
	}
	return out
}
