package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// CreateIngredientRequest body para POST /api/ingredients.
type CreateIngredientRequest struct {
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
}

// UpdateIngredientRequest body para PUT /api/ingredients/:id; campos nulos no se tocan.
type UpdateIngredientRequest struct {
	Name         *string          `json:"name,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	CurrentStock *decimal.Decimal `json:"current_stock,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorder_level,omitempty"`
	CostPerUnit  *decimal.Decimal `json:"cost_per_unit,omitempty"`
}

// RegisterMovementRequest body para POST /api/ingredients/:id/movements.
type RegisterMovementRequest struct {
	Type      string           `json:"type"` // purchase|waste|adjustment
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"` // requerido para purchase
	Reference string           `json:"reference,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// IngredientResponse ingrediente en respuestas.
type IngredientResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	LowStock     bool            `json:"low_stock"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewIngredientResponse mapea la entidad a su respuesta.
func NewIngredientResponse(i *entity.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:           i.ID,
		Name:         i.Name,
		Unit:         i.Unit,
		CurrentStock: i.CurrentStock,
		ReorderLevel: i.ReorderLevel,
		CostPerUnit:  i.CostPerUnit,
		LowStock:     i.BelowReorderLevel(),
		UpdatedAt:    i.UpdatedAt,
	}
}

// NewIngredientListResponse mapea un listado de ingredientes.
func NewIngredientListResponse(ingredients []*entity.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, NewIngredientResponse(i))
	}
	return out
}

// MovementResponse movimiento de stock en respuestas.
type MovementResponse struct {
	ID           string           `json:"id"`
	IngredientID string           `json:"ingredient_id"`
	Type         string           `json:"type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	CreatedBy    string           `json:"created_by,omitempty"`
}

// NewMovementResponse mapea la entidad a su respuesta.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		IngredientID: m.IngredientID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		Reference:    m.Reference,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}
