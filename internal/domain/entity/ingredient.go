package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un insumo con su stock actual.
// CurrentStock solo se muta a través del ledger de inventario (nunca escritura directa);
// invariante: CurrentStock == suma de todos sus StockMovement.
type Ingredient struct {
	ID           string
	Name         string
	Unit         string // pcs, g, ml, etc.
	CurrentStock decimal.Decimal
	ReorderLevel decimal.Decimal
	CostPerUnit  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowReorderLevel indica si el ingrediente está en o por debajo del punto de reorden.
func (i *Ingredient) BelowReorderLevel() bool {
	return i.CurrentStock.LessThanOrEqual(i.ReorderLevel)
}
