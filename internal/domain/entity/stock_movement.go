package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypePurchase   = "purchase"   // compra / reposición
	MovementTypeUsage      = "usage"      // consumo por orden pagada
	MovementTypeAdjustment = "adjustment" // ajuste manual o restauración
	MovementTypeWaste      = "waste"      // merma
)

// StockMovement representa un cambio firmado e inmutable sobre el stock de un ingrediente.
// Quantity positivo = entrada, negativo = consumo. Reference correlaciona el movimiento
// con la acción que lo causó (ej. "ORDER:OD...", "CANCEL:OD...", "AMEND:OD...").
type StockMovement struct {
	ID           string
	IngredientID string
	Type         string
	Quantity     decimal.Decimal
	UnitCost     *decimal.Decimal
	Reference    string
	Notes        string
	CreatedAt    time.Time
	CreatedBy    string // UserID; vacío para acciones del sistema
}
