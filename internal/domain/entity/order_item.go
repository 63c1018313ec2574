package entity

import "github.com/shopspring/decimal"

// OrderItem es una línea de la orden. UnitPrice se captura al momento de ordenar
// para que cambios posteriores del menú no alteren totales históricos.
type OrderItem struct {
	ID           string
	OrderID      string
	MenuItemID   string
	MenuItemName string
	Quantity     int
	UnitPrice    decimal.Decimal
	LineTotal    decimal.Decimal
	Note         string // opcional
}
