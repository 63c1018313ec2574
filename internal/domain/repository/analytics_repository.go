package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopItemRow fila agregada de ventas por ítem del menú.
type TopItemRow struct {
	MenuItemName string
	Quantity     int64
	Revenue      decimal.Decimal
}

// DailySalesRow fila agregada de ventas por día.
type DailySalesRow struct {
	Day     string // YYYY-MM-DD
	Revenue decimal.Decimal
	Orders  int64
}

// AnalyticsRepository define consultas agregadas de solo lectura sobre estado
// comprometido (nunca estado intermedio de una transacción en curso).
type AnalyticsRepository interface {
	PaidRevenue(from, to time.Time) (decimal.Decimal, int64, error)
	TopItems(from, to time.Time, limit int) ([]TopItemRow, error)
	DailySales(from, to time.Time) ([]DailySalesRow, error)
	InventoryValue() (decimal.Decimal, error)
}
