package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del turno de caja.
const (
	ShiftStatusOpen   = "open"
	ShiftStatusClosed = "closed"
)

// ShiftSession representa un turno de caja con su conciliación de efectivo.
type ShiftSession struct {
	ID               string
	ShiftName        string
	Status           string
	OpeningCash      decimal.Decimal
	ExpectedCash     decimal.Decimal
	ActualCash       *decimal.Decimal
	CashDifference   *decimal.Decimal
	PaidOrderCount   int
	TotalRevenue     decimal.Decimal
	CashRevenue      decimal.Decimal
	NonCashRevenue   decimal.Decimal
	RefundAmount     decimal.Decimal
	OpenedByUserID   string
	OpenedByUsername string
	Notes            string
	OpenedAt         time.Time
	ClosedAt         *time.Time
}
