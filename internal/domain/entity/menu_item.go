package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem representa un ítem vendible del menú.
type MenuItem struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
