package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Estados de pago.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Canales de origen.
const (
	SourceDineIn   = "dine_in"
	SourceTakeout  = "takeout"
	SourceDelivery = "delivery"
)

// Métodos de pago.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodWallet = "wallet"
)

// Order representa una orden con sus líneas. Se crea una vez y se muta in situ por
// transiciones de estado y modificaciones; nunca se borra físicamente.
// InventoryDeductedAt marca que el inventario ya fue descontado (garantiza deducción única).
type Order struct {
	ID                  string
	OrderNumber         string // secuencial legible, único
	Source              string
	Status              string
	PaymentStatus       string
	PaymentMethod       string
	TotalAmount         decimal.Decimal
	InventoryDeductedAt *time.Time
	PaidAt              *time.Time
	CompletedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Items               []OrderItem
}

// IsTerminal indica si la orden alcanzó un estado final.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}
