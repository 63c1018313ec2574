// Package orders implementa el coordinador de transacciones del ciclo de vida
// de la orden: cada operación compone estado de orden, deducción de inventario
// y registro de auditoría en una sola transacción de BD. Los efectos externos
// (broadcast por WebSocket, publicación AMQP) ocurren solo después del commit.
package orders

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/application/inventory"
	orderdomain "github.com/tu-usuario/breakfast-pos/internal/domain/order"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// TxRepos repositorios atados a la transacción en curso del coordinador.
type TxRepos struct {
	Orders      repository.OrderRepository
	MenuItems   repository.MenuItemRepository
	Recipes     repository.RecipeRepository
	Ingredients repository.IngredientRepository
	Movements   repository.StockMovementRepository
	Audit       repository.AuditLogRepository
}

// Ledger devuelve los repos en la forma que consume el ledger de inventario.
func (r TxRepos) Ledger() inventory.LedgerRepos {
	return inventory.LedgerRepos{Ingredients: r.Ingredients, Movements: r.Movements}
}

// TxRunner ejecuta fn dentro de una transacción, con repositorios atados a ella.
// Si fn retorna error, toda la transacción se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// Nombres de evento emitidos tras el commit.
const (
	EventOrderCreated       = "order.created"
	EventOrderPaid          = "order.paid"
	EventOrderAmended       = "order.amended"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
)

// LowStockAlert acompaña eventos que descontaron inventario y dejaron un
// ingrediente en o bajo su punto de reorden.
type LowStockAlert struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	Unit         string          `json:"unit"`
}

// Event es el payload de broadcast de un cambio en una orden. Se publica una
// sola vez por operación confirmada; nunca por transacciones revertidas.
type Event struct {
	Event         string            `json:"event"`
	OrderID       string            `json:"order_id"`
	OrderNumber   string            `json:"order_number"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Diff          *orderdomain.Diff `json:"diff,omitempty"`
	LowStock      []LowStockAlert   `json:"low_stock,omitempty"`
}

// EventPublisher entrega eventos post-commit. Las implementaciones no deben
// bloquear al coordinador (el hub WS descarta clientes lentos; AMQP es best-effort).
type EventPublisher interface {
	Publish(event Event)
}

// MultiPublisher difunde el mismo evento a varios publishers en orden.
type MultiPublisher []EventPublisher

// Publish implementa EventPublisher.
func (m MultiPublisher) Publish(event Event) {
	for _, p := range m {
		p.Publish(event)
	}
}
