package repository

import (
	"time"

	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia de órdenes y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	// GetByID carga la orden con sus líneas.
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) y carga sus líneas.
	// Serializa mutaciones concurrentes sobre la misma orden.
	GetForUpdate(id string) (*entity.Order, error)
	List(status string, limit int) ([]*entity.Order, error)
	// ListRecentByStatuses alimenta el tablero de recogida.
	ListRecentByStatuses(statuses []string, since time.Time, limit int) ([]*entity.Order, error)
	Update(order *entity.Order) error
	// ReplaceItems reemplaza las líneas de la orden (modificación).
	ReplaceItems(orderID string, items []entity.OrderItem) error
	// ListPaidBetween y ListRefundedBetween alimentan la conciliación de turno.
	ListPaidBetween(from, to time.Time) ([]*entity.Order, error)
	ListRefundedBetween(from, to time.Time) ([]*entity.Order, error)
}
