package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, source, status, payment_status, payment_method,
	total_amount, inventory_deducted_at, paid_at, completed_at, created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var paymentMethod *string
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Source, &o.Status, &o.PaymentStatus, &paymentMethod,
		&o.TotalAmount, &o.InventoryDeductedAt, &o.PaidAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if paymentMethod != nil {
		o.PaymentMethod = *paymentMethod
	}
	return &o, nil
}

// Create persiste la orden con sus líneas. Una colisión del número de orden
// retorna ErrDuplicate para que el coordinador reintente con número nuevo.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderNumber, order.Source, order.Status, order.PaymentStatus,
		nullIfEmpty(order.PaymentMethod), order.TotalAmount, order.InventoryDeductedAt,
		order.PaidAt, order.CompletedAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create order: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("create order: %w", err)
	}
	return r.insertItems(ctx, order.ID, order.Items)
}

// GetByID carga la orden con sus líneas. Retorna nil sin error si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) y carga sus líneas.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *OrderRepo) getOne(query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o == nil {
		return nil, nil
	}
	if err := r.loadItems(o); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista órdenes recientes, opcionalmente filtradas por estado.
func (r *OrderRepo) List(status string, limit int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2`
	return r.listWithItems(query, status, limit)
}

// ListRecentByStatuses lista órdenes en los estados dados actualizadas desde since.
func (r *OrderRepo) ListRecentByStatuses(statuses []string, since time.Time, limit int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = ANY($1) AND updated_at >= $2
		ORDER BY updated_at DESC
		LIMIT $3`
	return r.listWithItems(query, statuses, since, limit)
}

// ListPaidBetween lista órdenes pagadas (no reembolsadas) con paid_at en [from, to).
func (r *OrderRepo) ListPaidBetween(from, to time.Time) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE payment_status = 'paid' AND paid_at >= $1 AND paid_at < $2
		ORDER BY paid_at`
	return r.listWithItems(query, from, to)
}

// ListRefundedBetween lista órdenes reembolsadas con updated_at en [from, to).
func (r *OrderRepo) ListRefundedBetween(from, to time.Time) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE payment_status = 'refunded' AND updated_at >= $1 AND updated_at < $2
		ORDER BY updated_at`
	return r.listWithItems(query, from, to)
}

func (r *OrderRepo) listWithItems(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		var o entity.Order
		var paymentMethod *string
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.Source, &o.Status, &o.PaymentStatus, &paymentMethod,
			&o.TotalAmount, &o.InventoryDeductedAt, &o.PaidAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if paymentMethod != nil {
			o.PaymentMethod = *paymentMethod
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		if err := r.loadItems(o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Update persiste los campos mutables de la orden (las líneas van por ReplaceItems).
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders
		SET status = $2, payment_status = $3, payment_method = $4, total_amount = $5,
			inventory_deducted_at = $6, paid_at = $7, completed_at = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.PaymentStatus, nullIfEmpty(order.PaymentMethod),
		order.TotalAmount, order.InventoryDeductedAt, order.PaidAt, order.CompletedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// ReplaceItems reemplaza las líneas de la orden (DELETE + INSERT).
func (r *OrderRepo) ReplaceItems(orderID string, items []entity.OrderItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(ctx, orderID, items)
}

func (r *OrderRepo) insertItems(ctx context.Context, orderID string, items []entity.OrderItem) error {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		items[i].OrderID = orderID
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, menu_item_id, menu_item_name, quantity, unit_price, line_total, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			items[i].ID, orderID, items[i].MenuItemID, items[i].MenuItemName,
			items[i].Quantity, items[i].UnitPrice, items[i].LineTotal, items[i].Note,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) loadItems(o *entity.Order) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, menu_item_id, menu_item_name, quantity, unit_price, line_total, note
		FROM order_items
		WHERE order_id = $1
		ORDER BY menu_item_name`, o.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	o.Items = nil
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemName, &item.Quantity, &item.UnitPrice, &item.LineTotal, &item.Note); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
