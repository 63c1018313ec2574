package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// PaidRevenue suma los ingresos de órdenes pagadas en [from, to) y su conteo.
func (r *AnalyticsRepo) PaidRevenue(from, to time.Time) (decimal.Decimal, int64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE payment_status = 'paid' AND paid_at >= $1 AND paid_at < $2`
	var revenue decimal.Decimal
	var count int64
	err := r.q.QueryRow(context.Background(), query, from, to).Scan(&revenue, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("paid revenue: %w", err)
	}
	return revenue, count, nil
}

// TopItems devuelve los ítems más vendidos por cantidad en [from, to).
func (r *AnalyticsRepo) TopItems(from, to time.Time, limit int) ([]repository.TopItemRow, error) {
	query := `
		SELECT oi.menu_item_name, SUM(oi.quantity), SUM(oi.line_total)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.payment_status = 'paid' AND o.paid_at >= $1 AND o.paid_at < $2
		GROUP BY oi.menu_item_name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}
	defer rows.Close()

	var out []repository.TopItemRow
	for rows.Next() {
		var row repository.TopItemRow
		if err := rows.Scan(&row.MenuItemName, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DailySales agrega ingresos y órdenes pagadas por día en [from, to).
func (r *AnalyticsRepo) DailySales(from, to time.Time) ([]repository.DailySalesRow, error) {
	query := `
		SELECT to_char(date_trunc('day', paid_at), 'YYYY-MM-DD'), COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE payment_status = 'paid' AND paid_at >= $1 AND paid_at < $2
		GROUP BY 1
		ORDER BY 1`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()

	var out []repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Day, &row.Revenue, &row.Orders); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// InventoryValue valoriza el inventario actual a costo por unidad.
func (r *AnalyticsRepo) InventoryValue() (decimal.Decimal, error) {
	var value decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(current_stock * cost_per_unit), 0) FROM ingredients`,
	).Scan(&value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("inventory value: %w", err)
	}
	return value, nil
}
