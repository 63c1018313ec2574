package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	orderdomain "github.com/tu-usuario/breakfast-pos/internal/domain/order"
)

// OrderLineRequest línea solicitada en creación o modificación de orden.
type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
// Con pay=true la orden se cobra y descuenta inventario en la misma transacción.
type CreateOrderRequest struct {
	Source        string             `json:"source"` // dine_in|takeout|delivery
	Items         []OrderLineRequest `json:"items"`
	Pay           bool               `json:"pay"`
	PaymentMethod string             `json:"payment_method,omitempty"` // cash|card|wallet
}

// PayOrderRequest body para POST /api/orders/:id/pay.
type PayOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// AmendOrderRequest body para PUT /api/orders/:id/items: reemplazo completo de líneas.
type AmendOrderRequest struct {
	Items []OrderLineRequest `json:"items"`
}

// ChangeStatusRequest body para POST /api/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de la orden en respuestas.
type OrderItemResponse struct {
	ID           string          `json:"id"`
	MenuItemID   string          `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	Note         string          `json:"note,omitempty"`
}

// OrderResponse orden completa en respuestas.
type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Source        string              `json:"source"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Items         []OrderItemResponse `json:"items"`
}

// NewOrderResponse mapea la entidad a su respuesta.
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:           item.ID,
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineTotal:    item.LineTotal,
			Note:         item.Note,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Source:        o.Source,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		PaymentMethod: o.PaymentMethod,
		TotalAmount:   o.TotalAmount,
		PaidAt:        o.PaidAt,
		CompletedAt:   o.CompletedAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         items,
	}
}

// AmendOrderResponse orden modificada junto con el diff estructural de líneas.
type AmendOrderResponse struct {
	Order OrderResponse    `json:"order"`
	Diff  orderdomain.Diff `json:"diff"`
}

// NewAmendOrderResponse mapea la orden modificada y su diff.
func NewAmendOrderResponse(o *entity.Order, diff orderdomain.Diff) AmendOrderResponse {
	return AmendOrderResponse{Order: NewOrderResponse(o), Diff: diff}
}

// NewOrderListResponse mapea un listado de órdenes.
func NewOrderListResponse(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
