package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/dto"
	"github.com/tu-usuario/breakfast-pos/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP del ciclo de vida de órdenes (protegido).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func toOrderLines(in []dto.OrderLineRequest) []orders.OrderLineInput {
	out := make([]orders.OrderLineInput, 0, len(in))
	for _, line := range in {
		out = append(out, orders.OrderLineInput{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Note:       line.Note,
		})
	}
	return out
}

// Create crea una orden; con pay=true la cobra en la misma transacción.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.CreateOrder(c.Context(), GetActor(c), orders.CreateOrderInput{
		Source:        in.Source,
		Items:         toOrderLines(in.Items),
		Pay:           in.Pay,
		PaymentMethod: in.PaymentMethod,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(order))
}

// Get devuelve una orden con sus líneas.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(order))
}

// List lista órdenes recientes; query param status filtra por estado.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListOrders(c.Context(), c.Query("status"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderListResponse(list))
}

// PickupBoard devuelve órdenes listas y completadas recientes.
func (h *OrderHandler) PickupBoard(c *fiber.Ctx) error {
	list, err := h.uc.PickupBoard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderListResponse(list))
}

// Pay cobra la orden y descuenta inventario. Idempotente sobre órdenes pagadas.
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.PayOrder(c.Context(), GetActor(c), c.Params("id"), in.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(order))
}

// AmendItems reemplaza las líneas de la orden y devuelve la orden con su diff.
func (h *OrderHandler) AmendItems(c *fiber.Ctx) error {
	var in dto.AmendOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, diff, err := h.uc.AmendOrder(c.Context(), GetActor(c), c.Params("id"), toOrderLines(in.Items))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAmendOrderResponse(order, diff))
}

// ChangeStatus avanza la orden por la máquina de estados.
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.ChangeStatus(c.Context(), GetActor(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(order))
}

// Cancel cancela la orden (restaura inventario si estaba pagada).
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.uc.CancelOrder(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(order))
}
