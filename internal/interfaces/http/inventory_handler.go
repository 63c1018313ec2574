package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/dto"
	"github.com/tu-usuario/breakfast-pos/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de ingredientes y movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create crea un ingrediente; el stock inicial queda como movimiento de compra.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ingredient, err := h.uc.CreateIngredient(c.Context(), GetActor(c), inventory.CreateIngredientInput{
		Name:         in.Name,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		ReorderLevel: in.ReorderLevel,
		CostPerUnit:  in.CostPerUnit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewIngredientResponse(ingredient))
}

// Update actualiza metadatos; un cambio de stock genera un ajuste MANUAL_OVERRIDE.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ingredient, err := h.uc.UpdateIngredient(c.Context(), GetActor(c), c.Params("id"), inventory.UpdateIngredientInput{
		Name:         in.Name,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		ReorderLevel: in.ReorderLevel,
		CostPerUnit:  in.CostPerUnit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewIngredientResponse(ingredient))
}

// List lista todos los ingredientes.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListIngredients(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewIngredientListResponse(list))
}

// Get devuelve un ingrediente.
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	ingredient, err := h.uc.GetIngredient(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewIngredientResponse(ingredient))
}

// ListLowStock lista los ingredientes en o bajo reorden.
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewIngredientListResponse(list))
}

// RegisterMovement registra compra, merma o ajuste manual.
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.RegisterManualMovement(c.Context(), GetActor(c), inventory.ManualMovementInput{
		IngredientID: c.Params("id"),
		Type:         in.Type,
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		Reference:    in.Reference,
		Notes:        in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(movement))
}

// ListMovements lista el historial de movimientos de un ingrediente.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		to = &t
	}

	movements, err := h.uc.ListMovements(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.NewMovementResponse(m))
	}
	return c.JSON(out)
}
