package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/dto"
	"github.com/tu-usuario/breakfast-pos/internal/application/menu"
)

// MenuHandler maneja el catálogo de menú y recetas (protegido).
type MenuHandler struct {
	uc *menu.UseCase
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *menu.UseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Create crea un ítem del menú.
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	item, err := h.uc.CreateItem(c.Context(), menu.CreateItemInput{
		Name:     in.Name,
		Price:    in.Price,
		IsActive: isActive,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMenuItemResponse(item))
}

// Update actualiza nombre, precio o disponibilidad.
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), c.Params("id"), menu.UpdateItemInput{
		Name:     in.Name,
		Price:    in.Price,
		IsActive: in.IsActive,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMenuItemResponse(item))
}

// List lista el menú; query param active=true filtra los deshabilitados.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListItems(c.Context(), c.QueryBool("active"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMenuItemListResponse(list))
}

// Get devuelve un ítem del menú.
func (h *MenuHandler) Get(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMenuItemResponse(item))
}

// GetRecipe devuelve la receta de un ítem (vacía si no consume inventario).
func (h *MenuHandler) GetRecipe(c *fiber.Ctx) error {
	lines, err := h.uc.GetRecipe(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewRecipeResponse(lines))
}

// ReplaceRecipe reemplaza la receta completa de un ítem.
func (h *MenuHandler) ReplaceRecipe(c *fiber.Ctx) error {
	var in dto.ReplaceRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]menu.RecipeLineInput, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, menu.RecipeLineInput{IngredientID: line.IngredientID, Quantity: line.Quantity})
	}
	replaced, err := h.uc.ReplaceRecipe(c.Context(), c.Params("id"), lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewRecipeResponse(replaced))
}
