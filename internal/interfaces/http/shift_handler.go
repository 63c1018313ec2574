package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/dto"
	"github.com/tu-usuario/breakfast-pos/internal/application/shift"
)

// ShiftHandler maneja turnos de caja (protegido).
type ShiftHandler struct {
	uc *shift.UseCase
}

// NewShiftHandler construye el handler.
func NewShiftHandler(uc *shift.UseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Open abre un turno nuevo.
func (h *ShiftHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.Open(c.Context(), GetActor(c), shift.OpenInput{
		ShiftName:   in.ShiftName,
		OpeningCash: in.OpeningCash,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewShiftResponse(session))
}

// Close cierra el turno abierto con la conciliación de efectivo.
func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.Close(c.Context(), GetActor(c), shift.CloseInput{
		ActualCash: in.ActualCash,
		Notes:      in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewShiftResponse(session))
}

// Current devuelve el turno abierto.
func (h *ShiftHandler) Current(c *fiber.Ctx) error {
	session, err := h.uc.Current(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewShiftResponse(session))
}

// List devuelve los turnos más recientes.
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	sessions, err := h.uc.List(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewShiftListResponse(sessions))
}
