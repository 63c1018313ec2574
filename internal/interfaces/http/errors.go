package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/dto"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
)

// respondError traduce errores de dominio al cuerpo y código HTTP del API.
// Todo handler delega aquí su rama de error.
func respondError(c *fiber.Ctx, err error) error {
	if insuf, ok := domain.AsInsufficientInventory(err); ok {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_INVENTORY",
			Message: insuf.Error(),
			Details: insuf.Shortages,
		})
	}
	if trans, ok := domain.AsInvalidTransition(err); ok {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INVALID_TRANSITION",
			Message: trans.Error(),
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrOrderNotAmendable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_AMENDABLE", Message: "la orden ya no admite modificaciones"})
	case errors.Is(err, domain.ErrOrderNotPayable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_PAYABLE", Message: "la orden no admite pago en su estado actual"})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "otra operación está modificando el recurso, reintente"})
	case errors.Is(err, domain.ErrShiftAlreadyOpen):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHIFT_ALREADY_OPEN", Message: "ya existe un turno abierto"})
	case errors.Is(err, domain.ErrNoOpenShift):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_OPEN_SHIFT", Message: "no hay turno abierto"})
	case errors.Is(err, domain.ErrTooManyAttempts):
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos, espere e intente de nuevo"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
