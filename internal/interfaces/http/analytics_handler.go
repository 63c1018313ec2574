package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/analytics"
	"github.com/tu-usuario/breakfast-pos/internal/application/dto"
)

// AnalyticsHandler expone el panel agregado del negocio (manager/owner).
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Overview devuelve el resumen del período; from/to en formato YYYY-MM-DD.
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	var from, to time.Time
	var err error
	if v := c.Query("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (YYYY-MM-DD)"})
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (YYYY-MM-DD)"})
		}
		// to es inclusivo en la query: se corre al inicio del día siguiente
		to = to.AddDate(0, 0, 1)
	}

	overview, err := h.uc.GetOverview(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}
