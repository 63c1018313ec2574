package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/application/dto"
)

// AuditHandler expone la consulta de auditoría (manager/owner).
type AuditHandler struct {
	uc *audit.ListUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.ListUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List devuelve los registros más recientes.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	logs, err := h.uc.List(c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAuditLogListResponse(logs))
}
