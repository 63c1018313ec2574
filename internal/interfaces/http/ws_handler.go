package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/dto"
	"github.com/tu-usuario/breakfast-pos/pkg/jwt"
)

// WSUpgrade permite el upgrade solo a peticiones WebSocket autenticadas.
// Los navegadores no pueden fijar headers en el handshake, así que el token
// también se acepta como query param (?token=...).
func WSUpgrade(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		token := c.Query("token")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "query param token requerido"})
		}
		if _, _, _, err := jwt.Parse(jwtSecret, token); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		return c.Next()
	}
}
