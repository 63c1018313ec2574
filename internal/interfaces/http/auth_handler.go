package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/auth"
	"github.com/tu-usuario/breakfast-pos/internal/application/dto"
)

// AuthHandler maneja login (público) y administración de usuarios (protegido).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login valida credenciales y emite un JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LoginResponse{
		Token:            result.Token,
		ExpiresInMinutes: result.ExpiresIn,
		User:             dto.NewUserResponse(result.User),
	})
}

// CreateUser da de alta un usuario (manager/owner).
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.CreateUser(c.Context(), GetActor(c), auth.CreateUserInput{
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// ListUsers lista los usuarios (manager/owner).
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return c.JSON(out)
}
