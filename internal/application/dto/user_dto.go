package dto

import (
	"time"

	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token JWT emitido y usuario autenticado.
type LoginResponse struct {
	Token            string       `json:"token"`
	ExpiresInMinutes int          `json:"expires_in_minutes"`
	User             UserResponse `json:"user"`
}

// CreateUserRequest body para POST /api/users (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"` // staff|kitchen|manager|owner
}

// UserResponse usuario en respuestas (nunca incluye el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse mapea la entidad a su respuesta.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
