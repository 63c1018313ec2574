// Package auth implementa login con JWT, alta de usuarios y el límite de
// intentos de login por usuario.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
	"github.com/tu-usuario/breakfast-pos/pkg/config"
	"github.com/tu-usuario/breakfast-pos/pkg/jwt"
)

// RateLimiter acota intentos de login fallidos por clave (usuario). Allow
// retorna false cuando la ventana está agotada; Reset limpia el contador tras
// un login exitoso.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	RegisterFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

var validRoles = map[string]bool{
	entity.RoleStaff:   true,
	entity.RoleKitchen: true,
	entity.RoleManager: true,
	entity.RoleOwner:   true,
}

// UseCase casos de uso de autenticación y usuarios.
type UseCase struct {
	users   repository.UserRepository
	auditRe repository.AuditLogRepository
	limiter RateLimiter
	jwtCfg  config.JWTConfig
}

// NewUseCase construye el caso de uso. limiter puede ser nil (sin límite).
func NewUseCase(
	users repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	limiter RateLimiter,
	jwtCfg config.JWTConfig,
) *UseCase {
	return &UseCase{users: users, auditRe: auditRepo, limiter: limiter, jwtCfg: jwtCfg}
}

// LoginResult token emitido y usuario autenticado.
type LoginResult struct {
	Token     string
	ExpiresIn int // minutos
	User      *entity.User
}

// Login valida credenciales contra el hash bcrypt y emite un JWT. Los intentos
// fallidos consumen la ventana del rate limiter; credenciales inválidas y
// usuario inexistente retornan el mismo error para no filtrar existencia.
func (uc *UseCase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.limiter != nil {
		ok, err := uc.limiter.Allow(ctx, username)
		if err == nil && !ok {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := uc.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		uc.registerFailure(ctx, username)
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.registerFailure(ctx, username)
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	if uc.limiter != nil {
		_ = uc.limiter.Reset(ctx, username)
	}
	return &LoginResult{Token: token, ExpiresIn: uc.jwtCfg.Expiration, User: user}, nil
}

func (uc *UseCase) registerFailure(ctx context.Context, username string) {
	if uc.limiter != nil {
		_ = uc.limiter.RegisterFailure(ctx, username)
	}
}

// CreateUserInput entrada para alta de usuario.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
}

// CreateUser crea un usuario con hash bcrypt. Solo manager/owner llegan aquí
// (autorización en el borde HTTP); el registro de auditoría nunca incluye la
// contraseña ni el hash.
func (uc *UseCase) CreateUser(ctx context.Context, actor audit.Actor, in CreateUserInput) (*entity.User, error) {
	if in.Username == "" || len(in.Password) < 8 || !validRoles[in.Role] {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.users.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	if err := audit.Record(uc.auditRe, actor, entity.AuditUserCreate, "user", user.ID, map[string]any{
		"username": user.Username,
		"role":     user.Role,
	}); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers lista los usuarios del sistema.
func (uc *UseCase) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return uc.users.List()
}
