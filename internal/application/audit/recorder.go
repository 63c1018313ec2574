// Package audit construye y consulta registros de auditoría. La escritura ocurre
// siempre dentro de la transacción del coordinador: si el registro falla, la
// mutación completa se revierte (no es logging best-effort).
package audit

import (
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// Actor identidad autenticada adjunta a cada mutación para atribución.
// El core confía en esta identidad; la autorización ya ocurrió en el borde HTTP.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

// System es el actor para acciones automáticas (seed, jobs).
var System = Actor{}

// NewEntry arma un registro de auditoría con payload serializado a JSON.
func NewEntry(actor Actor, action, entityType, entityID string, payload any) (*entity.AuditLog, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("serializar payload de auditoría: %w", err)
		}
		raw = b
	}
	return &entity.AuditLog{
		ActorUserID:   actor.UserID,
		ActorUsername: actor.Username,
		ActorRole:     actor.Role,
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		Payload:       raw,
	}, nil
}

// Record construye y persiste el registro con el repo atado a la transacción actual.
func Record(repo repository.AuditLogRepository, actor Actor, action, entityType, entityID string, payload any) error {
	entry, err := NewEntry(actor, action, entityType, entityID, payload)
	if err != nil {
		return err
	}
	return repo.Create(entry)
}

// ListUseCase expone la consulta de auditoría (manager/owner).
type ListUseCase struct {
	repo repository.AuditLogRepository
}

// NewListUseCase construye el caso de uso.
func NewListUseCase(repo repository.AuditLogRepository) *ListUseCase {
	return &ListUseCase{repo: repo}
}

// List devuelve los registros más recientes, con límite acotado.
func (uc *ListUseCase) List(limit int) ([]*entity.AuditLog, error) {
	if limit <= 0 {
		limit = 200
	}
	if limit > 1000 {
		limit = 1000
	}
	return uc.repo.List(limit)
}
