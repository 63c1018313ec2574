package dto

import (
	"encoding/json"
	"time"

	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// AuditLogResponse registro de auditoría en respuestas.
type AuditLogResponse struct {
	ID            string          `json:"id"`
	ActorUserID   string          `json:"actor_user_id,omitempty"`
	ActorUsername string          `json:"actor_username,omitempty"`
	ActorRole     string          `json:"actor_role,omitempty"`
	Action        string          `json:"action"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewAuditLogListResponse mapea un listado de registros.
func NewAuditLogListResponse(logs []*entity.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, AuditLogResponse{
			ID:            l.ID,
			ActorUserID:   l.ActorUserID,
			ActorUsername: l.ActorUsername,
			ActorRole:     l.ActorRole,
			Action:        l.Action,
			EntityType:    l.EntityType,
			EntityID:      l.EntityID,
			Payload:       l.Payload,
			CreatedAt:     l.CreatedAt,
		})
	}
	return out
}
