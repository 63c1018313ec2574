package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación sobre PostgreSQL (usable con pool o tx).
// Append-only: la auditoría nunca se actualiza ni se borra.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste un registro de auditoría.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO audit_logs (id, actor_user_id, actor_username, actor_role, action, entity_type, entity_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	actorID := (*string)(nil)
	if log.ActorUserID != "" {
		actorID = &log.ActorUserID
	}
	_, err := r.q.Exec(context.Background(), query,
		log.ID, actorID, log.ActorUsername, log.ActorRole,
		log.Action, log.EntityType, log.EntityID, log.Payload, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List devuelve los registros más recientes.
func (r *AuditLogRepo) List(limit int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, actor_user_id, actor_username, actor_role, action, entity_type, entity_id, payload, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var actorID *string
		if err := rows.Scan(&l.ID, &actorID, &l.ActorUsername, &l.ActorRole, &l.Action, &l.EntityType, &l.EntityID, &l.Payload, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if actorID != nil {
			l.ActorUserID = *actorID
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
