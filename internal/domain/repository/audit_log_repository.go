package repository

import "github.com/tu-usuario/breakfast-pos/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia de auditoría (append-only).
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(limit int) ([]*entity.AuditLog, error)
}
