package entity

import (
	"encoding/json"
	"time"
)

// Acciones auditadas.
const (
	AuditOrderCreate        = "order.create"
	AuditOrderPay           = "order.pay"
	AuditOrderAmend         = "order.amend"
	AuditOrderStatusChange  = "order.status.change"
	AuditIngredientCreate   = "inventory.ingredient.create"
	AuditIngredientUpdate   = "inventory.ingredient.update"
	AuditManualMovement     = "inventory.movement.manual"
	AuditUserCreate         = "user.create"
	AuditShiftOpen          = "shift.open"
	AuditShiftClose         = "shift.close"
)

// AuditLog registra quién hizo qué sobre qué entidad. Inmutable; se escribe dentro
// de la misma transacción que la mutación que describe (ambos o ninguno).
type AuditLog struct {
	ID            string
	ActorUserID   string // vacío para acciones del sistema
	ActorUsername string
	ActorRole     string
	Action        string
	EntityType    string
	EntityID      string
	Payload       json.RawMessage
	CreatedAt     time.Time
}
