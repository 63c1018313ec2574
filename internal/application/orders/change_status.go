package orders

import (
	"context"

	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	orderdomain "github.com/tu-usuario/breakfast-pos/internal/domain/order"
)

// ChangeStatus avanza la orden por una arista legal de la máquina de estados.
// Cancelar una orden pagada restaura el inventario descontado (etiquetado
// CANCEL:<número>, idempotente por conteo de referencia) y marca el pago como
// reembolsado, todo en la misma transacción.
func (uc *UseCase) ChangeStatus(ctx context.Context, actor audit.Actor, id, newStatus string) (*entity.Order, error) {
	if !orderdomain.IsValidStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Order
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		o, err := repos.Orders.GetForUpdate(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if err := orderdomain.ValidateTransition(o.Status, newStatus); err != nil {
			return err
		}

		from := o.Status
		now := uc.now()
		didRefund := false

		if newStatus == entity.OrderStatusCancelled &&
			o.PaymentStatus == entity.PaymentStatusPaid &&
			o.InventoryDeductedAt != nil {
			ref := cancelReference(o.OrderNumber)
			count, err := repos.Movements.CountByReference(ref)
			if err != nil {
				return err
			}
			if count == 0 {
				reqs, err := requirementsFor(repos.Recipes, o.Items)
				if err != nil {
					return err
				}
				if len(reqs) > 0 {
					if _, err := uc.ledger.Restore(repos.Ledger(), reqs, ref, "Restauración por cancelación de "+o.OrderNumber, actor.UserID); err != nil {
						return err
					}
				}
			}
			o.PaymentStatus = entity.PaymentStatusRefunded
			didRefund = true
		}

		o.Status = newStatus
		if newStatus == entity.OrderStatusCompleted {
			o.CompletedAt = &now
		}
		o.UpdatedAt = now
		if err := repos.Orders.Update(o); err != nil {
			return err
		}

		payload := map[string]any{
			"order_number": o.OrderNumber,
			"from":         from,
			"to":           newStatus,
		}
		if didRefund {
			payload["refunded"] = true
		}
		updated = o
		return audit.Record(repos.Audit, actor, entity.AuditOrderStatusChange, "order", o.ID, payload)
	})
	if err != nil {
		return nil, err
	}

	name := EventOrderStatusChanged
	if newStatus == entity.OrderStatusCancelled {
		name = EventOrderCancelled
	}
	uc.publish(uc.eventFor(name, updated))
	return updated, nil
}

// CancelOrder cancela la orden (atajo de ChangeStatus hacia cancelled).
func (uc *UseCase) CancelOrder(ctx context.Context, actor audit.Actor, id string) (*entity.Order, error) {
	return uc.ChangeStatus(ctx, actor, id, entity.OrderStatusCancelled)
}
