package orders

import (
	"context"

	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// PayOrder marca la orden como pagada y descuenta el inventario si aún no se
// había descontado. Pagar una orden ya pagada es no-op idempotente (retorna la
// orden sin tocar inventario ni auditoría). Órdenes terminales o reembolsadas
// no admiten pago.
func (uc *UseCase) PayOrder(ctx context.Context, actor audit.Actor, id, method string) (*entity.Order, error) {
	if !validPaymentMethods[method] {
		return nil, domain.ErrInvalidInput
	}

	var paid *entity.Order
	var alerts []LowStockAlert
	var alreadyPaid bool

	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		o, err := repos.Orders.GetForUpdate(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.PaymentStatus == entity.PaymentStatusPaid {
			alreadyPaid = true
			paid = o
			return nil
		}
		if o.IsTerminal() || o.PaymentStatus == entity.PaymentStatusRefunded {
			return domain.ErrOrderNotPayable
		}

		touched, err := uc.markPaid(repos, o, method, actor.UserID)
		if err != nil {
			return err
		}
		alerts = lowStockAlerts(touched)
		paid = o
		return audit.Record(repos.Audit, actor, entity.AuditOrderPay, "order", o.ID, map[string]any{
			"order_number":   o.OrderNumber,
			"payment_method": method,
			"total_amount":   o.TotalAmount,
		})
	})
	if err != nil {
		return nil, err
	}

	if !alreadyPaid {
		event := uc.eventFor(EventOrderPaid, paid)
		event.LowStock = alerts
		uc.publish(event)
	}
	return paid, nil
}
