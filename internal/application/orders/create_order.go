package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	orderdomain "github.com/tu-usuario/breakfast-pos/internal/domain/order"
)

// Etiquetas de referencia de los movimientos de inventario por orden.
func orderReference(number string) string  { return "ORDER:" + number }
func cancelReference(number string) string { return "CANCEL:" + number }
func amendReference(number string) string  { return "AMEND:" + number }

// Reintentos ante colisión del número de orden. Cada reintento corre una
// transacción nueva con un número fresco (la tx anterior ya quedó abortada).
const orderNumberAttempts = 3

// CreateOrderInput entrada para crear una orden.
type CreateOrderInput struct {
	Source string
	Items  []OrderLineInput
	// Pay indica pago inmediato: la deducción de inventario ocurre dentro de la
	// misma transacción de creación.
	Pay           bool
	PaymentMethod string
}

// CreateOrder crea la orden en estado pending con el precio vigente capturado
// por línea. Con Pay, además descuenta inventario y marca la orden pagada, todo
// en una sola transacción: si falta stock no queda ni la orden.
func (uc *UseCase) CreateOrder(ctx context.Context, actor audit.Actor, in CreateOrderInput) (*entity.Order, error) {
	if !validSources[in.Source] {
		return nil, domain.ErrInvalidInput
	}
	if in.Pay && !validPaymentMethods[in.PaymentMethod] {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.Order
	var alerts []LowStockAlert
	var lastErr error

	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number := GenerateOrderNumber(uc.now())
		created, alerts = nil, nil

		err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
			now := uc.now()
			o := &entity.Order{
				ID:            uuid.New().String(),
				OrderNumber:   number,
				Source:        in.Source,
				Status:        entity.OrderStatusPending,
				PaymentStatus: entity.PaymentStatusUnpaid,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			items, total, err := buildItems(repos.MenuItems, o.ID, in.Items, func() string {
				return uuid.New().String()
			})
			if err != nil {
				return err
			}
			o.Items = items
			o.TotalAmount = total

			if err := repos.Orders.Create(o); err != nil {
				return err
			}
			if in.Pay {
				touched, err := uc.markPaid(repos, o, in.PaymentMethod, actor.UserID)
				if err != nil {
					return err
				}
				alerts = lowStockAlerts(touched)
			}

			if err := audit.Record(repos.Audit, actor, entity.AuditOrderCreate, "order", o.ID, map[string]any{
				"order_number": o.OrderNumber,
				"source":       o.Source,
				"items":        orderdomain.SnapshotItems(o.Items),
				"total_amount": o.TotalAmount,
				"paid":         in.Pay,
			}); err != nil {
				return err
			}
			created = o
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicate) {
			lastErr = err
			continue
		}
		return nil, err
	}
	if created == nil {
		return nil, lastErr
	}

	event := uc.eventFor(EventOrderCreated, created)
	event.LowStock = alerts
	uc.publish(event)
	return created, nil
}

// markPaid descuenta el inventario de la orden (una sola vez: guardado por
// InventoryDeductedAt) y la marca como pagada. Corre dentro de la transacción
// del caller; los errores revierten todo, incluida la deducción.
func (uc *UseCase) markPaid(repos TxRepos, o *entity.Order, method, userID string) ([]*entity.Ingredient, error) {
	var touched []*entity.Ingredient
	if o.InventoryDeductedAt == nil {
		reqs, err := requirementsFor(repos.Recipes, o.Items)
		if err != nil {
			return nil, err
		}
		if len(reqs) > 0 {
			touched, err = uc.ledger.ReserveAndDeduct(repos.Ledger(), reqs, orderReference(o.OrderNumber), userID)
			if err != nil {
				return nil, err
			}
		}
		deductedAt := uc.now()
		o.InventoryDeductedAt = &deductedAt
	}
	paidAt := uc.now()
	o.PaymentStatus = entity.PaymentStatusPaid
	o.PaymentMethod = method
	o.PaidAt = &paidAt
	o.UpdatedAt = paidAt
	return touched, repos.Orders.Update(o)
}
