package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	orderdomain "github.com/tu-usuario/breakfast-pos/internal/domain/order"
)

// AmendOrder reemplaza las líneas de una orden aún modificable. Calcula el diff
// estructural una sola vez y lo reutiliza para el delta de inventario (si la
// orden ya descontó), el payload de auditoría y el evento de broadcast. Un
// reemplazo idéntico es no-op: ni auditoría ni evento.
// Las líneas que ya existían (mismo ítem y nota) conservan su precio capturado;
// solo las líneas nuevas toman el precio vigente del menú.
// Devuelve la orden actualizada junto con el diff para que el cliente pueda
// mostrar qué cambió.
func (uc *UseCase) AmendOrder(ctx context.Context, actor audit.Actor, id string, lines []OrderLineInput) (*entity.Order, orderdomain.Diff, error) {
	var amended *entity.Order
	var diff orderdomain.Diff
	var alerts []LowStockAlert

	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		o, err := repos.Orders.GetForUpdate(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !orderdomain.CanAmend(o.Status) {
			return domain.ErrOrderNotAmendable
		}

		newItems, _, err := buildItems(repos.MenuItems, o.ID, lines, func() string {
			return uuid.New().String()
		})
		if err != nil {
			return err
		}
		newTotal := preserveCapturedPrices(o.Items, newItems)

		before := orderdomain.SnapshotItems(o.Items)
		after := orderdomain.SnapshotItems(newItems)
		diff = orderdomain.BuildDiff(before, after)
		if diff.IsEmpty() {
			amended = o
			return nil
		}

		if o.InventoryDeductedAt != nil {
			oldReqs, err := requirementsFor(repos.Recipes, o.Items)
			if err != nil {
				return err
			}
			newReqs, err := requirementsFor(repos.Recipes, newItems)
			if err != nil {
				return err
			}
			touched, err := uc.ledger.ApplyDelta(repos.Ledger(), oldReqs, newReqs, amendReference(o.OrderNumber), actor.UserID)
			if err != nil {
				return err
			}
			alerts = lowStockAlerts(touched)
		}

		previousTotal := o.TotalAmount
		if err := repos.Orders.ReplaceItems(o.ID, newItems); err != nil {
			return err
		}
		o.Items = newItems
		o.TotalAmount = newTotal
		o.UpdatedAt = uc.now()
		if err := repos.Orders.Update(o); err != nil {
			return err
		}

		payload := map[string]any{
			"order_number":   o.OrderNumber,
			"diff":           diff,
			"previous_total": previousTotal,
			"new_total":      newTotal,
		}
		if o.PaymentStatus == entity.PaymentStatusPaid {
			// La orden sigue pagada: el saldo (positivo a cobrar, negativo a
			// devolver) queda registrado para conciliación en caja.
			payload["balance_due"] = newTotal.Sub(previousTotal)
		}
		amended = o
		return audit.Record(repos.Audit, actor, entity.AuditOrderAmend, "order", o.ID, payload)
	})
	if err != nil {
		return nil, orderdomain.Diff{}, err
	}

	if !diff.IsEmpty() {
		event := uc.eventFor(EventOrderAmended, amended)
		event.Diff = &diff
		event.LowStock = alerts
		uc.publish(event)
	}
	return amended, diff, nil
}

type priceKey struct {
	menuItemID string
	note       string
}

// preserveCapturedPrices copia el precio capturado de las líneas preexistentes
// (misma clave ítem+nota) sobre las líneas nuevas y retorna el total recalculado.
func preserveCapturedPrices(existing, newItems []entity.OrderItem) decimal.Decimal {
	captured := make(map[priceKey]decimal.Decimal, len(existing))
	for _, item := range existing {
		key := priceKey{item.MenuItemID, orderdomain.NormalizeNote(item.Note)}
		if _, ok := captured[key]; !ok {
			captured[key] = item.UnitPrice
		}
	}
	total := decimal.Zero
	for i := range newItems {
		key := priceKey{newItems[i].MenuItemID, orderdomain.NormalizeNote(newItems[i].Note)}
		if price, ok := captured[key]; ok {
			newItems[i].UnitPrice = price
			newItems[i].LineTotal = price.Mul(decimal.NewFromInt(int64(newItems[i].Quantity)))
		}
		total = total.Add(newItems[i].LineTotal)
	}
	return total
}
