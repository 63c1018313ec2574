package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/application/inventory"
	"github.com/tu-usuario/breakfast-pos/internal/application/menu"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	invdomain "github.com/tu-usuario/breakfast-pos/internal/domain/inventory"
	orderdomain "github.com/tu-usuario/breakfast-pos/internal/domain/order"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// UseCase es el coordinador de transacciones: único punto de entrada para crear,
// pagar, modificar y transicionar órdenes. Serializa mutaciones concurrentes
// sobre la misma orden con SELECT FOR UPDATE sobre su fila.
type UseCase struct {
	txRunner  TxRunner
	ledger    *inventory.Ledger
	orders    repository.OrderRepository // lecturas fuera de transacción
	publisher EventPublisher
	now       func() time.Time
}

// NewUseCase construye el coordinador. publisher puede ser nil (sin broadcast).
func NewUseCase(
	txRunner TxRunner,
	ledger *inventory.Ledger,
	orders repository.OrderRepository,
	publisher EventPublisher,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		orders:    orders,
		publisher: publisher,
		now:       time.Now,
	}
}

// OrderLineInput una línea solicitada: ítem del menú, cantidad y nota opcional.
type OrderLineInput struct {
	MenuItemID string
	Quantity   int
	Note       string
}

var validSources = map[string]bool{
	entity.SourceDineIn:   true,
	entity.SourceTakeout:  true,
	entity.SourceDelivery: true,
}

var validPaymentMethods = map[string]bool{
	entity.PaymentMethodCash:   true,
	entity.PaymentMethodCard:   true,
	entity.PaymentMethodWallet: true,
}

// buildItems resuelve las líneas contra el catálogo dentro de la transacción,
// capturando el precio vigente de cada ítem. Ítems inexistentes o inactivos
// rechazan la operación completa.
func buildItems(items repository.MenuItemRepository, orderID string, lines []OrderLineInput, newID func() string) ([]entity.OrderItem, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	out := make([]entity.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		item, err := items.GetByID(line.MenuItemID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if item == nil || !item.IsActive {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		out = append(out, entity.OrderItem{
			ID:           newID(),
			OrderID:      orderID,
			MenuItemID:   item.ID,
			MenuItemName: item.Name,
			Quantity:     line.Quantity,
			UnitPrice:    item.Price,
			LineTotal:    lineTotal,
			Note:         orderdomain.NormalizeNote(line.Note),
		})
		total = total.Add(lineTotal)
	}
	return out, total, nil
}

// requirementsFor resuelve los requerimientos de inventario de las líneas de una
// orden usando las recetas leídas dentro de la misma transacción.
func requirementsFor(recipes menu.RecipeSource, items []entity.OrderItem) ([]invdomain.Requirement, error) {
	lines := make([]menu.ResolveLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, menu.ResolveLine{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}
	return menu.ResolveRequirements(recipes, lines)
}

// lowStockAlerts filtra los ingredientes tocados que quedaron en o bajo reorden.
func lowStockAlerts(touched []*entity.Ingredient) []LowStockAlert {
	var alerts []LowStockAlert
	for _, ingredient := range touched {
		if ingredient.BelowReorderLevel() {
			alerts = append(alerts, LowStockAlert{
				IngredientID: ingredient.ID,
				Name:         ingredient.Name,
				CurrentStock: ingredient.CurrentStock,
				ReorderLevel: ingredient.ReorderLevel,
				Unit:         ingredient.Unit,
			})
		}
	}
	return alerts
}

// publish emite el evento post-commit si hay publisher configurado.
func (uc *UseCase) publish(event Event) {
	if uc.publisher != nil {
		uc.publisher.Publish(event)
	}
}

func (uc *UseCase) eventFor(name string, o *entity.Order) Event {
	return Event{
		Event:         name,
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		TotalAmount:   o.TotalAmount,
	}
}

// GetOrder devuelve una orden con sus líneas.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ListOrders lista órdenes, opcionalmente filtradas por estado.
func (uc *UseCase) ListOrders(ctx context.Context, status string, limit int) ([]*entity.Order, error) {
	if status != "" && !orderdomain.IsValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.orders.List(status, limit)
}

// PickupBoard devuelve las órdenes listas para entregar y las completadas
// recientes, para la pantalla de recogida.
func (uc *UseCase) PickupBoard(ctx context.Context) ([]*entity.Order, error) {
	since := uc.now().Add(-2 * time.Hour)
	return uc.orders.ListRecentByStatuses(
		[]string{entity.OrderStatusReady, entity.OrderStatusCompleted},
		since,
		50,
	)
}
