package orders_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/application/inventory"
	"github.com/tu-usuario/breakfast-pos/internal/application/orders"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

var testActor = audit.Actor{UserID: "user-1", Username: "staff1", Role: entity.RoleStaff}

// fixture arma un catálogo de desayunos: tostada (2 pan + 1 huevo + 1 jamón) y
// té con leche (220 ml de leche).
func fixture() (*orders.UseCase, *fakeStore, *fakePublisher) {
	store := newFakeStore()
	store.addMenuItem("mi-tostada", "Ham Egg Toast", "65", true)
	store.addMenuItem("mi-te", "Milk Tea", "40", true)
	store.addMenuItem("mi-retirado", "Old Special", "99", false)

	store.addIngredient("ing-huevo", "Egg", "20", "5")
	store.addIngredient("ing-jamon", "Ham", "10", "2")
	store.addIngredient("ing-leche", "Milk", "2000", "500")
	store.addIngredient("ing-pan", "Bread Slice", "40", "8")

	store.addRecipeLine("mi-tostada", "ing-pan", "2")
	store.addRecipeLine("mi-tostada", "ing-huevo", "1")
	store.addRecipeLine("mi-tostada", "ing-jamon", "1")
	store.addRecipeLine("mi-te", "ing-leche", "220")

	publisher := &fakePublisher{}
	uc := orders.NewUseCase(&fakeTxRunner{store: store}, inventory.NewLedger(), &fakeOrderRepo{store: store}, publisher)
	return uc, store, publisher
}

func createPending(t *testing.T, uc *orders.UseCase, lines ...orders.OrderLineInput) *entity.Order {
	t.Helper()
	if len(lines) == 0 {
		lines = []orders.OrderLineInput{{MenuItemID: "mi-tostada", Quantity: 1}}
	}
	o, err := uc.CreateOrder(context.Background(), testActor, orders.CreateOrderInput{
		Source: entity.SourceDineIn,
		Items:  lines,
	})
	require.NoError(t, err)
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_PendienteSinPagoNoTocaInventario(t *testing.T) {
	uc, store, publisher := fixture()

	o, err := uc.CreateOrder(context.Background(), testActor, orders.CreateOrderInput{
		Source: entity.SourceTakeout,
		Items: []orders.OrderLineInput{
			{MenuItemID: "mi-tostada", Quantity: 2},
			{MenuItemID: "mi-te", Quantity: 1, Note: "sin azúcar"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, entity.PaymentStatusUnpaid, o.PaymentStatus)
	assert.Nil(t, o.InventoryDeductedAt)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(170)), "2×65 + 1×40")

	// El precio se captura por línea al momento de ordenar.
	require.Len(t, o.Items, 2)
	assert.True(t, o.Items[0].UnitPrice.Equal(decimal.NewFromInt(65)))
	assert.True(t, o.Items[0].LineTotal.Equal(decimal.NewFromInt(130)))

	assert.Empty(t, store.movements, "sin pago no hay deducción")
	assert.True(t, store.stockOf("ing-huevo").Equal(decimal.NewFromInt(20)))

	eventos := publisher.byName(orders.EventOrderCreated)
	require.Len(t, eventos, 1)
	assert.Equal(t, o.OrderNumber, eventos[0].OrderNumber)
	assert.Empty(t, eventos[0].LowStock)

	require.Len(t, store.audit, 1)
	assert.Equal(t, entity.AuditOrderCreate, store.audit[0].Action)
}

func TestCreateOrder_ConPagoDescuentaEnLaMismaTransaccion(t *testing.T) {
	uc, store, publisher := fixture()

	o, err := uc.CreateOrder(context.Background(), testActor, orders.CreateOrderInput{
		Source:        entity.SourceDineIn,
		Items:         []orders.OrderLineInput{{MenuItemID: "mi-tostada", Quantity: 2}},
		Pay:           true,
		PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, o.PaymentStatus)
	assert.NotNil(t, o.PaidAt)
	assert.NotNil(t, o.InventoryDeductedAt)

	assert.True(t, store.stockOf("ing-pan").Equal(decimal.NewFromInt(36)))
	assert.True(t, store.stockOf("ing-huevo").Equal(decimal.NewFromInt(18)))
	assert.True(t, store.stockOf("ing-jamon").Equal(decimal.NewFromInt(8)))

	movimientos := store.movementsByReference("ORDER:" + o.OrderNumber)
	assert.Len(t, movimientos, 3, "un movimiento usage por ingrediente de la receta")

	require.Len(t, publisher.byName(orders.EventOrderCreated), 1)
}

func TestCreateOrder_PagoSinStockNoDejaNiLaOrden(t *testing.T) {
	uc, store, publisher := fixture()
	store.ingredients["ing-jamon"] = entity.Ingredient{
		ID: "ing-jamon", Name: "Ham", Unit: "pcs",
		CurrentStock: decimal.NewFromInt(1),
		ReorderLevel: decimal.NewFromInt(2),
	}

	_, err := uc.CreateOrder(context.Background(), testActor, orders.CreateOrderInput{
		Source:        entity.SourceDineIn,
		Items:         []orders.OrderLineInput{{MenuItemID: "mi-tostada", Quantity: 2}},
		Pay:           true,
		PaymentMethod: entity.PaymentMethodCash,
	})
	insuficiente, ok := domain.AsInsufficientInventory(err)
	require.True(t, ok)
	require.Len(t, insuficiente.Shortages, 1)
	assert.Equal(t, "Ham", insuficiente.Shortages[0].IngredientName)

	assert.Empty(t, store.orders, "la transacción completa se revierte: no queda orden")
	assert.Empty(t, store.movements)
	assert.Empty(t, store.audit)
	assert.Empty(t, publisher.events, "nunca se publica un evento de una transacción revertida")
}

func TestCreateOrder_ItemInactivoRechazaLaOrden(t *testing.T) {
	uc, store, _ := fixture()

	_, err := uc.CreateOrder(context.Background(), testActor, orders.CreateOrderInput{
		Source: entity.SourceDineIn,
		Items: []orders.OrderLineInput{
			{MenuItemID: "mi-tostada", Quantity: 1},
			{MenuItemID: "mi-retirado", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.orders)
}

func TestCreateOrder_EntradasInvalidas(t *testing.T) {
	uc, _, _ := fixture()
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, testActor, orders.CreateOrderInput{Source: "drive_thru",
		Items: []orders.OrderLineInput{{MenuItemID: "mi-tostada", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "canal desconocido")

	_, err = uc.CreateOrder(ctx, testActor, orders.CreateOrderInput{Source: entity.SourceDineIn})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.CreateOrder(ctx, testActor, orders.CreateOrderInput{Source: entity.SourceDineIn,
		Items: []orders.OrderLineInput{{MenuItemID: "mi-tostada", Quantity: 0}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.CreateOrder(ctx, testActor, orders.CreateOrderInput{Source: entity.SourceDineIn,
		Items: []orders.OrderLineInput{{MenuItemID: "mi-tostada", Quantity: 1}},
		Pay:   true, PaymentMethod: "cheque"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método de pago desconocido")
}

func TestCreateOrder_ReintentaAnteColisionDeNumero(t *testing.T) {
	uc, store, _ := fixture()
	store.failNextOrderCreates = 1

	o, err := uc.CreateOrder(context.Background(), testActor, orders.CreateOrderInput{
		Source: entity.SourceDineIn,
		Items:  []orders.OrderLineInput{{MenuItemID: "mi-tostada", Quantity: 1}},
	})
	require.NoError(t, err, "una colisión de número debe reintentarse con número fresco")
	assert.NotEmpty(t, o.OrderNumber)
	assert.Len(t, store.orders, 1)
}

func TestCreateOrder_AgotaReintentosDeNumero(t *testing.T) {
	uc, store, _ := fixture()
	store.failNextOrderCreates = 3

	_, err := uc.CreateOrder(context.Background(), testActor, orders.CreateOrderInput{
		Source: entity.SourceDineIn,
		Items:  []orders.OrderLineInput{{MenuItemID: "mi-tostada", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, store.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// PayOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestPayOrder_DescuentaYMarcaPagada(t *testing.T) {
	uc, store, publisher := fixture()
	o := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-te", Quantity: 2})

	paid, err := uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCard)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, entity.PaymentMethodCard, paid.PaymentMethod)
	assert.NotNil(t, paid.InventoryDeductedAt)
	assert.True(t, store.stockOf("ing-leche").Equal(decimal.NewFromInt(1560)), "2000 − 2×220")

	require.Len(t, publisher.byName(orders.EventOrderPaid), 1)
}

func TestPayOrder_PagarDosVecesEsNoOpIdempotente(t *testing.T) {
	uc, store, publisher := fixture()
	o := createPending(t, uc)

	_, err := uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCash)
	require.NoError(t, err)
	movimientosTrasPrimerPago := len(store.movements)
	auditTrasPrimerPago := len(store.audit)

	paid, err := uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCard)
	require.NoError(t, err, "repagar no es error")

	assert.Equal(t, entity.PaymentMethodCash, paid.PaymentMethod, "el segundo pago no sobreescribe el método")
	assert.Len(t, store.movements, movimientosTrasPrimerPago, "sin segunda deducción")
	assert.Len(t, store.audit, auditTrasPrimerPago, "sin segundo registro de auditoría")
	assert.Len(t, publisher.byName(orders.EventOrderPaid), 1, "sin segundo evento")
}

func TestPayOrder_ConcurrenteDescuentaExactamenteUnaVez(t *testing.T) {
	uc, store, _ := fixture()
	o := createPending(t, uc)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCash)
		}()
	}
	wg.Wait()

	movimientos := store.movementsByReference("ORDER:" + o.OrderNumber)
	assert.Len(t, movimientos, 3, "solo un pago concurrente debe descontar")
	assert.True(t, store.stockOf("ing-huevo").Equal(decimal.NewFromInt(19)))
}

func TestPayOrder_DosOrdenesConcurrentesNoSobrevendenUnIngredienteCompartido(t *testing.T) {
	uc, store, _ := fixture()
	// El huevo alcanza para una sola de las dos órdenes (10 frente a 6+6);
	// pan y jamón sobran para que el único faltante sea el huevo.
	store.addIngredient("ing-huevo", "Egg", "10", "5")
	store.addIngredient("ing-jamon", "Ham", "40", "2")
	o1 := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-tostada", Quantity: 6})
	o2 := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-tostada", Quantity: 6})

	var wg sync.WaitGroup
	errores := make([]error, 2)
	for i, id := range []string{o1.ID, o2.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errores[i] = uc.PayOrder(context.Background(), testActor, id, entity.PaymentMethodCash)
		}(i, id)
	}
	wg.Wait()

	var exitos, rechazos int
	for _, err := range errores {
		if err == nil {
			exitos++
			continue
		}
		insuficiente, ok := domain.AsInsufficientInventory(err)
		require.True(t, ok, "el pago perdedor debe reportar el faltante detallado")
		require.Len(t, insuficiente.Shortages, 1)
		assert.Equal(t, "Egg", insuficiente.Shortages[0].IngredientName)
		assert.True(t, insuficiente.Shortages[0].Available.Equal(decimal.NewFromInt(4)))
		assert.True(t, insuficiente.Shortages[0].Required.Equal(decimal.NewFromInt(6)))
		rechazos++
	}
	assert.Equal(t, 1, exitos, "exactamente un pago debe descontar")
	assert.Equal(t, 1, rechazos, "el otro debe fallar por inventario insuficiente")
	assert.True(t, store.stockOf("ing-huevo").Equal(decimal.NewFromInt(4)), "10 − 6, nunca negativo")
}

func TestPayOrder_OrdenCanceladaNoAdmitePago(t *testing.T) {
	uc, _, _ := fixture()
	o := createPending(t, uc)
	_, err := uc.CancelOrder(context.Background(), testActor, o.ID)
	require.NoError(t, err)

	_, err = uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCash)
	assert.ErrorIs(t, err, domain.ErrOrderNotPayable)
}

func TestPayOrder_NoEncontrada(t *testing.T) {
	uc, _, _ := fixture()
	_, err := uc.PayOrder(context.Background(), testActor, "orden-fantasma", entity.PaymentMethodCash)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// AmendOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestAmendOrder_SinPagoSoloReemplazaLineas(t *testing.T) {
	uc, store, publisher := fixture()
	o := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-tostada", Quantity: 1})

	amended, diff, err := uc.AmendOrder(context.Background(), testActor, o.ID, []orders.OrderLineInput{
		{MenuItemID: "mi-tostada", Quantity: 2},
		{MenuItemID: "mi-te", Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, amended.TotalAmount.Equal(decimal.NewFromInt(170)))
	assert.Empty(t, store.movements, "sin deducción previa no hay delta de inventario")

	// El diff vuelve al llamador, no solo al broadcast.
	require.Len(t, diff.Added, 1)
	assert.Equal(t, "Milk Tea", diff.Added[0].MenuItemName)
	require.Len(t, diff.QuantityChanged, 1)
	assert.Equal(t, 1, diff.QuantityChanged[0].BeforeQuantity)
	assert.Equal(t, 2, diff.QuantityChanged[0].AfterQuantity)

	eventos := publisher.byName(orders.EventOrderAmended)
	require.Len(t, eventos, 1)
	require.NotNil(t, eventos[0].Diff)
	assert.Equal(t, diff, *eventos[0].Diff, "el llamador y el broadcast reciben el mismo diff")
}

func TestAmendOrder_PagadaAplicaDeltaNeto(t *testing.T) {
	uc, store, _ := fixture()
	o := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-tostada", Quantity: 2})
	_, err := uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCash)
	require.NoError(t, err)
	require.True(t, store.stockOf("ing-huevo").Equal(decimal.NewFromInt(18)))

	// 2 tostadas -> 1 tostada: restaura el consumo de una.
	_, _, err = uc.AmendOrder(context.Background(), testActor, o.ID, []orders.OrderLineInput{
		{MenuItemID: "mi-tostada", Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, store.stockOf("ing-huevo").Equal(decimal.NewFromInt(19)))
	assert.True(t, store.stockOf("ing-pan").Equal(decimal.NewFromInt(38)))

	deltas := store.movementsByReference("AMEND:" + o.OrderNumber)
	require.Len(t, deltas, 3)
	for _, movimiento := range deltas {
		assert.Equal(t, entity.MovementTypeAdjustment, movimiento.Type, "reducir cantidad restaura, no consume")
		assert.True(t, movimiento.Quantity.IsPositive())
	}
}

func TestAmendOrder_ReemplazoIdenticoEsNoOp(t *testing.T) {
	uc, store, publisher := fixture()
	o := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-tostada", Quantity: 1})
	auditAntes := len(store.audit)

	_, diff, err := uc.AmendOrder(context.Background(), testActor, o.ID, []orders.OrderLineInput{
		{MenuItemID: "mi-tostada", Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, diff.IsEmpty(), "un reemplazo idéntico devuelve un diff vacío")
	assert.Len(t, store.audit, auditAntes, "no-op no audita")
	assert.Empty(t, publisher.byName(orders.EventOrderAmended), "no-op no publica evento")
}

func TestAmendOrder_ConservaPrecioCapturadoDeLineasPreexistentes(t *testing.T) {
	uc, store, _ := fixture()
	o := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-tostada", Quantity: 1})

	// El menú sube de precio después de ordenar.
	store.addMenuItem("mi-tostada", "Ham Egg Toast", "80", true)

	amended, _, err := uc.AmendOrder(context.Background(), testActor, o.ID, []orders.OrderLineInput{
		{MenuItemID: "mi-tostada", Quantity: 2},
		{MenuItemID: "mi-te", Quantity: 1},
	})
	require.NoError(t, err)

	// La tostada conserva 65; el té (línea nueva) toma el precio vigente 40.
	assert.True(t, amended.TotalAmount.Equal(decimal.NewFromInt(170)),
		"2×65 (precio capturado) + 1×40, no 2×80")
}

func TestAmendOrder_SinStockParaElDeltaRevierteTodo(t *testing.T) {
	uc, store, publisher := fixture()
	o := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-tostada", Quantity: 1})
	_, err := uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCash)
	require.NoError(t, err)
	stockHuevo := store.stockOf("ing-huevo")
	eventosAntes := len(publisher.events)

	// Pedir 30 tostadas más de lo que alcanza el jamón (quedan 9).
	_, _, err = uc.AmendOrder(context.Background(), testActor, o.ID, []orders.OrderLineInput{
		{MenuItemID: "mi-tostada", Quantity: 31},
	})
	_, ok := domain.AsInsufficientInventory(err)
	require.True(t, ok)

	recargada, err := uc.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	require.Len(t, recargada.Items, 1)
	assert.Equal(t, 1, recargada.Items[0].Quantity, "las líneas originales quedan intactas")
	assert.True(t, store.stockOf("ing-huevo").Equal(stockHuevo), "el stock no cambia")
	assert.Len(t, publisher.events, eventosAntes)
}

func TestAmendOrder_CompletadaNoAdmiteModificacion(t *testing.T) {
	uc, _, _ := fixture()
	ctx := context.Background()
	o := createPending(t, uc)
	for _, status := range []string{entity.OrderStatusPreparing, entity.OrderStatusReady, entity.OrderStatusCompleted} {
		_, err := uc.ChangeStatus(ctx, testActor, o.ID, status)
		require.NoError(t, err)
	}

	_, _, err := uc.AmendOrder(ctx, testActor, o.ID, []orders.OrderLineInput{
		{MenuItemID: "mi-te", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotAmendable)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangeStatus / CancelOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_FlujoNormalHastaCompletada(t *testing.T) {
	uc, store, publisher := fixture()
	ctx := context.Background()
	o := createPending(t, uc)

	for _, status := range []string{entity.OrderStatusPreparing, entity.OrderStatusReady} {
		updated, err := uc.ChangeStatus(ctx, testActor, o.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		assert.Nil(t, updated.CompletedAt)
	}

	completed, err := uc.ChangeStatus(ctx, testActor, o.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.NotNil(t, completed.CompletedAt)

	assert.Len(t, publisher.byName(orders.EventOrderStatusChanged), 3)
	assert.Len(t, store.audit, 4, "creación + tres transiciones")
}

func TestChangeStatus_TransicionIlegalNoTocaLaOrden(t *testing.T) {
	uc, _, publisher := fixture()
	o := createPending(t, uc)
	eventosAntes := len(publisher.events)

	_, err := uc.ChangeStatus(context.Background(), testActor, o.ID, entity.OrderStatusCompleted)
	transicion, ok := domain.AsInvalidTransition(err)
	require.True(t, ok)
	assert.Equal(t, entity.OrderStatusPending, transicion.From)
	assert.Equal(t, entity.OrderStatusCompleted, transicion.To)

	recargada, err := uc.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, recargada.Status)
	assert.Len(t, publisher.events, eventosAntes)
}

func TestChangeStatus_EstadoDesconocidoEsInvalido(t *testing.T) {
	uc, _, _ := fixture()
	o := createPending(t, uc)

	_, err := uc.ChangeStatus(context.Background(), testActor, o.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancelOrder_SinPagoNoTocaInventario(t *testing.T) {
	uc, store, publisher := fixture()
	o := createPending(t, uc)

	cancelled, err := uc.CancelOrder(context.Background(), testActor, o.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, entity.PaymentStatusUnpaid, cancelled.PaymentStatus, "sin pago no hay reembolso")
	assert.Empty(t, store.movements)
	assert.Len(t, publisher.byName(orders.EventOrderCancelled), 1)
}

func TestCancelOrder_PagadaRestauraYReembolsa(t *testing.T) {
	uc, store, _ := fixture()
	o := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-tostada", Quantity: 2})
	_, err := uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCash)
	require.NoError(t, err)
	require.True(t, store.stockOf("ing-huevo").Equal(decimal.NewFromInt(18)))

	cancelled, err := uc.CancelOrder(context.Background(), testActor, o.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusRefunded, cancelled.PaymentStatus)
	assert.True(t, store.stockOf("ing-huevo").Equal(decimal.NewFromInt(20)), "la cancelación devuelve el stock")
	assert.True(t, store.stockOf("ing-pan").Equal(decimal.NewFromInt(40)))

	restauraciones := store.movementsByReference("CANCEL:" + o.OrderNumber)
	require.Len(t, restauraciones, 3)
	for _, movimiento := range restauraciones {
		assert.Equal(t, entity.MovementTypeAdjustment, movimiento.Type)
		assert.True(t, movimiento.Quantity.IsPositive())
	}
}

func TestCancelOrder_RestauracionIdempotentePorReferencia(t *testing.T) {
	uc, store, _ := fixture()
	o := createPending(t, uc)
	_, err := uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCash)
	require.NoError(t, err)

	// Un movimiento con la referencia de cancelación ya registrado (replay de la
	// misma cancelación) debe impedir una segunda restauración.
	store.movements = append(store.movements, entity.StockMovement{
		ID:           "mov-previo",
		IngredientID: "ing-huevo",
		Type:         entity.MovementTypeAdjustment,
		Quantity:     decimal.NewFromInt(1),
		Reference:    "CANCEL:" + o.OrderNumber,
	})
	movimientosAntes := len(store.movements)

	cancelled, err := uc.CancelOrder(context.Background(), testActor, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, cancelled.PaymentStatus)
	assert.Len(t, store.movements, movimientosAntes, "con la referencia ya presente no se restaura de nuevo")
}

func TestCancelOrder_ListaNoAdmiteCancelacion(t *testing.T) {
	uc, _, _ := fixture()
	ctx := context.Background()
	o := createPending(t, uc)
	for _, status := range []string{entity.OrderStatusPreparing, entity.OrderStatusReady} {
		_, err := uc.ChangeStatus(ctx, testActor, o.ID, status)
		require.NoError(t, err)
	}

	_, err := uc.CancelOrder(ctx, testActor, o.ID)
	_, ok := domain.AsInvalidTransition(err)
	assert.True(t, ok, "ready -> cancelled es arista ilegal")
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas de bajo stock
// ──────────────────────────────────────────────────────────────────────────────

func TestPayOrder_EventoIncluyeAlertasDeBajoStock(t *testing.T) {
	uc, store, publisher := fixture()
	// El jamón quedará en 2 (== reorden) tras pagar 8 tostadas.
	store.addIngredient("ing-jamon", "Ham", "10", "2")
	o := createPending(t, uc, orders.OrderLineInput{MenuItemID: "mi-tostada", Quantity: 8})

	_, err := uc.PayOrder(context.Background(), testActor, o.ID, entity.PaymentMethodCash)
	require.NoError(t, err)

	eventos := publisher.byName(orders.EventOrderPaid)
	require.Len(t, eventos, 1)
	require.NotEmpty(t, eventos[0].LowStock, "llegar al punto de reorden dispara la alerta")

	var nombres []string
	for _, alerta := range eventos[0].LowStock {
		nombres = append(nombres, alerta.Name)
	}
	assert.Contains(t, nombres, "Ham")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListOrders_EstadoInvalidoRechazado(t *testing.T) {
	uc, _, _ := fixture()
	_, err := uc.ListOrders(context.Background(), "shipped", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListOrders_FiltraPorEstado(t *testing.T) {
	uc, _, _ := fixture()
	ctx := context.Background()
	createPending(t, uc)
	o := createPending(t, uc)
	_, err := uc.ChangeStatus(ctx, testActor, o.ID, entity.OrderStatusPreparing)
	require.NoError(t, err)

	pendientes, err := uc.ListOrders(ctx, entity.OrderStatusPending, 0)
	require.NoError(t, err)
	assert.Len(t, pendientes, 1)
}
