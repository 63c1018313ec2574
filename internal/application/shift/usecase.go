// Package shift maneja turnos de caja: apertura, cierre y conciliación de
// efectivo contra las órdenes pagadas del turno.
package shift

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// UseCase apertura y cierre de turnos.
type UseCase struct {
	shifts    repository.ShiftRepository
	orders    repository.OrderRepository
	auditRepo repository.AuditLogRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	shifts repository.ShiftRepository,
	orders repository.OrderRepository,
	auditRepo repository.AuditLogRepository,
) *UseCase {
	return &UseCase{shifts: shifts, orders: orders, auditRepo: auditRepo, now: time.Now}
}

// OpenInput entrada para abrir turno.
type OpenInput struct {
	ShiftName   string
	OpeningCash decimal.Decimal
}

// Open abre un turno nuevo. Solo puede haber un turno abierto a la vez.
func (uc *UseCase) Open(ctx context.Context, actor audit.Actor, in OpenInput) (*entity.ShiftSession, error) {
	if in.ShiftName == "" || in.OpeningCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	open, err := uc.shifts.GetOpen()
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrShiftAlreadyOpen
	}

	session := &entity.ShiftSession{
		ID:               uuid.New().String(),
		ShiftName:        in.ShiftName,
		Status:           entity.ShiftStatusOpen,
		OpeningCash:      in.OpeningCash,
		OpenedByUserID:   actor.UserID,
		OpenedByUsername: actor.Username,
		OpenedAt:         uc.now(),
	}
	if err := uc.shifts.Create(session); err != nil {
		return nil, err
	}
	if err := audit.Record(uc.auditRepo, actor, entity.AuditShiftOpen, "shift", session.ID, map[string]any{
		"shift_name":   session.ShiftName,
		"opening_cash": session.OpeningCash,
	}); err != nil {
		return nil, err
	}
	return session, nil
}

// CloseInput entrada para cerrar turno.
type CloseInput struct {
	ActualCash decimal.Decimal
	Notes      string
}

// Close cierra el turno abierto y concilia: suma las órdenes pagadas del turno
// por método (efectivo vs otros), descuenta reembolsos en efectivo y compara el
// efectivo esperado contra el contado.
func (uc *UseCase) Close(ctx context.Context, actor audit.Actor, in CloseInput) (*entity.ShiftSession, error) {
	if in.ActualCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.shifts.GetOpen()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenShift
	}

	closedAt := uc.now()
	paidOrders, err := uc.orders.ListPaidBetween(session.OpenedAt, closedAt)
	if err != nil {
		return nil, err
	}
	refundedOrders, err := uc.orders.ListRefundedBetween(session.OpenedAt, closedAt)
	if err != nil {
		return nil, err
	}

	cashRevenue, nonCashRevenue := decimal.Zero, decimal.Zero
	for _, o := range paidOrders {
		if o.PaymentMethod == entity.PaymentMethodCash {
			cashRevenue = cashRevenue.Add(o.TotalAmount)
		} else {
			nonCashRevenue = nonCashRevenue.Add(o.TotalAmount)
		}
	}
	refundAmount, cashRefunds := decimal.Zero, decimal.Zero
	for _, o := range refundedOrders {
		refundAmount = refundAmount.Add(o.TotalAmount)
		if o.PaymentMethod == entity.PaymentMethodCash {
			cashRefunds = cashRefunds.Add(o.TotalAmount)
		}
	}

	expectedCash := session.OpeningCash.Add(cashRevenue).Sub(cashRefunds)
	difference := in.ActualCash.Sub(expectedCash)

	session.Status = entity.ShiftStatusClosed
	session.ExpectedCash = expectedCash
	session.ActualCash = &in.ActualCash
	session.CashDifference = &difference
	session.PaidOrderCount = len(paidOrders)
	session.TotalRevenue = cashRevenue.Add(nonCashRevenue)
	session.CashRevenue = cashRevenue
	session.NonCashRevenue = nonCashRevenue
	session.RefundAmount = refundAmount
	session.Notes = in.Notes
	session.ClosedAt = &closedAt

	if err := uc.shifts.Update(session); err != nil {
		return nil, err
	}
	if err := audit.Record(uc.auditRepo, actor, entity.AuditShiftClose, "shift", session.ID, map[string]any{
		"shift_name":      session.ShiftName,
		"expected_cash":   expectedCash,
		"actual_cash":     in.ActualCash,
		"cash_difference": difference,
		"paid_orders":     session.PaidOrderCount,
	}); err != nil {
		return nil, err
	}
	return session, nil
}

// Current devuelve el turno abierto, o ErrNoOpenShift si no hay.
func (uc *UseCase) Current(ctx context.Context) (*entity.ShiftSession, error) {
	session, err := uc.shifts.GetOpen()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenShift
	}
	return session, nil
}

// List devuelve los turnos más recientes.
func (uc *UseCase) List(ctx context.Context, limit int) ([]*entity.ShiftSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.shifts.List(limit)
}
