package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// OpenShiftRequest body para POST /api/shifts/open.
type OpenShiftRequest struct {
	ShiftName   string          `json:"shift_name"`
	OpeningCash decimal.Decimal `json:"opening_cash"`
}

// CloseShiftRequest body para POST /api/shifts/close.
type CloseShiftRequest struct {
	ActualCash decimal.Decimal `json:"actual_cash"`
	Notes      string          `json:"notes,omitempty"`
}

// ShiftResponse turno con su conciliación en respuestas.
type ShiftResponse struct {
	ID               string           `json:"id"`
	ShiftName        string           `json:"shift_name"`
	Status           string           `json:"status"`
	OpeningCash      decimal.Decimal  `json:"opening_cash"`
	ExpectedCash     decimal.Decimal  `json:"expected_cash"`
	ActualCash       *decimal.Decimal `json:"actual_cash,omitempty"`
	CashDifference   *decimal.Decimal `json:"cash_difference,omitempty"`
	PaidOrderCount   int              `json:"paid_order_count"`
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	CashRevenue      decimal.Decimal  `json:"cash_revenue"`
	NonCashRevenue   decimal.Decimal  `json:"non_cash_revenue"`
	RefundAmount     decimal.Decimal  `json:"refund_amount"`
	OpenedByUsername string           `json:"opened_by_username"`
	Notes            string           `json:"notes,omitempty"`
	OpenedAt         time.Time        `json:"opened_at"`
	ClosedAt         *time.Time       `json:"closed_at,omitempty"`
}

// NewShiftResponse mapea la entidad a su respuesta.
func NewShiftResponse(s *entity.ShiftSession) ShiftResponse {
	return ShiftResponse{
		ID:               s.ID,
		ShiftName:        s.ShiftName,
		Status:           s.Status,
		OpeningCash:      s.OpeningCash,
		ExpectedCash:     s.ExpectedCash,
		ActualCash:       s.ActualCash,
		CashDifference:   s.CashDifference,
		PaidOrderCount:   s.PaidOrderCount,
		TotalRevenue:     s.TotalRevenue,
		CashRevenue:      s.CashRevenue,
		NonCashRevenue:   s.NonCashRevenue,
		RefundAmount:     s.RefundAmount,
		OpenedByUsername: s.OpenedByUsername,
		Notes:            s.Notes,
		OpenedAt:         s.OpenedAt,
		ClosedAt:         s.ClosedAt,
	}
}

// NewShiftListResponse mapea un listado de turnos.
func NewShiftListResponse(shifts []*entity.ShiftSession) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, NewShiftResponse(s))
	}
	return out
}
