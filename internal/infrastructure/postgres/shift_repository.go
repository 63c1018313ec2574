package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

const shiftColumns = `id, shift_name, status, opening_cash, expected_cash, actual_cash, cash_difference,
	paid_order_count, total_revenue, cash_revenue, non_cash_revenue, refund_amount,
	opened_by_user_id, opened_by_username, notes, opened_at, closed_at`

// ShiftRepo implementación de ShiftRepository sobre PostgreSQL (usable con pool o tx).
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

func scanShift(row pgx.Row) (*entity.ShiftSession, error) {
	var s entity.ShiftSession
	err := row.Scan(
		&s.ID, &s.ShiftName, &s.Status, &s.OpeningCash, &s.ExpectedCash, &s.ActualCash, &s.CashDifference,
		&s.PaidOrderCount, &s.TotalRevenue, &s.CashRevenue, &s.NonCashRevenue, &s.RefundAmount,
		&s.OpenedByUserID, &s.OpenedByUsername, &s.Notes, &s.OpenedAt, &s.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetOpen devuelve el turno abierto, o nil si no hay ninguno.
func (r *ShiftRepo) GetOpen() (*entity.ShiftSession, error) {
	query := `SELECT ` + shiftColumns + ` FROM shift_sessions WHERE status = 'open' ORDER BY opened_at DESC LIMIT 1`
	s, err := scanShift(r.q.QueryRow(context.Background(), query))
	if err != nil {
		return nil, fmt.Errorf("get open shift: %w", err)
	}
	return s, nil
}

// GetByID obtiene un turno por ID. Retorna nil sin error si no existe.
func (r *ShiftRepo) GetByID(id string) (*entity.ShiftSession, error) {
	query := `SELECT ` + shiftColumns + ` FROM shift_sessions WHERE id = $1`
	s, err := scanShift(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return s, nil
}

// List devuelve los turnos más recientes.
func (r *ShiftRepo) List(limit int) ([]*entity.ShiftSession, error) {
	query := `SELECT ` + shiftColumns + ` FROM shift_sessions ORDER BY opened_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var out []*entity.ShiftSession
	for rows.Next() {
		var s entity.ShiftSession
		if err := rows.Scan(
			&s.ID, &s.ShiftName, &s.Status, &s.OpeningCash, &s.ExpectedCash, &s.ActualCash, &s.CashDifference,
			&s.PaidOrderCount, &s.TotalRevenue, &s.CashRevenue, &s.NonCashRevenue, &s.RefundAmount,
			&s.OpenedByUserID, &s.OpenedByUsername, &s.Notes, &s.OpenedAt, &s.ClosedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Create persiste un turno nuevo.
func (r *ShiftRepo) Create(shift *entity.ShiftSession) error {
	if shift.ID == "" {
		shift.ID = uuid.New().String()
	}
	query := `
		INSERT INTO shift_sessions (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		shift.ID, shift.ShiftName, shift.Status, shift.OpeningCash, shift.ExpectedCash,
		shift.ActualCash, shift.CashDifference, shift.PaidOrderCount, shift.TotalRevenue,
		shift.CashRevenue, shift.NonCashRevenue, shift.RefundAmount,
		shift.OpenedByUserID, shift.OpenedByUsername, shift.Notes, shift.OpenedAt, shift.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("create shift: %w", err)
	}
	return nil
}

// Update persiste el cierre y la conciliación del turno.
func (r *ShiftRepo) Update(shift *entity.ShiftSession) error {
	query := `
		UPDATE shift_sessions
		SET status = $2, expected_cash = $3, actual_cash = $4, cash_difference = $5,
			paid_order_count = $6, total_revenue = $7, cash_revenue = $8, non_cash_revenue = $9,
			refund_amount = $10, notes = $11, closed_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		shift.ID, shift.Status, shift.ExpectedCash, shift.ActualCash, shift.CashDifference,
		shift.PaidOrderCount, shift.TotalRevenue, shift.CashRevenue, shift.NonCashRevenue,
		shift.RefundAmount, shift.Notes, shift.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	return nil
}
