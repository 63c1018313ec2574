package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

var _ repository.MenuItemRepository = (*MenuItemRepo)(nil)

// MenuItemRepo implementación de MenuItemRepository sobre PostgreSQL (usable con pool o tx).
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

func scanMenuItem(row pgx.Row) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := row.Scan(&m.ID, &m.Name, &m.Price, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// GetByID obtiene un ítem por ID. Retorna nil sin error si no existe.
func (r *MenuItemRepo) GetByID(id string) (*entity.MenuItem, error) {
	query := `SELECT id, name, price, is_active, created_at, updated_at FROM menu_items WHERE id = $1`
	m, err := scanMenuItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return m, nil
}

// GetByName obtiene un ítem por nombre exacto.
func (r *MenuItemRepo) GetByName(name string) (*entity.MenuItem, error) {
	query := `SELECT id, name, price, is_active, created_at, updated_at FROM menu_items WHERE name = $1`
	m, err := scanMenuItem(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		return nil, fmt.Errorf("get menu item by name: %w", err)
	}
	return m, nil
}

// List lista el menú ordenado por nombre; onlyActive filtra deshabilitados.
func (r *MenuItemRepo) List(onlyActive bool) ([]*entity.MenuItem, error) {
	query := `
		SELECT id, name, price, is_active, created_at, updated_at
		FROM menu_items
		WHERE ($1 = false OR is_active = true)
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var out []*entity.MenuItem
	for rows.Next() {
		var m entity.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Create persiste un ítem del menú.
func (r *MenuItemRepo) Create(item *entity.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO menu_items (id, name, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Price, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create menu item: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

// Update actualiza un ítem del menú.
func (r *MenuItemRepo) Update(item *entity.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, price = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Price, item.IsActive, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update menu item: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}
