package orders_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/breakfast-pos/internal/application/orders"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica de copia. El runner toma una instantánea del
// estado completo y la restaura si fn falla, igual que un ROLLBACK.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu sync.Mutex

	orders      map[string]entity.Order
	items       map[string][]entity.OrderItem // por order id
	menuItems   map[string]entity.MenuItem
	recipes     map[string][]entity.RecipeLine // por menu item id
	ingredients map[string]entity.Ingredient
	movements   []entity.StockMovement
	audit       []entity.AuditLog

	// failNextOrderCreates fuerza ErrDuplicate en los próximos N Create de orden
	// (simula colisión del número de orden).
	failNextOrderCreates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:      map[string]entity.Order{},
		items:       map[string][]entity.OrderItem{},
		menuItems:   map[string]entity.MenuItem{},
		recipes:     map[string][]entity.RecipeLine{},
		ingredients: map[string]entity.Ingredient{},
	}
}

func (s *fakeStore) addMenuItem(id, name, price string, active bool) {
	s.menuItems[id] = entity.MenuItem{ID: id, Name: name, Price: decimal.RequireFromString(price), IsActive: active}
}

func (s *fakeStore) addIngredient(id, name, stock, reorder string) {
	s.ingredients[id] = entity.Ingredient{
		ID:           id,
		Name:         name,
		Unit:         "pcs",
		CurrentStock: decimal.RequireFromString(stock),
		ReorderLevel: decimal.RequireFromString(reorder),
	}
}

func (s *fakeStore) addRecipeLine(menuItemID, ingredientID, qty string) {
	s.recipes[menuItemID] = append(s.recipes[menuItemID], entity.RecipeLine{
		ID:           uuid.New().String(),
		MenuItemID:   menuItemID,
		IngredientID: ingredientID,
		Quantity:     decimal.RequireFromString(qty),
	})
}

func (s *fakeStore) stockOf(id string) decimal.Decimal {
	return s.ingredients[id].CurrentStock
}

func (s *fakeStore) movementsByReference(reference string) []entity.StockMovement {
	var out []entity.StockMovement
	for _, m := range s.movements {
		if m.Reference == reference {
			out = append(out, m)
		}
	}
	return out
}

type storeSnapshot struct {
	orders      map[string]entity.Order
	items       map[string][]entity.OrderItem
	ingredients map[string]entity.Ingredient
	movements   int
	audit       int
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		orders:      make(map[string]entity.Order, len(s.orders)),
		items:       make(map[string][]entity.OrderItem, len(s.items)),
		ingredients: make(map[string]entity.Ingredient, len(s.ingredients)),
		movements:   len(s.movements),
		audit:       len(s.audit),
	}
	for id, o := range s.orders {
		snap.orders[id] = o
	}
	for id, rows := range s.items {
		snap.items[id] = append([]entity.OrderItem{}, rows...)
	}
	for id, ing := range s.ingredients {
		snap.ingredients[id] = ing
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.orders = snap.orders
	s.items = snap.items
	s.ingredients = snap.ingredients
	s.movements = s.movements[:snap.movements]
	s.audit = s.audit[:snap.audit]
}

// ── Repos sobre el store ──────────────────────────────────────────────────────

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	if r.store.failNextOrderCreates > 0 {
		r.store.failNextOrderCreates--
		return fmt.Errorf("orden %s: %w", o.OrderNumber, domain.ErrDuplicate)
	}
	for _, existing := range r.store.orders {
		if existing.OrderNumber == o.OrderNumber {
			return fmt.Errorf("orden %s: %w", o.OrderNumber, domain.ErrDuplicate)
		}
	}
	r.store.orders[o.ID] = *o
	r.store.items[o.ID] = append([]entity.OrderItem{}, o.Items...)
	return nil
}

func (r *fakeOrderRepo) get(id string) (*entity.Order, error) {
	row, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	copied := row
	copied.Items = append([]entity.OrderItem{}, r.store.items[id]...)
	return &copied, nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error)      { return r.get(id) }
func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) { return r.get(id) }

func (r *fakeOrderRepo) List(status string, limit int) ([]*entity.Order, error) {
	var out []*entity.Order
	for id := range r.store.orders {
		o, _ := r.get(id)
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListRecentByStatuses(statuses []string, since time.Time, limit int) ([]*entity.Order, error) {
	var out []*entity.Order
	for id := range r.store.orders {
		o, _ := r.get(id)
		for _, status := range statuses {
			if o.Status == status && !o.UpdatedAt.Before(since) {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(o *entity.Order) error {
	if _, ok := r.store.orders[o.ID]; !ok {
		return fmt.Errorf("orden %s: %w", o.ID, domain.ErrNotFound)
	}
	copied := *o
	copied.Items = nil
	r.store.orders[o.ID] = copied
	return nil
}

func (r *fakeOrderRepo) ReplaceItems(orderID string, items []entity.OrderItem) error {
	r.store.items[orderID] = append([]entity.OrderItem{}, items...)
	return nil
}

func (r *fakeOrderRepo) ListPaidBetween(from, to time.Time) ([]*entity.Order, error) {
	var out []*entity.Order
	for id := range r.store.orders {
		o, _ := r.get(id)
		if o.PaidAt != nil && !o.PaidAt.Before(from) && o.PaidAt.Before(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListRefundedBetween(from, to time.Time) ([]*entity.Order, error) {
	var out []*entity.Order
	for id := range r.store.orders {
		o, _ := r.get(id)
		if o.PaymentStatus == entity.PaymentStatusRefunded && !o.UpdatedAt.Before(from) && o.UpdatedAt.Before(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeMenuRepo struct{ store *fakeStore }

func (r *fakeMenuRepo) GetByID(id string) (*entity.MenuItem, error) {
	row, ok := r.store.menuItems[id]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (r *fakeMenuRepo) GetByName(name string) (*entity.MenuItem, error) {
	for _, row := range r.store.menuItems {
		if row.Name == name {
			copied := row
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMenuRepo) List(onlyActive bool) ([]*entity.MenuItem, error) {
	var out []*entity.MenuItem
	for _, row := range r.store.menuItems {
		if !onlyActive || row.IsActive {
			copied := row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMenuRepo) Create(item *entity.MenuItem) error {
	r.store.menuItems[item.ID] = *item
	return nil
}

func (r *fakeMenuRepo) Update(item *entity.MenuItem) error {
	r.store.menuItems[item.ID] = *item
	return nil
}

type fakeRecipeRepo struct{ store *fakeStore }

func (r *fakeRecipeRepo) ListByMenuItem(menuItemID string) ([]*entity.RecipeLine, error) {
	rows := r.store.recipes[menuItemID]
	out := make([]*entity.RecipeLine, 0, len(rows))
	for i := range rows {
		copied := rows[i]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRecipeRepo) Replace(menuItemID string, lines []*entity.RecipeLine) error {
	replaced := make([]entity.RecipeLine, 0, len(lines))
	for _, line := range lines {
		replaced = append(replaced, *line)
	}
	r.store.recipes[menuItemID] = replaced
	return nil
}

type fakeIngredientRepo struct{ store *fakeStore }

func (r *fakeIngredientRepo) get(id string) (*entity.Ingredient, error) {
	row, ok := r.store.ingredients[id]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (r *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error)      { return r.get(id) }
func (r *fakeIngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) { return r.get(id) }

func (r *fakeIngredientRepo) GetByName(name string) (*entity.Ingredient, error) {
	for _, row := range r.store.ingredients {
		if row.Name == name {
			copied := row
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeIngredientRepo) List() ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, row := range r.store.ingredients {
		copied := row
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeIngredientRepo) ListLowStock() ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, row := range r.store.ingredients {
		if row.CurrentStock.LessThanOrEqual(row.ReorderLevel) {
			copied := row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeIngredientRepo) Create(ingredient *entity.Ingredient) error {
	r.store.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (r *fakeIngredientRepo) Update(ingredient *entity.Ingredient) error {
	r.store.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (r *fakeIngredientRepo) UpdateStock(ingredient *entity.Ingredient) error {
	r.store.ingredients[ingredient.ID] = *ingredient
	return nil
}

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.store.movements = append(r.store.movements, *movement)
	return nil
}

func (r *fakeMovementRepo) ListByIngredient(ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.store.movements {
		if r.store.movements[i].IngredientID == ingredientID {
			copied := r.store.movements[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) CountByReference(reference string) (int, error) {
	count := 0
	for i := range r.store.movements {
		if r.store.movements[i].Reference == reference {
			count++
		}
	}
	return count, nil
}

type fakeAuditRepo struct{ store *fakeStore }

func (r *fakeAuditRepo) Create(log *entity.AuditLog) error {
	r.store.audit = append(r.store.audit, *log)
	return nil
}

func (r *fakeAuditRepo) List(limit int) ([]*entity.AuditLog, error) {
	out := make([]*entity.AuditLog, 0, len(r.store.audit))
	for i := range r.store.audit {
		copied := r.store.audit[i]
		out = append(out, &copied)
	}
	return out, nil
}

// fakeTxRunner serializa las transacciones con un mutex (como los bloqueos de
// fila de la BD) y restaura la instantánea ante error.
type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repos orders.TxRepos) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	err := fn(orders.TxRepos{
		Orders:      &fakeOrderRepo{store: r.store},
		MenuItems:   &fakeMenuRepo{store: r.store},
		Recipes:     &fakeRecipeRepo{store: r.store},
		Ingredients: &fakeIngredientRepo{store: r.store},
		Movements:   &fakeMovementRepo{store: r.store},
		Audit:       &fakeAuditRepo{store: r.store},
	})
	if err != nil {
		r.store.restore(snap)
		return fmt.Errorf("transacción de orden: %w", err)
	}
	return nil
}

// fakePublisher acumula los eventos publicados post-commit.
type fakePublisher struct {
	mu     sync.Mutex
	events []orders.Event
}

func (p *fakePublisher) Publish(event orders.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) byName(name string) []orders.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []orders.Event
	for _, e := range p.events {
		if e.Event == name {
			out = append(out, e)
		}
	}
	return out
}
