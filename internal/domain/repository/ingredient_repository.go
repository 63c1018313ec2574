package repository

import "github.com/tu-usuario/breakfast-pos/internal/domain/entity"

// IngredientRepository define el puerto de persistencia de ingredientes.
// Usado dentro de transacciones para garantizar consistencia del stock.
type IngredientRepository interface {
	GetByID(id string) (*entity.Ingredient, error)
	GetByName(name string) (*entity.Ingredient, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Ingredient, error)
	List() ([]*entity.Ingredient, error)
	ListLowStock() ([]*entity.Ingredient, error)
	Create(ingredient *entity.Ingredient) error
	Update(ingredient *entity.Ingredient) error
	// UpdateStock escribe el stock materializado (y costo si cambió); solo lo invoca el ledger.
	UpdateStock(ingredient *entity.Ingredient) error
}
