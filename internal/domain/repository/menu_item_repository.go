package repository

import "github.com/tu-usuario/breakfast-pos/internal/domain/entity"

// MenuItemRepository define el puerto de persistencia del catálogo de menú.
type MenuItemRepository interface {
	GetByID(id string) (*entity.MenuItem, error)
	GetByName(name string) (*entity.MenuItem, error)
	List(onlyActive bool) ([]*entity.MenuItem, error)
	Create(item *entity.MenuItem) error
	Update(item *entity.MenuItem) error
}

// RecipeRepository define el puerto de persistencia de recetas (líneas por ítem).
type RecipeRepository interface {
	ListByMenuItem(menuItemID string) ([]*entity.RecipeLine, error)
	// Replace reemplaza la receta completa de un ítem.
	Replace(menuItemID string, lines []*entity.RecipeLine) error
}
