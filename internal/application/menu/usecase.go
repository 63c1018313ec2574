// Package menu maneja el catálogo (ítems y recetas) y el Recipe Resolver.
package menu

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/breakfast-pos/internal/domain"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// RecipeInvalidator permite invalidar el caché de lectura de recetas al reemplazarlas.
type RecipeInvalidator interface {
	Invalidate(menuItemID string)
}

// UseCase CRUD del catálogo de menú y recetas.
type UseCase struct {
	items       repository.MenuItemRepository
	recipes     repository.RecipeRepository
	ingredients repository.IngredientRepository
	invalidator RecipeInvalidator
}

// NewUseCase construye el caso de uso. invalidator puede ser nil si no hay caché.
func NewUseCase(
	items repository.MenuItemRepository,
	recipes repository.RecipeRepository,
	ingredients repository.IngredientRepository,
	invalidator RecipeInvalidator,
) *UseCase {
	return &UseCase{items: items, recipes: recipes, ingredients: ingredients, invalidator: invalidator}
}

// CreateItemInput entrada para crear un ítem del menú.
type CreateItemInput struct {
	Name     string
	Price    decimal.Decimal
	IsActive bool
}

// CreateItem crea un ítem del menú con nombre único.
func (uc *UseCase) CreateItem(ctx context.Context, in CreateItemInput) (*entity.MenuItem, error) {
	if in.Name == "" || !in.Price.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.items.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.MenuItem{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		IsActive:  in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.items.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput entrada para actualizar un ítem; campos nil no se tocan.
type UpdateItemInput struct {
	Name     *string
	Price    *decimal.Decimal
	IsActive *bool
}

// UpdateItem actualiza nombre, precio o disponibilidad de un ítem.
func (uc *UseCase) UpdateItem(ctx context.Context, id string, in UpdateItemInput) (*entity.MenuItem, error) {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	item.UpdatedAt = time.Now()
	if err := uc.items.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems lista el menú; onlyActive filtra los ítems deshabilitados.
func (uc *UseCase) ListItems(ctx context.Context, onlyActive bool) ([]*entity.MenuItem, error) {
	return uc.items.List(onlyActive)
}

// GetItem devuelve un ítem por id.
func (uc *UseCase) GetItem(ctx context.Context, id string) (*entity.MenuItem, error) {
	item, err := uc.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// RecipeLineInput una línea de receta a reemplazar.
type RecipeLineInput struct {
	IngredientID string
	Quantity     decimal.Decimal
}

// GetRecipe devuelve las líneas de receta de un ítem (vacío si no consume inventario).
func (uc *UseCase) GetRecipe(ctx context.Context, menuItemID string) ([]*entity.RecipeLine, error) {
	item, err := uc.items.GetByID(menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.recipes.ListByMenuItem(menuItemID)
}

// ReplaceRecipe reemplaza la receta completa de un ítem, validando que cada
// ingrediente exista y las cantidades sean positivas. Invalida el caché de lectura.
func (uc *UseCase) ReplaceRecipe(ctx context.Context, menuItemID string, lines []RecipeLineInput) ([]*entity.RecipeLine, error) {
	item, err := uc.items.GetByID(menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	newLines := make([]*entity.RecipeLine, 0, len(lines))
	for _, line := range lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		ingredient, err := uc.ingredients.GetByID(line.IngredientID)
		if err != nil {
			return nil, err
		}
		if ingredient == nil {
			return nil, domain.ErrNotFound
		}
		newLines = append(newLines, &entity.RecipeLine{
			ID:           uuid.New().String(),
			MenuItemID:   menuItemID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
		})
	}

	if err := uc.recipes.Replace(menuItemID, newLines); err != nil {
		return nil, err
	}
	if uc.invalidator != nil {
		uc.invalidator.Invalidate(menuItemID)
	}
	return newLines, nil
}
