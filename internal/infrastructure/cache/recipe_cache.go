// Package cache implementa el caché de lectura de recetas: TTL corto más
// singleflight para colapsar lecturas concurrentes del mismo ítem en una sola
// consulta a la base. Las escrituras de receta lo invalidan; las transacciones
// del coordinador NO lo usan (leen siempre dentro de su tx).
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/domain/repository"
)

// RecipeCache caché de líneas de receta por ítem del menú.
type RecipeCache struct {
	source repository.RecipeRepository
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]recipeEntry
	group   singleflight.Group
}

type recipeEntry struct {
	lines     []*entity.RecipeLine
	expiresAt time.Time
}

// NewRecipeCache construye el caché sobre el repositorio de recetas del pool.
func NewRecipeCache(source repository.RecipeRepository, ttl time.Duration) *RecipeCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RecipeCache{source: source, ttl: ttl, entries: make(map[string]recipeEntry)}
}

// ListByMenuItem devuelve las líneas de receta del ítem, sirviendo del caché si
// la entrada sigue vigente. Lecturas concurrentes del mismo ítem comparten una
// sola consulta (singleflight).
func (c *RecipeCache) ListByMenuItem(menuItemID string) ([]*entity.RecipeLine, error) {
	c.mu.RLock()
	entry, ok := c.entries[menuItemID]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.lines, nil
	}

	result, err, _ := c.group.Do(menuItemID, func() (any, error) {
		lines, err := c.source.ListByMenuItem(menuItemID)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[menuItemID] = recipeEntry{lines: lines, expiresAt: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return lines, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*entity.RecipeLine), nil
}

// Invalidate descarta la entrada de un ítem (tras reemplazar su receta).
func (c *RecipeCache) Invalidate(menuItemID string) {
	c.mu.Lock()
	delete(c.entries, menuItemID)
	c.mu.Unlock()
}
