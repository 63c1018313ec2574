// Comando seed: carga datos iniciales (usuarios, ingredientes, menú y recetas)
// para entornos de desarrollo. Es idempotente: si ya hay usuarios o ítems de
// menú, omite esa sección.
package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/application/auth"
	"github.com/tu-usuario/breakfast-pos/internal/application/inventory"
	"github.com/tu-usuario/breakfast-pos/internal/application/menu"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/infrastructure/postgres"
	infraredis "github.com/tu-usuario/breakfast-pos/internal/infrastructure/redis"
	"github.com/tu-usuario/breakfast-pos/pkg/config"
	"github.com/tu-usuario/breakfast-pos/pkg/logger"
)

type seedIngredient struct {
	name         string
	unit         string
	stock        string
	reorderLevel string
	costPerUnit  string
}

type seedMenuItem struct {
	name   string
	price  string
	recipe map[string]string // nombre de ingrediente -> cantidad por unidad
}

var seedIngredients = []seedIngredient{
	{"Egg", "pcs", "120", "20", "5"},
	{"Bread Slice", "pcs", "240", "40", "3"},
	{"Ham", "slice", "90", "20", "8"},
	{"Tea Leaves", "g", "1500", "300", "0.1"},
	{"Milk", "ml", "30000", "5000", "0.03"},
	{"Sugar", "g", "5000", "800", "0.02"},
}

var seedMenuItems = []seedMenuItem{
	{"Ham Egg Toast", "65", map[string]string{"Bread Slice": "2", "Egg": "1", "Ham": "1"}},
	{"Milk Tea", "40", map[string]string{"Tea Leaves": "5", "Milk": "220", "Sugar": "12"}},
	{"Cheese Egg Toast", "60", map[string]string{"Bread Slice": "2", "Egg": "1"}},
}

var seedUserAccounts = []struct {
	username string
	password string
	role     string
}{
	{"staff1", "staff1234", entity.RoleStaff},
	{"kitchen1", "kitchen1234", entity.RoleKitchen},
	{"manager1", "manager1234", entity.RoleManager},
	{"owner1", "owner1234", entity.RoleOwner},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.App.Env == "production" {
		log.Fatal().Msg("el seed con credenciales por defecto no se ejecuta en producción")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ingredientRepo := postgres.NewIngredientRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	menuItemRepo := postgres.NewMenuItemRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)

	// Sin Redis: el seed corre una sola vez, el contador local basta.
	limiter, err := infraredis.NewLoginLimiter("", cfg.Redis.LoginWindowSeconds, cfg.Redis.LoginMaxAttempts, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar limitador")
	}

	authUC := auth.NewUseCase(userRepo, auditRepo, limiter, cfg.JWT)
	inventoryUC := inventory.NewUseCase(postgres.NewInventoryTxRunner(pool), inventory.NewLedger(), ingredientRepo, movementRepo)
	menuUC := menu.NewUseCase(menuItemRepo, recipeRepo, ingredientRepo, nil)

	existing, err := userRepo.List()
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuarios")
	}
	if len(existing) > 0 {
		log.Info().Msg("ya existen usuarios, se omite el seed de usuarios")
	} else {
		for _, u := range seedUserAccounts {
			if _, err := authUC.CreateUser(ctx, audit.System, auth.CreateUserInput{
				Username: u.username,
				Password: u.password,
				Role:     u.role,
			}); err != nil {
				log.Fatal().Err(err).Str("username", u.username).Msg("crear usuario")
			}
			log.Info().Str("username", u.username).Str("role", u.role).Msg("usuario creado")
		}
	}

	items, err := menuItemRepo.List(false)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar menú")
	}
	if len(items) > 0 {
		log.Info().Msg("ya existe catálogo, se omite el seed de menú e inventario")
		return
	}

	ingredientIDs := make(map[string]string, len(seedIngredients))
	for _, ing := range seedIngredients {
		created, err := inventoryUC.CreateIngredient(ctx, audit.System, inventory.CreateIngredientInput{
			Name:         ing.name,
			Unit:         ing.unit,
			CurrentStock: decimal.RequireFromString(ing.stock),
			ReorderLevel: decimal.RequireFromString(ing.reorderLevel),
			CostPerUnit:  decimal.RequireFromString(ing.costPerUnit),
		})
		if err != nil {
			log.Fatal().Err(err).Str("name", ing.name).Msg("crear ingrediente")
		}
		ingredientIDs[ing.name] = created.ID
		log.Info().Str("name", ing.name).Msg("ingrediente creado")
	}

	for _, mi := range seedMenuItems {
		created, err := menuUC.CreateItem(ctx, menu.CreateItemInput{
			Name:     mi.name,
			Price:    decimal.RequireFromString(mi.price),
			IsActive: true,
		})
		if err != nil {
			log.Fatal().Err(err).Str("name", mi.name).Msg("crear ítem de menú")
		}

		lines := make([]menu.RecipeLineInput, 0, len(mi.recipe))
		for ingName, qty := range mi.recipe {
			lines = append(lines, menu.RecipeLineInput{
				IngredientID: ingredientIDs[ingName],
				Quantity:     decimal.RequireFromString(qty),
			})
		}
		if _, err := menuUC.ReplaceRecipe(ctx, created.ID, lines); err != nil {
			log.Fatal().Err(err).Str("name", mi.name).Msg("cargar receta")
		}
		log.Info().Str("name", mi.name).Int("recipe_lines", len(lines)).Msg("ítem de menú creado")
	}

	log.Info().Msg("seed completado")
}
