package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/breakfast-pos/internal/application/analytics"
	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/application/auth"
	"github.com/tu-usuario/breakfast-pos/internal/application/inventory"
	"github.com/tu-usuario/breakfast-pos/internal/application/menu"
	"github.com/tu-usuario/breakfast-pos/internal/application/orders"
	"github.com/tu-usuario/breakfast-pos/internal/application/shift"
	infraamqp "github.com/tu-usuario/breakfast-pos/internal/infrastructure/amqp"
	"github.com/tu-usuario/breakfast-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/breakfast-pos/internal/infrastructure/postgres"
	infraredis "github.com/tu-usuario/breakfast-pos/internal/infrastructure/redis"
	httpRouter "github.com/tu-usuario/breakfast-pos/internal/interfaces/http"
	"github.com/tu-usuario/breakfast-pos/internal/interfaces/ws"
	"github.com/tu-usuario/breakfast-pos/pkg/config"
	"github.com/tu-usuario/breakfast-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas fuera de transacción)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	menuItemRepo := postgres.NewMenuItemRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// Broadcast: hub WS siempre; AMQP solo si hay broker configurado
	hub := ws.NewHub(log)
	publisher := orders.MultiPublisher{hub}
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := infraamqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			log.Warn().Err(err).Msg("AMQP no disponible, solo broadcast WS")
		} else {
			defer amqpPublisher.Close()
			publisher = append(publisher, amqpPublisher)
		}
	}

	ledger := inventory.NewLedger()
	orderUC := orders.NewUseCase(postgres.NewOrderTxRunner(pool), ledger, orderRepo, publisher)
	inventoryUC := inventory.NewUseCase(postgres.NewInventoryTxRunner(pool), ledger, ingredientRepo, movementRepo)

	recipeCache := cache.NewRecipeCache(recipeRepo, 30*time.Second)
	menuUC := menu.NewUseCase(menuItemRepo, recipeRepo, ingredientRepo, recipeCache)

	limiter, err := infraredis.NewLoginLimiter(cfg.Redis.URL, cfg.Redis.LoginWindowSeconds, cfg.Redis.LoginMaxAttempts, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar rate limit de login")
	}
	defer limiter.Close()
	authUC := auth.NewUseCase(userRepo, auditRepo, limiter, cfg.JWT)

	auditUC := audit.NewListUseCase(auditRepo)
	analyticsUC := analytics.NewUseCase(analyticsRepo, ingredientRepo)
	shiftUC := shift.NewUseCase(shiftRepo, orderRepo, auditRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderUC:     orderUC,
		InventoryUC: inventoryUC,
		MenuUC:      menuUC,
		AuthUC:      authUC,
		AuditUC:     auditUC,
		AnalyticsUC: analyticsUC,
		ShiftUC:     shiftUC,
		Hub:         hub,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
