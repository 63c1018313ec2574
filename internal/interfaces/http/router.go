package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/breakfast-pos/internal/application/analytics"
	"github.com/tu-usuario/breakfast-pos/internal/application/audit"
	"github.com/tu-usuario/breakfast-pos/internal/application/auth"
	"github.com/tu-usuario/breakfast-pos/internal/application/inventory"
	"github.com/tu-usuario/breakfast-pos/internal/application/menu"
	"github.com/tu-usuario/breakfast-pos/internal/application/orders"
	"github.com/tu-usuario/breakfast-pos/internal/application/shift"
	"github.com/tu-usuario/breakfast-pos/internal/domain/entity"
	"github.com/tu-usuario/breakfast-pos/internal/interfaces/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC     *orders.UseCase
	InventoryUC *inventory.UseCase
	MenuUC      *menu.UseCase
	AuthUC      *auth.UseCase
	AuditUC     *audit.ListUseCase
	AnalyticsUC *analytics.UseCase
	ShiftUC     *shift.UseCase
	Hub         *ws.Hub
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"ws_clients": deps.Hub.ClientCount(),
		})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	frontOfHouse := RequireRole(entity.RoleStaff, entity.RoleManager, entity.RoleOwner)
	anyKitchen := RequireRole(entity.RoleStaff, entity.RoleKitchen, entity.RoleManager, entity.RoleOwner)
	managers := RequireRole(entity.RoleManager, entity.RoleOwner)

	// Órdenes
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", frontOfHouse, orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/pickup-board", orderHandler.PickupBoard)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Post("/:id/pay", frontOfHouse, orderHandler.Pay)
	ordersGroup.Put("/:id/items", frontOfHouse, orderHandler.AmendItems)
	ordersGroup.Post("/:id/status", anyKitchen, orderHandler.ChangeStatus)
	ordersGroup.Post("/:id/cancel", frontOfHouse, orderHandler.Cancel)

	// Inventario
	ingredients := protected.Group("/ingredients")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	ingredients.Get("/", inventoryHandler.List)
	ingredients.Get("/low-stock", inventoryHandler.ListLowStock)
	ingredients.Post("/", managers, inventoryHandler.Create)
	ingredients.Get("/:id", inventoryHandler.Get)
	ingredients.Put("/:id", managers, inventoryHandler.Update)
	ingredients.Post("/:id/movements", managers, inventoryHandler.RegisterMovement)
	ingredients.Get("/:id/movements", inventoryHandler.ListMovements)

	// Menú y recetas
	menuGroup := protected.Group("/menu")
	menuHandler := NewMenuHandler(deps.MenuUC)
	menuGroup.Get("/", menuHandler.List)
	menuGroup.Post("/", managers, menuHandler.Create)
	menuGroup.Get("/:id", menuHandler.Get)
	menuGroup.Put("/:id", managers, menuHandler.Update)
	menuGroup.Get("/:id/recipe", menuHandler.GetRecipe)
	menuGroup.Put("/:id/recipe", managers, menuHandler.ReplaceRecipe)

	// Usuarios (manager/owner)
	protected.Post("/users", managers, authHandler.CreateUser)
	protected.Get("/users", managers, authHandler.ListUsers)

	// Auditoría (manager/owner)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit", managers, auditHandler.List)

	// Panel (manager/owner)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	protected.Get("/analytics/overview", managers, analyticsHandler.Overview)

	// Turnos de caja
	shiftsGroup := protected.Group("/shifts")
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shiftsGroup.Post("/open", frontOfHouse, shiftHandler.Open)
	shiftsGroup.Post("/close", frontOfHouse, shiftHandler.Close)
	shiftsGroup.Get("/current", shiftHandler.Current)
	shiftsGroup.Get("/", managers, shiftHandler.List)

	// Broadcast de eventos de orden (token por query param)
	app.Get("/ws/orders", WSUpgrade(deps.JWTSecret), websocket.New(deps.Hub.Serve))
}
