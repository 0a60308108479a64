package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/analytics"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/usecase"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	LedgerUC       *inventory.LedgerUseCase
	AnalyticsUC    *analytics.AnalyticsUseCase
	QualityUC      *usecase.QualityCheckUseCase
	AssistantUC    *usecase.AssistantUseCase
	NotificationUC *usecase.NotificationUseCase
	UserUC         *usecase.UserUseCase
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration
	RateLimiter    *RateLimiter    // nil = sin límite
	Metrics        nethttp.Handler // nil = /metrics deshabilitado
	JWTSecret      string
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}

	// Todas las rutas requieren Bearer Token; las mutaciones además admin|manager.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	elevated := RequireRole(entity.RoleAdmin, entity.RoleManager)
	idem := Idempotency(deps.Idempotency, deps.IdempotencyTTL, log)

	productHandler := NewProductHandler(deps.ProductUC, log)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, log)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, log)
	aiHandler := NewAIHandler(deps.QualityUC, deps.AssistantUC, log)
	notificationHandler := NewNotificationHandler(deps.NotificationUC, log)
	userHandler := NewUserHandler(deps.UserUC, log)

	// Products
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", elevated, productHandler.Create)
	products.Get("/filters", productHandler.FilterOptions)
	products.Get("/alerts", productHandler.Alerts)
	products.Post("/quality-check", aiHandler.QualityCheck)

	// Libro de movimientos por SKU
	bySKU := products.Group("/sku/:sku")
	bySKU.Get("/", productHandler.GetBySKU)
	bySKU.Put("/", elevated, idem, inventoryHandler.Update)
	bySKU.Post("/movements", elevated, idem, inventoryHandler.RecordMovement)
	bySKU.Put("/quantity", elevated, idem, inventoryHandler.SetQuantity)
	bySKU.Get("/analytics", analyticsHandler.GetAnalytics)
	bySKU.Get("/analytics/report", analyticsHandler.GetReport)
	bySKU.Get("/movements/export", analyticsHandler.ExportMovements)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Assistant
	protected.Post("/assistant/ask", aiHandler.Ask)

	// Users
	protected.Get("/users/me", userHandler.Me)
}
