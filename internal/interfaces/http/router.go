package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sedori-pro/internal/application/analytics"
	"github.com/tu-usuario/sedori-pro/internal/application/auth"
	"github.com/tu-usuario/sedori-pro/internal/application/batch"
	"github.com/tu-usuario/sedori-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ItemUC      *usecase.ItemUseCase
	BatchUC     *batch.UseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/sellable", itemHandler.Sellable)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Post("/:id/receive", itemHandler.MarkReceived)
	items.Post("/:id/sale", itemHandler.RegisterSale)
	items.Delete("/:id", itemHandler.Delete)

	// Sale batches (protegido)
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id/confirmable", batchHandler.Confirmable)
	batches.Post("/:id/confirm", batchHandler.Confirm)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/report", dashboardHandler.Report)
}
