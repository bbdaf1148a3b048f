package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salon-pos/internal/application/analytics"
	"github.com/jhoicas/salon-pos/internal/application/auth"
	"github.com/jhoicas/salon-pos/internal/application/catalog"
	"github.com/jhoicas/salon-pos/internal/application/sales"
	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Catalog     *catalog.Manager
	Sales       *sales.Manager
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *analytics.ReportUseCase
	Notifier    Notifier
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	employeeHandler := NewEmployeeHandler(deps.Catalog)
	serviceHandler := NewServiceHandler(deps.Catalog)
	productHandler := NewProductHandler(deps.Catalog)
	customerHandler := NewCustomerHandler(deps.Catalog, deps.Notifier)
	saleHandler := NewSaleHandler(deps.Sales, deps.DashboardUC, deps.ReportUC)
	notificationHandler := NewNotificationHandler(deps.Notifier)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC, deps.Catalog, deps.Sales)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleEmployee)
	admin := RequireRole(entity.RoleAdmin)
	loaded := RequireLoaded(deps.Catalog, deps.Sales)

	// Recarga: disponible aunque la carga inicial haya fallado.
	protected.Post("/refresh", admin, dashboardHandler.Refresh)

	// Avisos al administrador
	notifications := protected.Group("/notifications")
	notifications.Post("/error", anyRole, notificationHandler.ReportError)
	notifications.Post("/complaint", anyRole, notificationHandler.ReportComplaint)

	employees := protected.Group("/employees", loaded)
	employees.Get("/", anyRole, employeeHandler.List)
	employees.Post("/", admin, employeeHandler.Create)
	employees.Put("/:id", admin, employeeHandler.Update)
	employees.Delete("/:id", admin, employeeHandler.Delete)

	services := protected.Group("/services", loaded)
	services.Get("/", anyRole, serviceHandler.List)
	services.Post("/", admin, serviceHandler.Create)
	services.Put("/:id", admin, serviceHandler.Update)
	services.Delete("/:id", admin, serviceHandler.Delete)

	products := protected.Group("/products", loaded, admin)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	customers := protected.Group("/customers", loaded, admin)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Post("/:id/message", customerHandler.Message)

	salesGroup := protected.Group("/sales", loaded)
	salesGroup.Post("/", anyRole, saleHandler.Record)
	salesGroup.Get("/", anyRole, saleHandler.List)
	salesGroup.Get("/export.xlsx", admin, saleHandler.ExportXLSX)
	salesGroup.Put("/:id", admin, saleHandler.Update)
	salesGroup.Delete("/:id", admin, saleHandler.Delete)

	dashboard := protected.Group("/dashboard", loaded, admin)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/report.pdf", dashboardHandler.ReportPDF)
}
