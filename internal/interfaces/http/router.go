package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medinventory-api/internal/application/activity"
	appanalytics "github.com/jhoicas/medinventory-api/internal/application/analytics"
	"github.com/jhoicas/medinventory-api/internal/application/auth"
	"github.com/jhoicas/medinventory-api/internal/application/billing"
	"github.com/jhoicas/medinventory-api/internal/application/clients"
	"github.com/jhoicas/medinventory-api/internal/application/inventory"
	"github.com/jhoicas/medinventory-api/internal/application/reports"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *inventory.ProductUseCase
	StockUC         *inventory.StockUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	AssignmentUC    *inventory.AssignmentUseCase
	ClientUC        *clients.ClientUseCase
	PharmacyUC      *billing.PharmacyUseCase
	InvoiceUC       *billing.InvoiceUseCase
	PaymentUC       *billing.PaymentUseCase
	InvoicePDF      *billing.PDFUseCase
	ReportUC        *reports.ReportUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	ActivityUC      *activity.ActivityUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/session", authHandler.Session)

	users := protected.Group("/users", adminOnly)
	users.Get("/", authHandler.ListUsers)
	users.Post("/", authHandler.CreateUser)

	// Products + stock. Las rutas fijas van antes de /:id.
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.ReplenishmentUC)
	products := protected.Group("/products")
	products.Get("/low-stock", inventoryHandler.LowStock)
	products.Get("/expiring", inventoryHandler.Expiring)
	products.Get("/reorder-suggestions", inventoryHandler.ReorderSuggestions)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/stock", inventoryHandler.AddStock)
	products.Get("/:id/movements", inventoryHandler.Movements)

	clientHandler := NewClientHandler(deps.ClientUC)
	clientsGroup := protected.Group("/clients")
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Get("/:id", clientHandler.GetByID)
	clientsGroup.Put("/:id", clientHandler.Update)
	clientsGroup.Delete("/:id", clientHandler.Delete)

	pharmacyHandler := NewPharmacyHandler(deps.PharmacyUC)
	pharmacies := protected.Group("/pharmacies")
	pharmacies.Post("/", pharmacyHandler.Create)
	pharmacies.Get("/", pharmacyHandler.List)
	pharmacies.Get("/:id", pharmacyHandler.GetByID)
	pharmacies.Put("/:id", pharmacyHandler.Update)
	pharmacies.Delete("/:id", pharmacyHandler.Delete)

	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	assignments := protected.Group("/assignments")
	assignments.Post("/", assignmentHandler.Create)
	assignments.Get("/", assignmentHandler.List)
	assignments.Get("/:id", assignmentHandler.GetByID)
	assignments.Delete("/:id", assignmentHandler.Delete)

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PaymentUC, deps.InvoicePDF)
	invoices := protected.Group("/invoices")
	invoices.Post("/mark-overdue", adminOnly, invoiceHandler.MarkOverdue)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Post("/:id/items", invoiceHandler.AddItem)
	invoices.Delete("/:id/items/:itemId", invoiceHandler.RemoveItem)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/payments", invoiceHandler.AddPayment)
	invoices.Get("/:id/payments", invoiceHandler.ListPayments)

	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments := protected.Group("/payments")
	payments.Get("/", paymentHandler.List)
	payments.Delete("/:id", paymentHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/:type/export", reportHandler.Export)
	reportsGroup.Get("/:type", reportHandler.Get)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", activityHandler.List)
}
