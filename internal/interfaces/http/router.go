package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Reparaciones-api/internal/application/auth"
	"github.com/jhoicas/Reparaciones-api/internal/application/billing"
	"github.com/jhoicas/Reparaciones-api/internal/application/directory"
	"github.com/jhoicas/Reparaciones-api/internal/application/estimate"
	"github.com/jhoicas/Reparaciones-api/internal/application/inventory"
	"github.com/jhoicas/Reparaciones-api/internal/application/order"
	"github.com/jhoicas/Reparaciones-api/internal/application/procurement"
	"github.com/jhoicas/Reparaciones-api/internal/application/report"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	OrderUC       *order.LifecycleUseCase
	EstimateUC    *estimate.EstimateUseCase
	LedgerUC      *inventory.LedgerUseCase
	ProcurementUC *procurement.ReconcilerUseCase
	SettlementUC  *billing.SettlementUseCase
	DocumentUC    *billing.DocumentUseCase
	EmployeeUC    *directory.EmployeeUseCase
	ClientUC      *directory.ClientUseCase
	ActionUC      *directory.ServiceActionUseCase
	ReportUC      *report.ReportUseCase
	Metrics       nethttp.Handler // nil = sin /metrics
	JWTSecret     string
}

var staff = []entity.Role{entity.RoleOffice, entity.RoleTechnician, entity.RoleWarehouse, entity.RoleManager}

// Router registra las rutas de la API. Los permisos finos los revisan los casos de uso con el actor del token;
// RequireRole solo cubre las lecturas que no reciben actor.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/client-login", authHandler.ClientLogin)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	orderHandler := NewOrderHandler(deps.OrderUC)
	estimateHandler := NewEstimateHandler(deps.EstimateUC)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	procurementHandler := NewProcurementHandler(deps.ProcurementUC)
	billingHandler := NewBillingHandler(deps.SettlementUC, deps.DocumentUC)
	directoryHandler := NewDirectoryHandler(deps.EmployeeUC, deps.ClientUC, deps.ActionUC)
	reportHandler := NewReportHandler(deps.ReportUC)

	// Órdenes: recepción, gerente, técnico y cliente
	orders := protected.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/assign", orderHandler.Assign)
	orders.Post("/:id/diagnosis", orderHandler.StartDiagnosis)
	orders.Post("/:id/unrepairable", orderHandler.Unrepairable)
	orders.Post("/:id/finish", orderHandler.Finish)
	orders.Post("/:id/resume", orderHandler.Resume)
	orders.Post("/:id/backorders", orderHandler.Backorder)
	orders.Post("/:id/consume", orderHandler.Consume)
	orders.Patch("/:id/notes", orderHandler.UpdateNotes)
	orders.Post("/:id/work/start", orderHandler.StartWork)
	orders.Post("/:id/work/stop", orderHandler.StopWork)
	orders.Get("/:id/work", orderHandler.WorkLogs)
	orders.Post("/:id/estimates", estimateHandler.Create)
	orders.Get("/:id/estimates", estimateHandler.List)
	orders.Get("/:id/estimate", estimateHandler.Active)
	orders.Post("/:id/estimate/decision", estimateHandler.Decide)
	orders.Get("/:id/shortage", inventoryHandler.Shortage)
	orders.Get("/:id/part-orders", RequireRole(staff...), procurementHandler.ByRepairOrder)
	orders.Post("/:id/settle", billingHandler.Settle)
	orders.Get("/:id/invoice", billingHandler.Invoice)
	orders.Get("/:id/document", billingHandler.Document)

	protected.Get("/me/orders", orderHandler.MyOrders)

	// Bodega
	parts := protected.Group("/parts")
	parts.Post("/", inventoryHandler.Create)
	parts.Get("/", RequireRole(staff...), inventoryHandler.List)
	parts.Get("/:id", RequireRole(staff...), inventoryHandler.GetByID)
	parts.Patch("/:id", inventoryHandler.Update)
	parts.Post("/:id/withdraw", inventoryHandler.Withdraw)
	parts.Post("/:id/receive", inventoryHandler.Receive)
	protected.Post("/deliveries", inventoryHandler.ReceiveDelivery)
	protected.Post("/discrepancies", inventoryHandler.ReportDiscrepancy)
	protected.Get("/discrepancies", inventoryHandler.ListDiscrepancies)

	partOrders := protected.Group("/part-orders")
	partOrders.Post("/", procurementHandler.Create)
	partOrders.Get("/", RequireRole(staff...), procurementHandler.List)
	partOrders.Get("/:id", RequireRole(staff...), procurementHandler.GetByID)
	partOrders.Post("/:id/in-delivery", procurementHandler.InDelivery)
	partOrders.Post("/:id/cancel", procurementHandler.Cancel)

	// Directorio
	employees := protected.Group("/employees")
	employees.Post("/", directoryHandler.CreateEmployee)
	employees.Get("/", directoryHandler.ListEmployees)
	employees.Get("/:id", directoryHandler.GetEmployee)
	employees.Patch("/:id", directoryHandler.UpdateEmployee)
	employees.Get("/:id/orders", orderHandler.ByTechnician)

	clients := protected.Group("/clients")
	clients.Post("/", directoryHandler.CreateClient)
	clients.Get("/", directoryHandler.ListClients)
	clients.Get("/:id", directoryHandler.GetClient)
	clients.Post("/:id/pin", directoryHandler.ResetPIN)
	clients.Get("/:id/orders", orderHandler.ByClient)

	actions := protected.Group("/service-actions")
	actions.Post("/", directoryHandler.CreateAction)
	actions.Get("/", RequireRole(staff...), directoryHandler.ListActions)
	actions.Put("/:id", directoryHandler.UpdateAction)

	// Gerente
	reports := protected.Group("/reports")
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/orders.xlsx", reportHandler.ExportOrders)
}
