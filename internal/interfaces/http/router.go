package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/auth"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/pipeline"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	OpportunityUC  *pipeline.UseCase
	ClientUC       *usecase.ClientUseCase
	ActivityUC     *usecase.ActivityUseCase
	TicketUC       *usecase.TicketUseCase
	QuotationUC    *usecase.QuotationUseCase
	ProductUC      *usecase.ProductUseCase
	ExpenseUC      *usecase.ExpenseUseCase
	EmployeeUC     *usecase.EmployeeUseCase
	AnalyticsUC    *usecase.AnalyticsUseCase
	NotificationUC *usecase.NotificationUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Organizations (público: el registro de una organización precede al primer usuario)
	organizations := api.Group("/organizations")
	organizationHandler := NewOrganizationHandler(deps.OrganizationUC)
	organizations.Post("/", organizationHandler.Create)
	organizations.Get("/:id", organizationHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Deals / oportunidades (protegido)
	deals := protected.Group("/deals")
	opportunityHandler := NewOpportunityHandler(deps.OpportunityUC)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	deals.Post("/", opportunityHandler.Create)
	deals.Get("/", opportunityHandler.List)
	deals.Get("/:id", opportunityHandler.GetByID)
	deals.Put("/:id", opportunityHandler.Update)
	deals.Patch("/:id/stage", opportunityHandler.ChangeStage)
	deals.Get("/:id/breakdown", opportunityHandler.Breakdown)
	deals.Get("/:id/activities", activityHandler.ListByOpportunity)
	deals.Delete("/:id", opportunityHandler.Delete)

	// Activities (protegido, append-only)
	activities := protected.Group("/activities")
	activities.Post("/", activityHandler.Create)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Tickets (protegido)
	tickets := protected.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.TicketUC)
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/", ticketHandler.List)
	tickets.Get("/:id", ticketHandler.GetByID)
	tickets.Put("/:id", ticketHandler.Update)
	tickets.Delete("/:id", ticketHandler.Delete)

	// Quotations (protegido)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Patch("/:id/status", quotationHandler.UpdateStatus)
	quotations.Get("/:id/pdf", quotationHandler.PDF)

	// Products e inventario (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/movements", productHandler.RegisterMovement)
	products.Get("/:id/movements", productHandler.ListMovements)
	products.Delete("/:id", productHandler.Delete)

	// Expenses (protegido)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Employees (protegido, solo admin)
	employees := protected.Group("/employees", RequireRole(entity.RoleAdmin))
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.AnalyticsUC)
	reports.Get("/pipeline", reportHandler.PipelineSummary)
	reports.Get("/monthly-sales", reportHandler.MonthlySales)
	reports.Get("/top-clients", reportHandler.TopClients)

	// Notifications (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
}
