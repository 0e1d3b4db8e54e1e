package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/auth"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/pipeline"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/infrastructure/notify"
	infrapdf "github.com/sitesgtech-app/crm-gtech-sub000/internal/infrastructure/pdf"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/sitesgtech-app/crm-gtech-sub000/internal/interfaces/http"
	"github.com/sitesgtech-app/crm-gtech-sub000/pkg/config"
	"github.com/sitesgtech-app/crm-gtech-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	orgRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	oppRepo := postgres.NewOpportunityRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := notify.New(notificationRepo, userRepo, cfg.SMTP)

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	organizationUC := usecase.NewOrganizationUseCase(orgRepo)
	opportunityUC := pipeline.NewUseCase(txRunner, oppRepo, clientRepo, activityRepo, notifier, log)
	clientUC := usecase.NewClientUseCase(clientRepo)
	activityUC := usecase.NewActivityUseCase(activityRepo, oppRepo)
	ticketUC := usecase.NewTicketUseCase(ticketRepo, clientRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	quotationUC := usecase.NewQuotationUseCase(quotationRepo, oppRepo, clientRepo, orgRepo, pdfGenerator)
	productUC := usecase.NewProductUseCase(productRepo, movementRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM GTech API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganizationUC: organizationUC,
		OpportunityUC:  opportunityUC,
		ClientUC:       clientUC,
		ActivityUC:     activityUC,
		TicketUC:       ticketUC,
		QuotationUC:    quotationUC,
		ProductUC:      productUC,
		ExpenseUC:      expenseUC,
		EmployeeUC:     employeeUC,
		AnalyticsUC:    analyticsUC,
		NotificationUC: notificationUC,
		JWTSecret:      cfg.JWT.Secret,
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
