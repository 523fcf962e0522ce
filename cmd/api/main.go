package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salonkita/salonkita-api/internal/application/service"
	"github.com/salonkita/salonkita-api/internal/config"
	"github.com/salonkita/salonkita-api/internal/infrastructure/database"
	"github.com/salonkita/salonkita-api/internal/infrastructure/repository"
	"github.com/salonkita/salonkita-api/internal/presentation/http/handler"
	"github.com/salonkita/salonkita-api/internal/presentation/http/routes"
	"github.com/salonkita/salonkita-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed demo data on a fresh database
	if err := database.SeedDemoData(db); err != nil {
		log.Printf("Warning: Failed to seed demo data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, tenantRepo, jwtManager)
	tenantService := service.NewTenantService(tenantRepo)
	customerService := service.NewCustomerService(customerRepo)
	catalogService := service.NewCatalogService(serviceRepo)
	bookingService := service.NewBookingService(customerRepo, serviceRepo, bookingRepo)
	quoteService := service.NewQuoteService(tenantRepo, serviceRepo)
	transactionService := service.NewTransactionService(tenantRepo, customerRepo, serviceRepo, bookingRepo, transactionRepo, sequenceRepo)
	invoiceService := service.NewInvoiceService(tenantRepo, transactionRepo, invoiceRepo, sequenceRepo)
	reportService := service.NewReportService(invoiceRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Tenant:      handler.NewTenantHandler(tenantService),
		Customer:    handler.NewCustomerHandler(customerService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Booking:     handler.NewBookingHandler(bookingService),
		Quote:       handler.NewQuoteHandler(quoteService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Report:      handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Background sweep flips sent invoices to overdue once their due
	// date passes, across all tenants
	go runOverdueSweep(invoiceService, cfg.Invoice.SweepInterval)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func runOverdueSweep(invoiceService *service.InvoiceService, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		flipped, err := invoiceService.SweepOverdueAll(ctx)
		cancel()
		if err != nil {
			log.Printf("Overdue sweep failed: %v", err)
			continue
		}
		if flipped > 0 {
			log.Printf("Overdue sweep flipped %d invoice(s)", flipped)
		}
	}
}
