package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salonkita/salonkita-api/internal/config"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	domainRepo "github.com/salonkita/salonkita-api/internal/domain/repository"
	"github.com/salonkita/salonkita-api/internal/presentation/http/handler"
	"github.com/salonkita/salonkita-api/internal/presentation/http/middleware"
	"github.com/salonkita/salonkita-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Tenant      *handler.TenantHandler
	Customer    *handler.CustomerHandler
	Catalog     *handler.CatalogHandler
	Booking     *handler.BookingHandler
	Quote       *handler.QuoteHandler
	Transaction *handler.TransactionHandler
	Invoice     *handler.InvoiceHandler
	Report      *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware())

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/auth/me", h.Auth.Me)

	registerTenantRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerBookingRoutes(protected, h)
	registerQuoteRoutes(protected, h)
	registerTransactionRoutes(protected, h, deps)
	registerInvoiceRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.GET("/current", h.Tenant.GetCurrent)
		// Pricing rules and invoicing settings are owner-only
		tenants.PUT("/current/settings", middleware.RequireRole(entity.RoleOwner), h.Tenant.UpdateSettings)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/services")
	{
		services.GET("", h.Catalog.List)
		services.POST("", h.Catalog.Create)
		services.GET("/:id", h.Catalog.Get)
		services.PUT("/:id", h.Catalog.Update)
		services.DELETE("/:id", h.Catalog.Delete)
	}
}

func registerBookingRoutes(protected *gin.RouterGroup, h *Handlers) {
	bookings := protected.Group("/bookings")
	{
		bookings.GET("", h.Booking.List)
		bookings.POST("", h.Booking.Create)
		bookings.GET("/:id", h.Booking.Get)
		bookings.POST("/:id/cancel", h.Booking.Cancel)
	}
}

func registerQuoteRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/quotes", h.Quote.Compute)
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		// Transaction creation requires an Idempotency-Key so retries
		// never settle the same sale twice
		transactions.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Transaction.Create)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.POST("/:id/invoice", h.Invoice.Compose)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/send", h.Invoice.MarkSent)
		invoices.POST("/:id/pay", h.Invoice.MarkPaid)
		invoices.POST("/overdue-sweep", middleware.RequireRole(entity.RoleOwner), h.Invoice.SweepOverdue)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/monthly", h.Report.Monthly)
		reports.GET("/customers", h.Report.Customers)
	}
}
