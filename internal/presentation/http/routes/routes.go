package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/omkarj/kirana-billing-api/internal/config"
	domainRepo "github.com/omkarj/kirana-billing-api/internal/domain/repository"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/handler"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/middleware"
	"github.com/omkarj/kirana-billing-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Billing  *handler.BillingHandler
	Bill     *handler.BillHandler
	Settings *handler.SettingsHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes. Billing and
// catalog reads are open to the counter terminal; catalog and settings
// mutations require the admin token.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	router.Use(rateLimiter.Middleware())

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
		v1.POST("/auth/login", h.Auth.Login)

		registerCatalogRoutes(v1, h, deps)
		registerBillingRoutes(v1, h, deps)
		registerBillRoutes(v1, h)
		registerSettingsRoutes(v1, h, deps)
		registerPrinterRoutes(v1, h, deps)
	}

	return router
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	catalog := v1.Group("/catalog")
	{
		// The counter terminal reads the catalog without logging in.
		catalog.GET("/items", h.Catalog.List)
		catalog.GET("/columns", h.Catalog.Columns)

		// Mutations and exports are the admin's.
		admin := catalog.Group("")
		admin.Use(middleware.AdminAuthMiddleware(deps.JWTManager))
		{
			admin.GET("/export", h.Catalog.Export)
			admin.POST("/items", h.Catalog.Create)
			admin.PUT("/items/:id", h.Catalog.Update)
			admin.DELETE("/items/:id", h.Catalog.Delete)
		}
	}
}

func registerBillingRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	billing := v1.Group("/billing")
	{
		billing.GET("/session", h.Billing.GetSession)
		billing.PUT("/lines/quantity", h.Billing.SelectQuantity)
		billing.PUT("/lines/rate", h.Billing.SetRate)
		billing.POST("/reset", h.Billing.Reset)
		// Checkout uses idempotency middleware to prevent duplicate bills
		billing.POST("/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Billing.Checkout)
	}
}

func registerBillRoutes(v1 *gin.RouterGroup, h *Handlers) {
	bills := v1.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/next-number", h.Bill.NextNumber)
		bills.GET("/:id", h.Bill.Get)
		bills.GET("/:id/html", h.Bill.GetHTML)
		bills.POST("/:id/print", h.Bill.Print)
	}
}

func registerSettingsRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	settings := v1.Group("/settings")
	{
		settings.GET("", h.Settings.GetSettings)

		admin := settings.Group("")
		admin.Use(middleware.AdminAuthMiddleware(deps.JWTManager))
		{
			admin.PUT("", h.Settings.UpdateSettings)
		}
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	printerGroup := v1.Group("/printer")
	printerGroup.Use(middleware.AdminAuthMiddleware(deps.JWTManager))
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
