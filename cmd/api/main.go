package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/omkarj/kirana-billing-api/internal/application/service"
	"github.com/omkarj/kirana-billing-api/internal/config"
	"github.com/omkarj/kirana-billing-api/internal/infrastructure/database"
	"github.com/omkarj/kirana-billing-api/internal/infrastructure/mirror"
	"github.com/omkarj/kirana-billing-api/internal/infrastructure/repository"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/handler"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/routes"
	"github.com/omkarj/kirana-billing-api/pkg/printer"
	"github.com/omkarj/kirana-billing-api/pkg/utils"
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

	// Seed store settings and the default catalog
	if err := database.SeedDefaultData(db, &cfg.Store); err != nil {
		log.Fatalf("Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	billRepo := repository.NewBillRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(jwtManager, cfg.Admin.PasswordHash)
	catalogService := service.NewCatalogService(catalogRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	printerService := service.NewPrinterService(thermalPrinter, settingsRepo, cfg.Printer.Type)
	billingService := service.NewBillingService(
		catalogRepo,
		billRepo,
		settingsRepo,
		printerService,
		cfg.Store.InitialBillNo,
	)

	// Mirror catalog changes to the remote backup when configured
	catalogMirror := mirror.NewPusher(&cfg.Mirror)
	if catalogMirror.Enabled() {
		catalogService.Subscribe(catalogMirror.Push)
		log.Printf("Catalog mirror enabled: %s", cfg.Mirror.URL)
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Billing:  handler.NewBillingHandler(billingService),
		Bill:     handler.NewBillHandler(billingService, settingsService, printerService),
		Settings: handler.NewSettingsHandler(settingsService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

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
