package database

import (
	"fmt"
	"log"
	"time"

	"github.com/omkarj/kirana-billing-api/internal/config"
	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// A single-counter deployment needs few connections.
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.CatalogItem{},
		&entity.ItemVariant{},

		// Billing entities
		&entity.Bill{},
		&entity.BillLine{},

		// System entities
		&entity.StoreSettings{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// seedItem is one default catalog entry.
type seedItem struct {
	name string
	rate float64
}

// Default catalog for a fresh install, in counter display order.
var defaultCatalog = []seedItem{
	{"श्रीफळ", 50.00},
	{"साखर", 45.00},
	{"पिठी साखर", 55.00},
	{"गरा", 65.00},
	{"मैदा", 35.00},
	{"बेसन", 85.00},
	{"शेंगदाणे", 120.00},
	{"शाबुदाना", 80.00},
	{"हरबरा दाळ", 90.00},
	{"तूर दाळ", 110.00},
	{"मुग दाळ", 130.00},
	{"खोबरे", 150.00},
	{"खडीसाखर", 40.00},
	{"काजु", 800.00},
	{"बदाम", 600.00},
	{"गुळ", 55.00},
	{"पोहे", 30.00},
	{"भाजके पोहे", 45.00},
	{"मुरमुरे", 15.00},
	{"मीठ (नमक)", 20.00},
	{"खसखस", 200.00},
	{"विलायची", 1200.00},
	{"जिरे", 150.00},
	{"हळद", 60.00},
	{"हिंग", 500.00},
}

// SeedDefaultData seeds the store settings singleton and, on a fresh
// database, the default catalog.
func SeedDefaultData(db *gorm.DB, cfg *config.StoreConfig) error {
	log.Println("Seeding default data...")

	var settings entity.StoreSettings
	if err := db.First(&settings).Error; err != nil {
		settings = entity.StoreSettings{
			StoreName:    cfg.Name,
			StoreAddress: cfg.Address,
			City:         cfg.City,
			BillPrefix:   cfg.BillPrefix,
			BillCounter:  cfg.InitialBillNo,
			LastBillDate: time.Now().Format("2006-01-02"),
		}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("failed to seed store settings: %w", err)
		}
		log.Printf("Store settings created: %s", settings.StoreName)
	}

	var count int64
	if err := db.Model(&entity.CatalogItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count catalog items: %w", err)
	}
	if count == 0 {
		for i, s := range defaultCatalog {
			item := entity.CatalogItem{
				Name:     s.name,
				Position: i + 1,
			}
			item.SetRateFromDecimal(s.rate)
			if err := db.Create(&item).Error; err != nil {
				log.Printf("Warning: failed to seed item %s: %v", s.name, err)
			}
		}
		log.Printf("Seeded %d catalog items", len(defaultCatalog))
	}

	log.Println("Default data seeding completed")
	return nil
}
