package database

import (
	"fmt"
	"log"

	"github.com/salonkita/salonkita-api/internal/config"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/pkg/utils"
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
		// Unique violations surface as gorm.ErrDuplicatedKey; the
		// transaction and invoice services branch on it.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenancy
		&entity.Tenant{},
		&entity.User{},

		// Master data
		&entity.Customer{},
		&entity.Service{},
		&entity.Booking{},

		// Settlement
		&entity.SalesTransaction{},
		&entity.TransactionItem{},
		&entity.PaymentRecord{},

		// Invoicing
		&entity.Invoice{},
		&entity.InvoiceItem{},

		// System entities
		&entity.NumberSequence{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDemoData creates a demo tenant with an owner account and a small
// service catalog when the database holds no tenants yet. Meant for
// local development only.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Tenant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding demo data...")

	hashed, err := utils.HashPassword("password")
	if err != nil {
		return err
	}

	owner := &entity.User{
		ID:       utils.NewUUID(),
		Name:     "Demo Owner",
		Email:    "owner@demo.local",
		Password: hashed,
		Role:     entity.RoleOwner,
	}
	tenant := &entity.Tenant{
		Name:     "Demo Salon",
		Slug:     "demo-salon",
		OwnerID:  owner.ID,
		Settings: entity.DefaultTenantSettings(),
	}
	if err := db.Create(tenant).Error; err != nil {
		return err
	}
	owner.TenantID = tenant.ID
	if err := db.Create(owner).Error; err != nil {
		return err
	}

	services := []entity.Service{
		{TenantID: tenant.ID, Name: "Haircut", BasePrice: 50000, DurationMinutes: 45, Active: true},
		{TenantID: tenant.ID, Name: "Creambath", BasePrice: 75000, DurationMinutes: 60, Active: true},
		{TenantID: tenant.ID, Name: "Home Visit Makeup", BasePrice: 250000, DurationMinutes: 90, HomeVisit: true, Active: true},
	}
	for i := range services {
		if err := db.Create(&services[i]).Error; err != nil {
			log.Printf("Warning: failed to seed service %s: %v", services[i].Name, err)
		}
	}

	log.Println("Demo data seeded")
	return nil
}
