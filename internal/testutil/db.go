package testutil

import (
	"testing"

	"materials-billing-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens an in-memory SQLite database with the full schema migrated.
// Each call returns an isolated database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Vehicle{},
		&models.Item{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.Waybill{},
		&models.Settings{},
		&models.User{},
		&models.MessageLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}
