// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seriesmint/seriesmint-backend/internal/config"
	"github.com/seriesmint/seriesmint-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Failed to get underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Failed to close database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.Account{},
		&models.AllowlistEntry{},
		&models.Series{},
		&models.Token{},
		&models.Transfer{},
		&models.EventLog{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

// EnsureSystemAccounts creates the registry owner and treasury rows when
// they are missing. Both accounts are unusable for login until a secret is
// set through the normal registration flow.
func EnsureSystemAccounts(db *gorm.DB, cfg config.LedgerConfig) error {
	for _, id := range []string{cfg.RegistryOwner, cfg.TreasuryAccount} {
		account := models.Account{ID: id, Balance: decimal.Zero}
		if err := db.Where("id = ?", id).FirstOrCreate(&account).Error; err != nil {
			return fmt.Errorf("failed to ensure system account %s: %w", id, err)
		}
	}
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Series indexes: insertion-ordered pagination and owner lookups
		"CREATE INDEX IF NOT EXISTS idx_series_created_at ON series(created_at ASC)",
		"CREATE INDEX IF NOT EXISTS idx_series_owner ON series(owner_id)",

		// Token indexes: per-owner enumeration in mint order
		"CREATE INDEX IF NOT EXISTS idx_tokens_owner_created ON tokens(owner_id, created_at ASC)",
		"CREATE INDEX IF NOT EXISTS idx_tokens_series_created ON tokens(series_id, created_at ASC)",

		// Transfer indexes
		"CREATE INDEX IF NOT EXISTS idx_transfers_status ON transfers(status, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_transfers_to ON transfers(to_id, created_at DESC)",

		// Event indexes
		"CREATE INDEX IF NOT EXISTS idx_event_logs_event_created ON event_logs(event, created_at DESC)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_principal_action ON audit_logs(principal_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}
