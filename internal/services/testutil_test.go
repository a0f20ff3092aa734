// internal/services/testutil_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seriesmint/seriesmint-backend/internal/config"
	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

const (
	testRegistryOwner = "registry.owner"
	testTreasury      = "treasury"
)

func init() {
	utils.SetJWTSecret("test-secret")
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Settlement goroutines share the pool; a single connection keeps
	// the in-memory database alive and serializes access.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.AllowlistEntry{},
		&models.Series{},
		&models.Token{},
		&models.Transfer{},
		&models.EventLog{},
		&models.AuditLog{},
	))

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Ledger: config.LedgerConfig{
			RegistryOwner:       testRegistryOwner,
			TreasuryAccount:     testTreasury,
			StoragePricePerByte: decimal.NewFromInt(10),
		},
	}
}

func createAccount(t *testing.T, db *gorm.DB, id string, balance decimal.Decimal) {
	t.Helper()
	require.NoError(t, db.Create(&models.Account{ID: id, Balance: balance}).Error)
}

func accountBalance(t *testing.T, db *gorm.DB, id string) decimal.Decimal {
	t.Helper()
	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", id).Error)
	return account.Balance
}

// waitForSettlement blocks until no transfer is pending. Transfers settle
// in background goroutines, so balance assertions poll.
func waitForSettlement(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.Eventually(t, func() bool {
		var pending int64
		db.Model(&models.Transfer{}).
			Where("status = ?", models.TransferStatusPending).
			Count(&pending)
		return pending == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func strPtr(s string) *string { return &s }
func u64Ptr(v uint64) *uint64 { return &v }
