// internal/services/transfer_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

type TransferServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TransferService
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewTransferService(suite.db)

	createAccount(suite.T(), suite.db, "alice", decimal.NewFromInt(1000))
	createAccount(suite.T(), suite.db, "bob", decimal.Zero)
}

func (suite *TransferServiceTestSuite) TestSendSettlesInBackground() {
	suite.service.Send(models.TransferKindPayout, "alice", "bob", decimal.NewFromInt(300), "test payout")
	waitForSettlement(suite.T(), suite.db)

	suite.True(accountBalance(suite.T(), suite.db, "alice").Equal(decimal.NewFromInt(700)))
	suite.True(accountBalance(suite.T(), suite.db, "bob").Equal(decimal.NewFromInt(300)))

	var transfer models.Transfer
	suite.Require().NoError(suite.db.First(&transfer).Error)
	suite.Equal(models.TransferStatusCompleted, transfer.Status)
	suite.NotNil(transfer.ProcessedAt)
}

func (suite *TransferServiceTestSuite) TestNonPositiveAmountsDropped() {
	suite.service.Send(models.TransferKindRefund, "alice", "bob", decimal.Zero, "nothing")
	suite.service.Send(models.TransferKindRefund, "alice", "bob", decimal.NewFromInt(-5), "negative")

	var count int64
	suite.db.Model(&models.Transfer{}).Count(&count)
	suite.Zero(count)
}

func (suite *TransferServiceTestSuite) TestOverdraftFailsWithoutTouchingBalances() {
	suite.service.Send(models.TransferKindPayout, "alice", "bob", decimal.NewFromInt(5000), "too much")
	waitForSettlement(suite.T(), suite.db)

	var transfer models.Transfer
	suite.Require().NoError(suite.db.First(&transfer).Error)
	suite.Equal(models.TransferStatusFailed, transfer.Status)
	suite.NotEmpty(transfer.FailReason)

	suite.True(accountBalance(suite.T(), suite.db, "alice").Equal(decimal.NewFromInt(1000)))
	suite.True(accountBalance(suite.T(), suite.db, "bob").IsZero())
}

func (suite *TransferServiceTestSuite) TestDepositCreditsWithoutDebit() {
	suite.service.Send(models.TransferKindDeposit, "stripe", "bob", decimal.NewFromInt(200), "pi_123")
	waitForSettlement(suite.T(), suite.db)

	suite.True(accountBalance(suite.T(), suite.db, "bob").Equal(decimal.NewFromInt(200)))
	suite.True(suite.service.HasDeposit("pi_123"))
	suite.False(suite.service.HasDeposit("pi_999"))
}

func (suite *TransferServiceTestSuite) TestDepositCreatesMissingAccount() {
	suite.service.Send(models.TransferKindDeposit, "stripe", "newcomer", decimal.NewFromInt(50), "pi_456")
	waitForSettlement(suite.T(), suite.db)

	suite.True(accountBalance(suite.T(), suite.db, "newcomer").Equal(decimal.NewFromInt(50)))
}

func (suite *TransferServiceTestSuite) TestHistoryCoversBothDirections() {
	suite.service.Send(models.TransferKindPayout, "alice", "bob", decimal.NewFromInt(10), "one")
	waitForSettlement(suite.T(), suite.db)
	suite.service.Send(models.TransferKindRefund, "bob", "alice", decimal.NewFromInt(5), "two")
	waitForSettlement(suite.T(), suite.db)

	transfers, total, err := suite.service.History("alice", utils.EnumerationParams{Limit: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(transfers, 2)
}

func TestTransferServiceSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}

func TestLockForUpdateFollowsDialect(t *testing.T) {
	// sqlite has no FOR UPDATE grammar; the clause must not be emitted.
	db := newTestDB(t)
	dry := db.Session(&gorm.Session{DryRun: true})
	stmt := lockForUpdate(dry).Find(&models.Account{}, "id = ?", "alice").Statement
	require.NotContains(t, stmt.SQL.String(), "FOR UPDATE")

	// On postgres the lock is real. sql.Open is lazy and the automatic
	// ping is disabled, so no server is contacted.
	pg, err := gorm.Open(postgres.Open("host=localhost user=nobody dbname=nowhere"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	stmt = lockForUpdate(pg).Find(&models.Account{}, "id = ?", "alice").Statement
	require.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}
