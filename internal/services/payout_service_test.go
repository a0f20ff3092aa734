// internal/services/payout_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/seriesmint/seriesmint-backend/internal/models"
)

type PayoutServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *PayoutService
}

func (suite *PayoutServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewPayoutService(suite.db)
}

func (suite *PayoutServiceTestSuite) seed(royalty models.RoyaltyMap, owner string) {
	suite.Require().NoError(suite.db.Create(&models.Series{
		ID:      1,
		OwnerID: "alice",
		Royalty: royalty,
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.Token{
		ID:       models.TokenID(1, 1),
		SeriesID: 1,
		Sequence: 1,
		OwnerID:  owner,
	}).Error)
}

func (suite *PayoutServiceTestSuite) TestOwnerKeepsRemainder() {
	suite.seed(models.RoyaltyMap{"alice": 1000, "bob": 250}, "carol")

	view, err := suite.service.ComputePayout("1:1", decimal.NewFromInt(10_000), 10)
	suite.Require().NoError(err)
	suite.Equal(map[string]string{
		"alice": "1000",
		"bob":   "250",
		"carol": "8750",
	}, view.Payout)
}

func (suite *PayoutServiceTestSuite) TestSharesAreFloored() {
	suite.seed(models.RoyaltyMap{"alice": 333}, "carol")

	// 333 bps of 101 is 3.3633, floored to 3; the fraction stays with
	// the owner so the split always sums to the balance.
	view, err := suite.service.ComputePayout("1:1", decimal.NewFromInt(101), 10)
	suite.Require().NoError(err)
	suite.Equal(map[string]string{
		"alice": "3",
		"carol": "98",
	}, view.Payout)
}

func (suite *PayoutServiceTestSuite) TestOwnerListedInRoyalty() {
	suite.seed(models.RoyaltyMap{"carol": 500, "bob": 500}, "carol")

	view, err := suite.service.ComputePayout("1:1", decimal.NewFromInt(10_000), 10)
	suite.Require().NoError(err)
	// Carol's royalty share and the remainder merge into one entry.
	suite.Equal(map[string]string{
		"bob":   "500",
		"carol": "9500",
	}, view.Payout)
}

func (suite *PayoutServiceTestSuite) TestNoRoyaltyGoesEntirelyToOwner() {
	suite.seed(nil, "carol")

	view, err := suite.service.ComputePayout("1:1", decimal.NewFromInt(777), 10)
	suite.Require().NoError(err)
	suite.Equal(map[string]string{"carol": "777"}, view.Payout)
}

func (suite *PayoutServiceTestSuite) TestTooManyPayees() {
	suite.seed(models.RoyaltyMap{"alice": 100, "bob": 100, "dave": 100}, "carol")

	_, err := suite.service.ComputePayout("1:1", decimal.NewFromInt(1000), 3)
	suite.Error(err)

	view, err := suite.service.ComputePayout("1:1", decimal.NewFromInt(1000), 4)
	suite.NoError(err)
	suite.Len(view.Payout, 4)
}

func (suite *PayoutServiceTestSuite) TestUnknownToken() {
	_, err := suite.service.ComputePayout("9:9", decimal.NewFromInt(1000), 10)
	suite.Error(err)
}

func TestPayoutServiceSuite(t *testing.T) {
	suite.Run(t, new(PayoutServiceTestSuite))
}
