// internal/services/token_service_test.go
package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

type TokenServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TokenService
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewTokenService(suite.db)
}

func (suite *TokenServiceTestSuite) seedSeries(series *models.Series) {
	suite.Require().NoError(suite.db.Create(series).Error)
}

func (suite *TokenServiceTestSuite) seedToken(seriesID, sequence uint64, owner string) {
	suite.Require().NoError(suite.db.Create(&models.Token{
		ID:       models.TokenID(seriesID, sequence),
		SeriesID: seriesID,
		Sequence: sequence,
		OwnerID:  owner,
	}).Error)
}

func (suite *TokenServiceTestSuite) TestGetTokenDerivesTitleFromSeries() {
	suite.seedSeries(&models.Series{ID: 1, OwnerID: "alice", Title: strPtr("City Skylines")})
	suite.seedToken(1, 3, "carol")

	view, err := suite.service.GetToken("1:3")
	suite.Require().NoError(err)
	suite.Require().NotNil(view.Metadata.Title)
	suite.Equal("City Skylines - 3", *view.Metadata.Title)
}

func (suite *TokenServiceTestSuite) TestUntitledSeriesFallbackTitle() {
	suite.seedSeries(&models.Series{ID: 2, OwnerID: "alice"})
	suite.seedToken(2, 1, "carol")

	view, err := suite.service.GetToken("2:1")
	suite.Require().NoError(err)
	suite.Require().NotNil(view.Metadata.Title)
	suite.Equal("Series 2 : Edition 1", *view.Metadata.Title)
}

func (suite *TokenServiceTestSuite) TestSeriesTitleEditReflectsOnAllTokens() {
	suite.seedSeries(&models.Series{ID: 1, OwnerID: "alice", Title: strPtr("Before")})
	suite.seedToken(1, 1, "carol")

	suite.Require().NoError(suite.db.Model(&models.Series{}).
		Where("id = ?", 1).Update("title", "After").Error)

	view, err := suite.service.GetToken("1:1")
	suite.Require().NoError(err)
	suite.Equal("After - 1", *view.Metadata.Title)
}

func (suite *TokenServiceTestSuite) TestAbsentMetadataRendersExplicitNulls() {
	suite.seedSeries(&models.Series{ID: 1, OwnerID: "alice"})
	suite.seedToken(1, 1, "carol")

	view, err := suite.service.GetToken("1:1")
	suite.Require().NoError(err)

	encoded, err := json.Marshal(view.Metadata)
	suite.Require().NoError(err)

	var fields map[string]json.RawMessage
	suite.Require().NoError(json.Unmarshal(encoded, &fields))
	for _, key := range []string{"description", "media", "copies", "issued_at", "expires_at", "starts_at", "extra", "reference"} {
		raw, ok := fields[key]
		suite.True(ok, "field %s must be present", key)
		suite.Equal("null", string(raw), "field %s must be an explicit null", key)
	}
}

func (suite *TokenServiceTestSuite) TestTokensForSeriesInSequenceOrder() {
	suite.seedSeries(&models.Series{ID: 1, OwnerID: "alice"})
	for seq := uint64(1); seq <= 4; seq++ {
		suite.seedToken(1, seq, "carol")
	}

	views, total, err := suite.service.TokensForSeries(1, utils.EnumerationParams{FromIndex: 1, Limit: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(4), total)
	suite.Require().Len(views, 2)
	suite.Equal("1:2", views[0].TokenID)
	suite.Equal("1:3", views[1].TokenID)

	// Past the end yields an empty page, not an error.
	views, _, err = suite.service.TokensForSeries(1, utils.EnumerationParams{FromIndex: 20, Limit: 5})
	suite.Require().NoError(err)
	suite.Empty(views)
}

func (suite *TokenServiceTestSuite) TestTokensForUnknownSeries() {
	_, _, err := suite.service.TokensForSeries(9, utils.EnumerationParams{Limit: 10})
	suite.ErrorIs(err, models.ErrSeriesNotFound)

	_, err = suite.service.SupplyForSeries(9)
	suite.ErrorIs(err, models.ErrSeriesNotFound)
}

func (suite *TokenServiceTestSuite) TestTokensForOwner() {
	suite.seedSeries(&models.Series{ID: 1, OwnerID: "alice"})
	suite.seedSeries(&models.Series{ID: 2, OwnerID: "alice"})
	suite.seedToken(1, 1, "carol")
	suite.seedToken(2, 1, "carol")
	suite.seedToken(1, 2, "dave")

	views, total, err := suite.service.TokensForOwner("carol", utils.EnumerationParams{Limit: 10})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(views, 2)

	views, total, err = suite.service.TokensForOwner("nobody", utils.EnumerationParams{Limit: 10})
	suite.Require().NoError(err)
	suite.Zero(total)
	suite.Empty(views)
}

func (suite *TokenServiceTestSuite) TestSupplyForSeries() {
	suite.seedSeries(&models.Series{ID: 1, OwnerID: "alice"})
	suite.seedToken(1, 1, "carol")
	suite.seedToken(1, 2, "carol")

	supply, err := suite.service.SupplyForSeries(1)
	suite.Require().NoError(err)
	suite.Equal(int64(2), supply)
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func TestTokenIDFormat(t *testing.T) {
	require.Equal(t, "12:7", models.TokenID(12, 7))
}
