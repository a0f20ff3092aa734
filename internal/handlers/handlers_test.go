// internal/handlers/handlers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seriesmint/seriesmint-backend/internal/config"
	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/router"
)

type HandlerTestSuite struct {
	suite.Suite
	db         *gorm.DB
	router     *gin.Engine
	ownerToken string
	aliceToken string
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(
		&models.Account{},
		&models.AllowlistEntry{},
		&models.Series{},
		&models.Token{},
		&models.Transfer{},
		&models.EventLog{},
		&models.AuditLog{},
	))

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Ledger: config.LedgerConfig{
			RegistryOwner:       "registry.owner",
			TreasuryAccount:     "treasury",
			StoragePricePerByte: decimal.NewFromInt(10),
		},
	}

	suite.db = db
	suite.router = router.Initialize(db, cfg)

	suite.ownerToken = suite.register("registry.owner", "owner-secret-phrase")
	suite.aliceToken = suite.register("alice", "alice-secret-phrase")

	// Series creation and minting draw on ledger balances.
	suite.Require().NoError(db.Model(&models.Account{}).
		Where("id = ?", "alice").
		Update("balance", decimal.NewFromInt(10_000_000)).Error)
}

func (suite *HandlerTestSuite) register(principalID, secret string) string {
	w := suite.request("POST", "/v1/auth/register", "", gin.H{
		"principal_id": principalID,
		"secret":       secret,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotEmpty(response.Data.AccessToken)
	return response.Data.AccessToken
}

func (suite *HandlerTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestLedgerFlow() {
	// Only the registry owner can grow the allow-lists.
	w := suite.request("POST", "/v1/admin/creators/alice", suite.aliceToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request("POST", "/v1/admin/creators/alice", suite.ownerToken, nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	// An underfunded deposit is rejected with 402 before anything persists.
	w = suite.request("POST", "/v1/series", suite.aliceToken, gin.H{
		"series_id":        1,
		"metadata":         gin.H{"title": "City Skylines", "copies": 10},
		"price":            "2500",
		"attached_deposit": "1",
	})
	suite.Equal(http.StatusPaymentRequired, w.Code, w.Body.String())

	w = suite.request("POST", "/v1/series", suite.aliceToken, gin.H{
		"series_id":        1,
		"metadata":         gin.H{"title": "City Skylines", "copies": 10},
		"price":            "2500",
		"attached_deposit": "500000",
	})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	// A second claim on the same identifier conflicts.
	w = suite.request("POST", "/v1/series", suite.aliceToken, gin.H{
		"series_id":        1,
		"metadata":         gin.H{"title": "Other"},
		"attached_deposit": "500000",
	})
	suite.Equal(http.StatusConflict, w.Code)

	// Priced series are open to any funded principal.
	w = suite.request("POST", "/v1/series/1/mint", suite.aliceToken, gin.H{
		"receiver_id":      "alice",
		"attached_deposit": "100000",
	})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var minted struct {
		Data struct {
			Token struct {
				TokenID  string `json:"token_id"`
				Metadata struct {
					Title *string `json:"title"`
				} `json:"metadata"`
			} `json:"token"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &minted))
	suite.Equal("1:1", minted.Data.Token.TokenID)
	suite.Require().NotNil(minted.Data.Token.Metadata.Title)
	suite.Equal("City Skylines - 1", *minted.Data.Token.Metadata.Title)

	// Reads are public.
	w = suite.request("GET", "/v1/series", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("1", w.Header().Get("X-Total-Count"))

	w = suite.request("GET", "/v1/tokens/1:1", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/v1/tokens/1:1/payout?balance=10000", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/v1/series/1/supply", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/v1/accounts/alice/tokens", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("1", w.Header().Get("X-Total-Count"))
}

func (suite *HandlerTestSuite) TestAuthBoundaries() {
	w := suite.request("POST", "/v1/series", "", gin.H{
		"series_id":        9,
		"metadata":         gin.H{},
		"attached_deposit": "1000",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request("GET", "/v1/series/999", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request("GET", "/v1/accounts/balance", suite.aliceToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request("GET", "/v1/accounts/transfers", suite.aliceToken, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
