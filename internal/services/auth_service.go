// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/seriesmint/seriesmint-backend/internal/config"
	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterRequest struct {
	PrincipalID string `json:"principal_id" validate:"required,principal_id"`
	Secret      string `json:"secret" validate:"required,min=12"`
}

type LoginRequest struct {
	PrincipalID string `json:"principal_id" validate:"required,principal_id"`
	Secret      string `json:"secret" validate:"required"`
}

type AuthResponse struct {
	Account      *models.Account `json:"account"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // in seconds
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

// Register claims a principal identifier and opens its ledger account with
// a zero balance. System accounts created at bootstrap can be claimed once
// by setting their first secret.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	account := &models.Account{
		ID:      req.PrincipalID,
		Balance: decimal.Zero,
	}

	var existing models.Account
	if err := s.db.First(&existing, "id = ?", req.PrincipalID).Error; err == nil {
		if existing.SecretHash != "" {
			return nil, errors.New("principal already registered")
		}
		account = &existing
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := account.SetSecret(req.Secret); err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	if err := s.db.Save(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.issueTokens(account)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var account models.Account
	if err := s.db.First(&account, "id = ?", req.PrincipalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !account.CheckSecret(req.Secret) {
		return nil, errors.New("invalid credentials")
	}

	return s.issueTokens(&account)
}

func (s *AuthService) Refresh(refreshToken string) (*AuthResponse, error) {
	principalID, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	var account models.Account
	if err := s.db.First(&account, "id = ?", principalID).Error; err != nil {
		return nil, errors.New("account not found")
	}

	return s.issueTokens(&account)
}

func (s *AuthService) GetAccount(principalID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, "id = ?", principalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("account not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &account, nil
}

func (s *AuthService) issueTokens(account *models.Account) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(account.ID, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(account.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
