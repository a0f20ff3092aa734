// internal/services/token_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

// TokenService is the read side of the token registry. Every enumeration
// flows through the same per-token projection, so all external observers
// see per-edition titles consistently.
type TokenService struct {
	db *gorm.DB
}

func NewTokenService(db *gorm.DB) *TokenService {
	return &TokenService{db: db}
}

func (s *TokenService) GetToken(tokenID string) (*TokenView, error) {
	var token models.Token
	if err := s.db.Preload("Series").First(&token, "id = ?", tokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("token not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	view := newTokenView(&token, &token.Series)
	return &view, nil
}

// TokensForOwner enumerates a principal's tokens in mint order.
func (s *TokenService) TokensForOwner(ownerID string, params utils.EnumerationParams) ([]TokenView, int64, error) {
	query := s.db.Model(&models.Token{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	var tokens []models.Token
	if err := utils.ApplyEnumeration(query.Preload("Series").Order("created_at ASC"), params).
		Find(&tokens).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tokens: %w", err)
	}

	return s.project(tokens), total, nil
}

// TokensForSeries enumerates a series' minted editions in sequence order.
func (s *TokenService) TokensForSeries(seriesID uint64, params utils.EnumerationParams) ([]TokenView, int64, error) {
	if err := s.requireSeries(seriesID); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Token{}).Where("series_id = ?", seriesID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	var tokens []models.Token
	if err := utils.ApplyEnumeration(query.Preload("Series").Order("sequence ASC"), params).
		Find(&tokens).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tokens: %w", err)
	}

	return s.project(tokens), total, nil
}

// SupplyForSeries returns the number of tokens minted so far.
func (s *TokenService) SupplyForSeries(seriesID uint64) (int64, error) {
	if err := s.requireSeries(seriesID); err != nil {
		return 0, err
	}

	var total int64
	if err := s.db.Model(&models.Token{}).Where("series_id = ?", seriesID).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	return total, nil
}

func (s *TokenService) requireSeries(seriesID uint64) error {
	var series models.Series
	if err := s.db.First(&series, "id = ?", seriesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrSeriesNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

func (s *TokenService) project(tokens []models.Token) []TokenView {
	views := make([]TokenView, 0, len(tokens))
	for i := range tokens {
		views = append(views, newTokenView(&tokens[i], &tokens[i].Series))
	}
	return views
}
