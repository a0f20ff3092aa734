// internal/services/series_service.go
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

type SeriesService struct {
	db              *gorm.DB
	cfg             *config.Config
	accessService   *AccessService
	transferService *TransferService
	oracle          *StorageOracle
}

type SeriesMetadataRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Media       *string `json:"media,omitempty" validate:"omitempty,max=512"`
	Reference   *string `json:"reference,omitempty" validate:"omitempty,max=512"`
	Copies      *uint64 `json:"copies,omitempty" validate:"omitempty,min=1"`
	IssuedAt    *int64  `json:"issued_at,omitempty"`
	ExpiresAt   *int64  `json:"expires_at,omitempty"`
	StartsAt    *int64  `json:"starts_at,omitempty"`
	Extra       *string `json:"extra,omitempty"`
}

type CreateSeriesRequest struct {
	SeriesID        uint64                `json:"series_id" validate:"required,min=1"`
	Metadata        SeriesMetadataRequest `json:"metadata"`
	Royalty         models.RoyaltyMap     `json:"royalty,omitempty"`
	Price           *string               `json:"price,omitempty" validate:"omitempty,amount"`
	AttachedDeposit string                `json:"attached_deposit" validate:"required,amount"`
}

func NewSeriesService(db *gorm.DB, cfg *config.Config, accessService *AccessService, transferService *TransferService, oracle *StorageOracle) *SeriesService {
	return &SeriesService{
		db:              db,
		cfg:             cfg,
		accessService:   accessService,
		transferService: transferService,
		oracle:          oracle,
	}
}

// CreateSeries persists a new template. The caller pays exactly the
// marginal storage cost of the record out of the attached deposit; the
// whole operation is one transaction, so an insufficient deposit leaves no
// series and no charge behind.
func (s *SeriesService) CreateSeries(callerID string, req *CreateSeriesRequest) (*SeriesView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	attached, err := decimal.NewFromString(req.AttachedDeposit)
	if err != nil {
		return nil, fmt.Errorf("invalid attached deposit: %w", err)
	}

	var price decimal.NullDecimal
	if req.Price != nil {
		parsed, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		price = decimal.NullDecimal{Decimal: parsed, Valid: true}
	}

	series := &models.Series{
		ID:           req.SeriesID,
		OwnerID:      callerID,
		Title:        req.Metadata.Title,
		Description:  req.Metadata.Description,
		Media:        req.Metadata.Media,
		Reference:    req.Metadata.Reference,
		Copies:       req.Metadata.Copies,
		IssuedAt:     req.Metadata.IssuedAt,
		ExpiresAt:    req.Metadata.ExpiresAt,
		StartsAt:     req.Metadata.StartsAt,
		Extra:        req.Metadata.Extra,
		Royalty:      req.Royalty,
		Price:        price,
		NextSequence: 1,
	}

	storageCost := s.oracle.Cost(s.oracle.RecordBytes(series))

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if !s.accessService.hasRole(tx, callerID, models.AllowlistRoleCreator) {
			return models.ErrUnauthorized
		}

		if series.Royalty.TotalBasisPoints() > models.MaxRoyaltyBasisPoints {
			return models.ErrInvalidRoyalty
		}

		var existing models.Series
		if err := tx.First(&existing, "id = ?", req.SeriesID).Error; err == nil {
			return models.ErrDuplicateSeries
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		if attached.LessThan(storageCost) {
			return models.ErrInsufficientStorageDeposit
		}

		// The full attached value moves to the treasury; the excess
		// beyond the exact storage cost is refunded after commit.
		if err := debitAccount(tx, callerID, attached); err != nil {
			// A balance below the attached deposit is a deposit
			// failure in this flow, not a purchase failure.
			if errors.Is(err, models.ErrInsufficientFunds) {
				return models.ErrInsufficientStorageDeposit
			}
			return err
		}
		if err := creditAccount(tx, s.cfg.Ledger.TreasuryAccount, attached); err != nil {
			return err
		}

		if err := tx.Create(series).Error; err != nil {
			return fmt.Errorf("failed to create series: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.transferService.Send(models.TransferKindRefund, s.cfg.Ledger.TreasuryAccount,
		callerID, attached.Sub(storageCost), fmt.Sprintf("storage refund for series %d", series.ID))

	view := newSeriesView(series)
	return &view, nil
}

// GetSeries paginates over series in insertion order.
func (s *SeriesService) GetSeries(params utils.EnumerationParams) ([]SeriesView, int64, error) {
	var total int64
	if err := s.db.Model(&models.Series{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count series: %w", err)
	}

	var series []models.Series
	if err := utils.ApplyEnumeration(s.db.Order("created_at ASC"), params).
		Find(&series).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch series: %w", err)
	}

	views := make([]SeriesView, 0, len(series))
	for i := range series {
		views = append(views, newSeriesView(&series[i]))
	}

	return views, total, nil
}

// GetSupply returns the total number of series.
func (s *SeriesService) GetSupply() (int64, error) {
	var total int64
	if err := s.db.Model(&models.Series{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count series: %w", err)
	}
	return total, nil
}

func (s *SeriesService) GetSeriesInfo(seriesID uint64) (*SeriesInfoView, error) {
	var series models.Series
	if err := s.db.First(&series, "id = ?", seriesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrSeriesNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var supply int64
	if err := s.db.Model(&models.Token{}).Where("series_id = ?", seriesID).
		Count(&supply).Error; err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	return &SeriesInfoView{
		SeriesView: newSeriesView(&series),
		Supply:     uint64(supply),
	}, nil
}
