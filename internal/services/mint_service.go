// internal/services/mint_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/seriesmint/seriesmint-backend/internal/config"
	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

// MintService materializes tokens on demand. A mint call validates payment,
// deducts storage cost, records the token and routes the remaining funds to
// the series owner, all inside one transaction: payment validation and token
// materialization are all-or-nothing.
type MintService struct {
	db              *gorm.DB
	cfg             *config.Config
	accessService   *AccessService
	transferService *TransferService
	oracle          *StorageOracle
}

type MintRequest struct {
	ReceiverID      string `json:"receiver_id" validate:"required,principal_id"`
	AttachedDeposit string `json:"attached_deposit" validate:"required,amount"`
}

func NewMintService(db *gorm.DB, cfg *config.Config, accessService *AccessService, transferService *TransferService, oracle *StorageOracle) *MintService {
	return &MintService{
		db:              db,
		cfg:             cfg,
		accessService:   accessService,
		transferService: transferService,
		oracle:          oracle,
	}
}

func (s *MintService) Mint(callerID string, seriesID uint64, req *MintRequest) (*TokenView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	attached, err := decimal.NewFromString(req.AttachedDeposit)
	if err != nil {
		return nil, fmt.Errorf("invalid attached deposit: %w", err)
	}

	var (
		series  models.Series
		token   models.Token
		payout  decimal.Decimal
		refund  decimal.Decimal
		eventID string
	)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			First(&series, "id = ?", seriesID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrSeriesNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var minted int64
		if err := tx.Model(&models.Token{}).Where("series_id = ?", seriesID).
			Count(&minted).Error; err != nil {
			return fmt.Errorf("failed to count minted tokens: %w", err)
		}

		if series.Copies != nil && uint64(minted) >= *series.Copies {
			return models.ErrSeriesSoldOut
		}

		sequence := series.NextSequence
		token = models.Token{
			ID:       models.TokenID(seriesID, sequence),
			SeriesID: seriesID,
			Sequence: sequence,
			OwnerID:  req.ReceiverID,
		}

		// The marginal bytes are the token record plus the receiver's
		// owner-index entry; the series record already exists.
		storageCost := s.oracle.Cost(s.oracle.RecordBytes(&token) +
			s.oracle.IndexEntryBytes(req.ReceiverID, token.ID))

		required := storageCost
		if series.Priced() {
			// Open path: anyone may mint by covering price plus
			// storage. The price is routed to the series owner;
			// royalty is never split out of mint proceeds.
			required = required.Add(series.Price.Decimal)
			payout = series.Price.Decimal
		} else if !s.accessService.hasRole(tx, callerID, models.AllowlistRoleMinter) {
			return models.ErrUnauthorized
		}

		if attached.LessThan(required) {
			return models.ErrInsufficientFunds
		}
		refund = attached.Sub(required)

		if err := debitAccount(tx, callerID, attached); err != nil {
			return err
		}
		if err := creditAccount(tx, s.cfg.Ledger.TreasuryAccount, attached); err != nil {
			return err
		}

		if err := tx.Model(&series).Update("next_sequence", sequence+1).Error; err != nil {
			return fmt.Errorf("failed to advance sequence: %w", err)
		}

		if err := tx.Create(&token).Error; err != nil {
			return fmt.Errorf("failed to create token: %w", err)
		}

		event := models.EventLog{
			Standard: models.EventStandard,
			Version:  models.EventVersion,
			Event:    models.EventNftMint,
			OwnerID:  req.ReceiverID,
			TokenIDs: pq.StringArray{token.ID},
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to record mint event: %w", err)
		}
		eventID = event.ID.String()

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Everything below runs after commit: the emission and the outbound
	// transfers are fire-and-forget, and nothing depends on their outcome.
	logrus.WithFields(logrus.Fields{
		"standard":  models.EventStandard,
		"version":   models.EventVersion,
		"event":     models.EventNftMint,
		"event_id":  eventID,
		"owner_id":  req.ReceiverID,
		"token_ids": []string{token.ID},
	}).Info("nft_mint")

	s.transferService.Send(models.TransferKindRefund, s.cfg.Ledger.TreasuryAccount,
		callerID, refund, fmt.Sprintf("mint refund for %s", token.ID))
	s.transferService.Send(models.TransferKindPayout, s.cfg.Ledger.TreasuryAccount,
		series.OwnerID, payout, fmt.Sprintf("mint proceeds for %s", token.ID))

	view := newTokenView(&token, &series)
	return &view, nil
}
