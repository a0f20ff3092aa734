// internal/services/transfer_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

// TransferService is the value-transfer primitive. Sends are asynchronous
// and best-effort: they are recorded first, settled in their own
// transaction, and their failure never touches the ledger state that
// already committed when the send was initiated.
type TransferService struct {
	db *gorm.DB
}

func NewTransferService(db *gorm.DB) *TransferService {
	return &TransferService{db: db}
}

// Send records an outbound transfer and settles it in the background.
// Callers must invoke it only after the state mutation funding the transfer
// has committed. Zero and negative amounts are dropped silently.
func (s *TransferService) Send(kind models.TransferKind, fromID, toID string, amount decimal.Decimal, memo string) {
	if !amount.IsPositive() {
		return
	}

	transfer := &models.Transfer{
		Kind:   kind,
		FromID: fromID,
		ToID:   toID,
		Amount: amount,
		Memo:   memo,
		Status: models.TransferStatusPending,
	}

	if err := s.db.Create(transfer).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"kind": kind,
			"to":   toID,
		}).Error("Failed to record transfer")
		return
	}

	go s.settle(transfer)
}

func (s *TransferService) settle(transfer *models.Transfer) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Deposits bring external value into the ledger; there is no
		// internal account to debit.
		if transfer.Kind != models.TransferKindDeposit {
			if err := debitAccount(tx, transfer.FromID, transfer.Amount); err != nil {
				return err
			}
		}
		return creditAccount(tx, transfer.ToID, transfer.Amount)
	})

	now := time.Now()
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"transfer_id": transfer.ID,
			"kind":        transfer.Kind,
			"to":          transfer.ToID,
		}).Error("Transfer settlement failed")

		s.db.Model(transfer).Updates(map[string]interface{}{
			"status":       models.TransferStatusFailed,
			"processed_at": &now,
			"fail_reason":  err.Error(),
		})
		return
	}

	s.db.Model(transfer).Updates(map[string]interface{}{
		"status":       models.TransferStatusCompleted,
		"processed_at": &now,
	})
}

func (s *TransferService) History(principalID string, params utils.EnumerationParams) ([]models.Transfer, int64, error) {
	query := s.db.Model(&models.Transfer{}).
		Where("from_id = ? OR to_id = ?", principalID, principalID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}

	var transfers []models.Transfer
	if err := utils.ApplyEnumeration(query.Order("created_at DESC"), params).
		Find(&transfers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transfers: %w", err)
	}

	return transfers, total, nil
}

// HasDeposit reports whether a funding reference was already credited.
func (s *TransferService) HasDeposit(reference string) bool {
	var count int64
	s.db.Model(&models.Transfer{}).
		Where("kind = ? AND memo = ?", models.TransferKindDeposit, reference).
		Count(&count)
	return count > 0
}

// lockForUpdate takes a row lock for the remainder of the transaction.
// sqlite has no FOR UPDATE grammar; its writes are serialized by the
// database itself, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// debitAccount and creditAccount are the balance primitives every mutating
// flow shares. They expect to run inside the caller's transaction.

func debitAccount(tx *gorm.DB, accountID string, amount decimal.Decimal) error {
	var account models.Account
	if err := lockForUpdate(tx).
		First(&account, "id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrInsufficientFunds
		}
		return fmt.Errorf("failed to load account %s: %w", accountID, err)
	}

	if account.Balance.LessThan(amount) {
		return models.ErrInsufficientFunds
	}

	return tx.Model(&account).Update("balance", account.Balance.Sub(amount)).Error
}

func creditAccount(tx *gorm.DB, accountID string, amount decimal.Decimal) error {
	account := models.Account{ID: accountID, Balance: decimal.Zero}
	if err := lockForUpdate(tx).
		Where("id = ?", accountID).FirstOrCreate(&account).Error; err != nil {
		return fmt.Errorf("failed to load account %s: %w", accountID, err)
	}

	return tx.Model(&account).Update("balance", account.Balance.Add(amount)).Error
}
