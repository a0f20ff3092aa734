// internal/models/account.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Account is a ledger principal. The ID is the caller-facing principal
// identifier; Balance is the value available to attach to mutating calls.
//
// Amounts are 10^24-scale integers, stored as text so they survive database
// drivers without 128-bit numerics.
type Account struct {
	ID         string          `json:"id" gorm:"primaryKey;size:64"`
	SecretHash string          `json:"-" gorm:"size:255;not null"`
	Balance    decimal.Decimal `json:"balance" gorm:"type:text;not null"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (a *Account) SetSecret(secret string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.SecretHash = string(hash)
	return nil
}

func (a *Account) CheckSecret(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.SecretHash), []byte(secret)) == nil
}

// Transfer is one outbound value movement initiated by the ledger: a storage
// refund, a mint payout, or a funding deposit. Transfers are best-effort and
// settle after the call that created them has committed.
type Transfer struct {
	BaseModel
	Kind        TransferKind    `json:"kind" gorm:"type:varchar(20);not null;index"`
	FromID      string          `json:"from_id" gorm:"size:64;not null;index"`
	ToID        string          `json:"to_id" gorm:"size:64;not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:text;not null"`
	Memo        string          `json:"memo,omitempty" gorm:"size:255"`
	Status      TransferStatus  `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt *time.Time      `json:"processed_at"`
	FailReason  string          `json:"fail_reason,omitempty" gorm:"type:text"`
}
