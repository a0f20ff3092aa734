// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model for ledger-journal entities (transfers, events, audit rows).
// Registry entities (Account, Series, Token) carry natural keys instead.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the uuid in the application so journal rows do not
// depend on a database-side default.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// RoyaltyMap maps a payee principal to its share in basis points.
// A nil map means the series carries no royalty at all.
type RoyaltyMap map[string]uint32

// MaxRoyaltyBasisPoints caps the sum of all royalty shares.
const MaxRoyaltyBasisPoints = 10000

func (r RoyaltyMap) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *RoyaltyMap) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// TotalBasisPoints sums all royalty shares.
func (r RoyaltyMap) TotalBasisPoints() uint64 {
	var total uint64
	for _, bps := range r {
		total += uint64(bps)
	}
	return total
}

// Enums
type AllowlistRole string

const (
	AllowlistRoleCreator AllowlistRole = "creator"
	AllowlistRoleMinter  AllowlistRole = "minter"
)

type TransferKind string

const (
	TransferKindRefund  TransferKind = "refund"
	TransferKindPayout  TransferKind = "payout"
	TransferKindDeposit TransferKind = "deposit"
)

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusFailed    TransferStatus = "failed"
)
