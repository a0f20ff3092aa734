// internal/models/series.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Series is the shared template a batch of tokens is minted against. Tokens
// keep a back-reference to their series instead of copying metadata or
// royalty, so the template is stored exactly once.
//
// NextSequence and the minted token set are mutated only by the mint flow.
// The minted set itself is the tokens table keyed (series_id, sequence).
type Series struct {
	ID      uint64 `json:"series_id" gorm:"primaryKey;autoIncrement:false"`
	OwnerID string `json:"owner_id" gorm:"size:64;not null;index"`

	// Metadata template. Any subset may be null; nulls are surfaced
	// explicitly by the view projection rather than persisted.
	Title       *string `json:"title" gorm:"size:255"`
	Description *string `json:"description" gorm:"type:text"`
	Media       *string `json:"media" gorm:"size:512"`
	Reference   *string `json:"reference" gorm:"size:512"`
	Copies      *uint64 `json:"copies"`
	IssuedAt    *int64  `json:"issued_at"`
	ExpiresAt   *int64  `json:"expires_at"`
	StartsAt    *int64  `json:"starts_at"`
	Extra       *string `json:"extra" gorm:"type:text"`

	Royalty RoyaltyMap          `json:"royalty" gorm:"type:jsonb"`
	Price   decimal.NullDecimal `json:"price" gorm:"type:text"`

	NextSequence uint64 `json:"next_sequence" gorm:"not null;default:1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Tokens []Token `json:"tokens,omitempty" gorm:"foreignKey:SeriesID"`
}

// Priced reports whether minting from this series is open for payment
// rather than gated on the minter allow-list.
func (s *Series) Priced() bool {
	return s.Price.Valid
}
