// internal/models/token.go
package models

import (
	"fmt"
	"time"
)

// TokenID formats the composite token identifier for a series edition.
func TokenID(seriesID, sequence uint64) string {
	return fmt.Sprintf("%d:%d", seriesID, sequence)
}

// Token is one minted edition. It stores only identity and ownership;
// metadata and royalty resolve through the series back-reference.
type Token struct {
	ID       string `json:"token_id" gorm:"primaryKey;size:64"`
	SeriesID uint64 `json:"series_id" gorm:"not null;index;uniqueIndex:idx_tokens_series_sequence"`
	Sequence uint64 `json:"sequence" gorm:"not null;uniqueIndex:idx_tokens_series_sequence"`
	OwnerID  string `json:"owner_id" gorm:"size:64;not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Series Series `json:"-" gorm:"foreignKey:SeriesID"`
}
