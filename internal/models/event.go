// internal/models/event.go
package models

import (
	"github.com/lib/pq"
)

const (
	EventStandard = "nep171"
	EventVersion  = "1.0.0"
	EventNftMint  = "nft_mint"
)

// EventLog is the persisted copy of a structured ledger event. External
// indexers consume the logrus emission; this table is the replayable record.
type EventLog struct {
	BaseModel
	Standard string         `json:"standard" gorm:"size:32;not null"`
	Version  string         `json:"version" gorm:"size:16;not null"`
	Event    string         `json:"event" gorm:"size:32;not null;index"`
	OwnerID  string         `json:"owner_id" gorm:"size:64;not null;index"`
	TokenIDs pq.StringArray `json:"token_ids" gorm:"type:text[]"`
}

// AuditLog records every mutating HTTP call for operational review.
type AuditLog struct {
	BaseModel
	PrincipalID  *string `json:"principal_id" gorm:"size:64;index"`
	Action       string  `json:"action" gorm:"size:255;not null"`
	ResourceType string  `json:"resource_type" gorm:"size:64;index"`
	ResourceID   string  `json:"resource_id,omitempty" gorm:"size:64"`
	IPAddress    string  `json:"ip_address" gorm:"size:45"`
	UserAgent    string  `json:"user_agent" gorm:"size:255"`
	RequestBody  JSONB   `json:"request_body,omitempty" gorm:"type:jsonb"`
}
