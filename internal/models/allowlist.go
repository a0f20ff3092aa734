// internal/models/allowlist.go
package models

import "time"

// AllowlistEntry grants one principal one capability. The creator and minter
// lists are independent: membership in one implies nothing about the other.
type AllowlistEntry struct {
	ID          uint          `json:"-" gorm:"primaryKey"`
	PrincipalID string        `json:"principal_id" gorm:"size:64;not null;uniqueIndex:idx_allowlist_principal_role"`
	Role        AllowlistRole `json:"role" gorm:"type:varchar(16);not null;uniqueIndex:idx_allowlist_principal_role"`
	CreatedAt   time.Time     `json:"created_at"`
}
