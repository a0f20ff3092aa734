// internal/services/storage_oracle.go
package services

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/seriesmint/seriesmint-backend/internal/config"
)

// StorageOracle prices the marginal persistent-storage bytes a call's state
// mutation introduces. The same measurement is used for series creation and
// for minting, so deposits stay deterministic across both paths.
type StorageOracle struct {
	pricePerByte decimal.Decimal
}

func NewStorageOracle(cfg *config.Config) *StorageOracle {
	return &StorageOracle{
		pricePerByte: cfg.Ledger.StoragePricePerByte,
	}
}

// RecordBytes measures a record as the length of its canonical JSON
// encoding. The encoding is deterministic for a fixed struct, which keeps
// the storage delta reproducible for identical inputs.
func (o *StorageOracle) RecordBytes(record interface{}) int64 {
	encoded, err := json.Marshal(record)
	if err != nil {
		return 0
	}
	return int64(len(encoded))
}

// IndexEntryBytes measures the per-owner index entry written alongside a
// freshly minted token.
func (o *StorageOracle) IndexEntryBytes(ownerID, tokenID string) int64 {
	return int64(len(ownerID) + len(tokenID))
}

// Cost converts a byte delta to its storage deposit.
func (o *StorageOracle) Cost(byteCount int64) decimal.Decimal {
	return o.pricePerByte.Mul(decimal.NewFromInt(byteCount))
}
