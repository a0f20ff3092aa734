// internal/services/payout_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/seriesmint/seriesmint-backend/internal/models"
)

// PayoutService computes royalty splits for external marketplaces. This is
// a pure view over the series royalty template: mint-time proceeds are
// never split through it.
type PayoutService struct {
	db *gorm.DB
}

type PayoutView struct {
	Payout map[string]string `json:"payout"`
}

var basisPointsDivisor = decimal.NewFromInt(models.MaxRoyaltyBasisPoints)

func NewPayoutService(db *gorm.DB) *PayoutService {
	return &PayoutService{db: db}
}

// ComputePayout splits a sale balance per the token's series royalty map,
// with the remainder going to the current token owner. maxLenPayout bounds
// the number of payees a marketplace is willing to pay.
func (s *PayoutService) ComputePayout(tokenID string, balance decimal.Decimal, maxLenPayout int) (*PayoutView, error) {
	var token models.Token
	if err := s.db.Preload("Series").First(&token, "id = ?", tokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("token not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	royalty := token.Series.Royalty

	payees := len(royalty)
	if _, ok := royalty[token.OwnerID]; !ok {
		payees++
	}
	if payees > maxLenPayout {
		return nil, fmt.Errorf("payout requires %d payees, marketplace accepts at most %d", payees, maxLenPayout)
	}

	shares := make(map[string]decimal.Decimal, payees)
	remainder := balance
	for payee, bps := range royalty {
		share := balance.Mul(decimal.NewFromInt(int64(bps))).Div(basisPointsDivisor).Floor()
		shares[payee] = share
		remainder = remainder.Sub(share)
	}

	// The token owner keeps whatever the royalty payees do not take.
	if existing, ok := shares[token.OwnerID]; ok {
		shares[token.OwnerID] = existing.Add(remainder)
	} else {
		shares[token.OwnerID] = remainder
	}

	view := &PayoutView{Payout: make(map[string]string, len(shares))}
	for payee, amount := range shares {
		view.Payout[payee] = amount.String()
	}

	return view, nil
}
