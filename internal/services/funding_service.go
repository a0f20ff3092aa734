// internal/services/funding_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/seriesmint/seriesmint-backend/internal/config"
	"github.com/seriesmint/seriesmint-backend/internal/models"
	"github.com/seriesmint/seriesmint-backend/internal/utils"
)

// FundingService lets principals buy ledger balance through Stripe so they
// have value to attach to series creation and minting.
type FundingService struct {
	db              *gorm.DB
	cfg             *config.Config
	transferService *TransferService
}

type CreateDepositIntentRequest struct {
	// Amount is the ledger balance to buy, as a base-unit integer string.
	Amount string `json:"amount" validate:"required,amount"`
}

type DepositIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
	AmountCents  int64  `json:"amount_cents"`
}

type ConfirmDepositRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

// ledgerUnit is one whole unit of value in base amounts.
var ledgerUnit = decimal.New(1, 24)

func NewFundingService(db *gorm.DB, cfg *config.Config, transferService *TransferService) *FundingService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &FundingService{
		db:              db,
		cfg:             cfg,
		transferService: transferService,
	}
}

func (s *FundingService) CreateDepositIntent(principalID string, req *CreateDepositIntentRequest) (*DepositIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, errors.New("amount must be a positive base-unit integer")
	}

	cents := amount.
		Mul(decimal.NewFromInt(s.cfg.Payment.DepositUnitCents)).
		Div(ledgerUnit).
		Ceil().
		IntPart()
	if cents < 50 {
		return nil, errors.New("deposit is below the processor minimum")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String("usd"),
	}
	params.AddMetadata("principal_id", principalID)
	params.AddMetadata("ledger_amount", amount.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &DepositIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
		AmountCents:  cents,
	}, nil
}

// ConfirmDeposit credits the ledger balance once the Stripe payment has
// succeeded. Each payment intent is credited at most once.
func (s *FundingService) ConfirmDeposit(principalID string, req *ConfirmDepositRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Metadata["principal_id"] != principalID {
		return errors.New("payment intent belongs to another principal")
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment is not settled yet: %s", pi.Status)
	}

	amount, err := decimal.NewFromString(pi.Metadata["ledger_amount"])
	if err != nil {
		return fmt.Errorf("payment intent carries no ledger amount: %w", err)
	}

	if s.transferService.HasDeposit(pi.ID) {
		return errors.New("payment was already credited")
	}

	s.transferService.Send(models.TransferKindDeposit, "stripe", principalID, amount, pi.ID)
	return nil
}
