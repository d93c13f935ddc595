package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

// DepositRequest credits the available balance of an owner.
type DepositRequest struct {
	OwnerID string `json:"owner_id"`
	Amount  string `json:"amount"`
}

// ReferralRequest credits referral earnings of an owner.
type ReferralRequest struct {
	OwnerID        string `json:"owner_id"`
	Amount         string `json:"amount"`
	ReferredUserID string `json:"referred_user_id"`
}

// CreateInvestmentRequest represents a request to open an investment.
type CreateInvestmentRequest struct {
	OwnerID     string         `json:"owner_id"`
	Principal   string         `json:"principal"`
	MonthlyRate string         `json:"monthly_rate,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInvestmentRequest) ToUseCaseInput() (usecase.CreateInvestmentInput, error) {
	principal, err := ParseAmount(r.Principal)
	if err != nil {
		return usecase.CreateInvestmentInput{}, err
	}

	rate := decimal.Zero
	if r.MonthlyRate != "" {
		rate, err = decimal.NewFromString(r.MonthlyRate)
		if err != nil {
			return usecase.CreateInvestmentInput{}, fmt.Errorf("%w: %q", domain.ErrInvalidMonthlyRate, r.MonthlyRate)
		}
	}

	return usecase.CreateInvestmentInput{
		OwnerID:     r.OwnerID,
		Principal:   principal,
		MonthlyRate: rate,
		Metadata:    r.Metadata,
	}, nil
}

// SendOtpRequest asks for a withdrawal one-time password.
type SendOtpRequest struct {
	OwnerID string `json:"owner_id"`
}

// CreateWithdrawalRequest represents a request to withdraw funds.
type CreateWithdrawalRequest struct {
	OwnerID            string `json:"owner_id"`
	Amount             string `json:"amount"`
	SourceBucket       string `json:"source_bucket"`
	DestinationAddress string `json:"destination_address"`
	Otp                string `json:"otp"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWithdrawalRequest) ToUseCaseInput() (usecase.CreateWithdrawalInput, error) {
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return usecase.CreateWithdrawalInput{}, err
	}

	return usecase.CreateWithdrawalInput{
		OwnerID:            r.OwnerID,
		Amount:             amount,
		SourceBucket:       domain.SourceBucket(r.SourceBucket),
		DestinationAddress: r.DestinationAddress,
		Otp:                r.Otp,
	}, nil
}

// ApproveWithdrawalRequest carries the reference of the admin's payout proof.
type ApproveWithdrawalRequest struct {
	AdminProofRef string `json:"admin_proof_ref"`
}

// UploadProofRequest carries the reference of the owner's receipt proof.
type UploadProofRequest struct {
	ProofRef string `json:"proof_ref"`
}

// VerifyWithdrawalRequest carries the reviewer's decision.
type VerifyWithdrawalRequest struct {
	Outcome string `json:"outcome"`
}

// TickRequest triggers the scheduler for a date (YYYY-MM-DD). Empty means today.
type TickRequest struct {
	Date string `json:"date,omitempty"`
}

// ParseDate returns the requested date or today's start of day.
func (r *TickRequest) ParseDate(now time.Time) (time.Time, error) {
	if r.Date == "" {
		return domain.StartOfDay(now), nil
	}
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", r.Date)
	}
	return date, nil
}

// ParseAmount parses a decimal amount given as a JSON string.
func ParseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, value)
	}
	return amount, nil
}
