package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
)

// AmountPolicy validates the principal of a new investment.
type AmountPolicy interface {
	Validate(amount decimal.Decimal) error
}

// StepAmountPolicy accepts amounts of at least Min that are a multiple of Step.
type StepAmountPolicy struct {
	Min  decimal.Decimal
	Step decimal.Decimal
}

// DefaultAmountPolicy returns the policy used when none is configured.
func DefaultAmountPolicy() StepAmountPolicy {
	return StepAmountPolicy{
		Min:  decimal.RequireFromString(DefaultMinimumPrincipal),
		Step: decimal.RequireFromString(DefaultPrincipalStep),
	}
}

func (p StepAmountPolicy) Validate(amount decimal.Decimal) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}
	if amount.LessThan(p.Min) {
		return fmt.Errorf("%w: minimum investment is %s", domain.ErrInvalidAmount, p.Min)
	}
	if p.Step.IsPositive() && !amount.Mod(p.Step).IsZero() {
		return fmt.Errorf("%w: investment must be a multiple of %s", domain.ErrInvalidAmount, p.Step)
	}
	return nil
}

// InvestmentPolicy holds the tunables of the investment lifecycle.
type InvestmentPolicy struct {
	Amount             AmountPolicy
	DefaultMonthlyRate decimal.Decimal
	ClosureDay         int
}

// DefaultInvestmentPolicy returns the built-in investment tunables.
func DefaultInvestmentPolicy() InvestmentPolicy {
	return InvestmentPolicy{
		Amount:             DefaultAmountPolicy(),
		DefaultMonthlyRate: decimal.RequireFromString(DefaultMonthlyRate),
		ClosureDay:         DefaultClosureDay,
	}
}

// WithdrawalPolicy holds the tunables of the withdrawal workflow.
type WithdrawalPolicy struct {
	Minimum           decimal.Decimal
	MaxPendingUploads int
}

// DefaultWithdrawalPolicy returns the built-in withdrawal tunables.
func DefaultWithdrawalPolicy() WithdrawalPolicy {
	return WithdrawalPolicy{
		Minimum:           decimal.RequireFromString(DefaultMinimumWithdrawal),
		MaxPendingUploads: DefaultMaxPendingUploads,
	}
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
