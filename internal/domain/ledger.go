package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bucket names one balance category of a ledger.
type Bucket string

const (
	BucketAvailable Bucket = "available"
	BucketInvested  Bucket = "invested"
	BucketReturns   Bucket = "returns"
	BucketReferral  Bucket = "referral"
)

// Ledger holds the balances of a single owner.
type Ledger struct {
	OwnerID           string
	AvailableBalance  decimal.Decimal
	InvestedPrincipal decimal.Decimal
	AccruedReturns    decimal.Decimal
	ReferralEarnings  decimal.Decimal
	WithdrawalBlocked bool
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewLedger returns an empty ledger for ownerID.
func NewLedger(ownerID string, now time.Time) *Ledger {
	return &Ledger{
		OwnerID:           ownerID,
		AvailableBalance:  decimal.Zero,
		InvestedPrincipal: decimal.Zero,
		AccruedReturns:    decimal.Zero,
		ReferralEarnings:  decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (l *Ledger) bucket(b Bucket) (*decimal.Decimal, error) {
	switch b {
	case BucketAvailable:
		return &l.AvailableBalance, nil
	case BucketInvested:
		return &l.InvestedPrincipal, nil
	case BucketReturns:
		return &l.AccruedReturns, nil
	case BucketReferral:
		return &l.ReferralEarnings, nil
	default:
		return nil, ErrUnknownBucket
	}
}

// Balance returns the balance held in bucket b.
func (l *Ledger) Balance(b Bucket) (decimal.Decimal, error) {
	p, err := l.bucket(b)
	if err != nil {
		return decimal.Zero, err
	}
	return *p, nil
}

// ValidateDebit checks if bucket b can be debited by amount.
func (l *Ledger) ValidateDebit(b Bucket, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	p, err := l.bucket(b)
	if err != nil {
		return err
	}
	if p.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// Debit removes amount from bucket b. The ledger is unchanged on error.
func (l *Ledger) Debit(b Bucket, amount decimal.Decimal) error {
	if err := l.ValidateDebit(b, amount); err != nil {
		return err
	}
	p, _ := l.bucket(b)
	*p = p.Sub(amount)
	return nil
}

// Credit adds amount to bucket b.
func (l *Ledger) Credit(b Bucket, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	p, err := l.bucket(b)
	if err != nil {
		return err
	}
	*p = p.Add(amount)
	return nil
}

// Move debits from and credits to in one step.
func (l *Ledger) Move(from, to Bucket, amount decimal.Decimal) error {
	if _, err := l.bucket(to); err != nil {
		return err
	}
	if err := l.Debit(from, amount); err != nil {
		return err
	}
	return l.Credit(to, amount)
}

// Touch bumps the version and update time before the ledger is persisted.
func (l *Ledger) Touch(now time.Time) {
	l.Version++
	l.UpdatedAt = now
}
