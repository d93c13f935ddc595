package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLedger_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		debitAmount decimal.Decimal
		bucket      Bucket
		expectError error
	}{
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(50),
			bucket:      BucketAvailable,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(100),
			bucket:      BucketAvailable,
		},
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(150),
			bucket:      BucketAvailable,
			expectError: ErrInsufficientFunds,
		},
		{
			name:        "zero debit",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.Zero,
			bucket:      BucketAvailable,
			expectError: ErrInvalidAmount,
		},
		{
			name:        "unknown bucket",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(1),
			bucket:      Bucket("savings"),
			expectError: ErrUnknownBucket,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Ledger{AvailableBalance: tt.balance}

			err := l.ValidateDebit(tt.bucket, tt.debitAmount)

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestLedger_DebitLeavesBalanceOnError(t *testing.T) {
	l := &Ledger{AccruedReturns: decimal.NewFromInt(20)}

	if err := l.Debit(BucketReturns, decimal.NewFromInt(25)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if !l.AccruedReturns.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected balance untouched, got %s", l.AccruedReturns)
	}
}

func TestLedger_Move(t *testing.T) {
	l := NewLedger("owner-1", time.Now())
	l.AvailableBalance = decimal.NewFromInt(500)

	if err := l.Move(BucketAvailable, BucketInvested, decimal.NewFromInt(200)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !l.AvailableBalance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected available 300, got %s", l.AvailableBalance)
	}
	if !l.InvestedPrincipal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected invested 200, got %s", l.InvestedPrincipal)
	}

	if err := l.Move(BucketAvailable, Bucket("nowhere"), decimal.NewFromInt(1)); !errors.Is(err, ErrUnknownBucket) {
		t.Fatalf("expected ErrUnknownBucket, got %v", err)
	}
	if !l.AvailableBalance.Equal(decimal.NewFromInt(300)) {
		t.Errorf("failed move must not debit, got %s", l.AvailableBalance)
	}
}

func TestLedger_Credit(t *testing.T) {
	l := NewLedger("owner-1", time.Now())

	if err := l.Credit(BucketReferral, decimal.NewFromInt(30)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Credit(BucketReferral, decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	got, _ := l.Balance(BucketReferral)
	if !got.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected referral 30, got %s", got)
	}
}

func TestSourceBucket_LedgerBucket(t *testing.T) {
	tests := []struct {
		source SourceBucket
		want   Bucket
		err    error
	}{
		{SourceReturns, BucketReturns, nil},
		{SourceReferral, BucketReferral, nil},
		{SourcePrincipal, BucketAvailable, nil},
		{SourceBucket("invested"), "", ErrInvalidSourceBucket},
	}

	for _, tt := range tests {
		got, err := tt.source.LedgerBucket()
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: expected error %v, got %v", tt.source, tt.err, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected bucket %s, got %s", tt.source, tt.want, got)
		}
	}
}
