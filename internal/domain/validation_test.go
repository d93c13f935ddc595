package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateOwnerID(t *testing.T) {
	t.Parallel()

	t.Run("valid owner", func(t *testing.T) {
		if err := ValidateOwnerID("user_01HZX-42"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty owner rejected", func(t *testing.T) {
		err := ValidateOwnerID("   ")
		if !errors.Is(err, ErrInvalidOwnerID) {
			t.Fatalf("expected ErrInvalidOwnerID, got %v", err)
		}
	})

	t.Run("owner too long", func(t *testing.T) {
		err := ValidateOwnerID(strings.Repeat("a", MaxOwnerIDLength+1))
		if !errors.Is(err, ErrInvalidOwnerID) {
			t.Fatalf("expected ErrInvalidOwnerID, got %v", err)
		}
	})

	t.Run("owner with forbidden characters", func(t *testing.T) {
		err := ValidateOwnerID("alice; DROP TABLE ledgers;")
		if !errors.Is(err, ErrInvalidOwnerID) {
			t.Fatalf("expected ErrInvalidOwnerID, got %v", err)
		}
	})
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.RequireFromString("100.25")); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("0.001")); !errors.Is(err, ErrAmountTooSmall) {
		t.Fatalf("expected ErrAmountTooSmall, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("10.005")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for sub-cent precision, got %v", err)
	}

	huge := decimal.RequireFromString(MaxAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateOtpFormat(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"123456", "000000"} {
		if err := ValidateOtpFormat(code); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", code, err)
		}
	}

	for _, code := range []string{"", "12345", "1234567", "12a456", " 123456"} {
		if err := ValidateOtpFormat(code); !errors.Is(err, ErrInvalidOtp) {
			t.Fatalf("expected ErrInvalidOtp for %q, got %v", code, err)
		}
	}
}

func TestValidateMetadata(t *testing.T) {
	t.Parallel()

	if err := ValidateMetadata(nil); err != nil {
		t.Fatalf("expected nil metadata to be allowed, got %v", err)
	}

	valid := map[string]any{"plan": "gold", "term": 12}
	if err := ValidateMetadata(valid); err != nil {
		t.Fatalf("expected valid metadata, got %v", err)
	}

	oversized := map[string]any{
		"payload": strings.Repeat("x", MaxMetadataSize),
	}
	if err := ValidateMetadata(oversized); !errors.Is(err, ErrMetadataTooLarge) {
		t.Fatalf("expected ErrMetadataTooLarge, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset, _ := ValidatePagination(0, -5)
	if limit != 50 || offset != 0 {
		t.Fatalf("expected defaults 50/0, got %d/%d", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 0)
	if limit != 1000 {
		t.Fatalf("expected limit capped at 1000, got %d", limit)
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want ErrorKind
	}{
		{ErrInvalidOtp, KindValidation},
		{ErrBelowMinimum, KindValidation},
		{ErrNotMature, KindConflict},
		{ErrAccountWithdrawalBlocked, KindConflict},
		{ErrWithdrawalNotFound, KindNotFound},
		{ErrOTPUnavailable, KindTransient},
		{errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
