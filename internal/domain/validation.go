package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidOwnerID   = errors.New("invalid owner ID")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall   = errors.New("amount below minimum allowed")
	ErrMetadataTooLarge = errors.New("metadata size exceeds limit")
)

// Validation constants
const (
	MaxOwnerIDLength = 64
	MaxMetadataSize  = 10240 // 10KB
	MaxAmount        = "1000000000000"
	MinAmount        = "0.01"

	// MoneyScale is the number of decimal places amounts are rounded to.
	MoneyScale = 2
)

var (
	ownerIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	otpRegex     = regexp.MustCompile(`^[0-9]{6}$`)
)

// ValidateOwnerID validates an owner identifier.
func ValidateOwnerID(ownerID string) error {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return fmt.Errorf("%w: owner ID cannot be empty", ErrInvalidOwnerID)
	}
	if len(ownerID) > MaxOwnerIDLength {
		return fmt.Errorf("%w: owner ID exceeds %d characters", ErrInvalidOwnerID, MaxOwnerIDLength)
	}
	if !ownerIDRegex.MatchString(ownerID) {
		return fmt.Errorf("%w: owner ID contains forbidden characters", ErrInvalidOwnerID)
	}
	return nil
}

// ValidateAmount validates a monetary amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount, _ := decimal.NewFromString(MinAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinAmount)
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	if !amount.Equal(amount.Round(MoneyScale)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidAmount, MoneyScale)
	}

	return nil
}

// ValidateOtpFormat checks that code is exactly six digits.
func ValidateOtpFormat(code string) error {
	if !otpRegex.MatchString(code) {
		return ErrInvalidOtp
	}
	return nil
}

// ValidateMetadata validates metadata size
func ValidateMetadata(metadata map[string]any) error {
	if metadata == nil {
		return nil
	}

	// Estimate size (rough approximation)
	size := 0
	for k, v := range metadata {
		size += len(k)
		size += len(fmt.Sprintf("%v", v))
	}

	if size > MaxMetadataSize {
		return fmt.Errorf("%w: metadata size %d bytes exceeds limit of %d bytes", ErrMetadataTooLarge, size, MaxMetadataSize)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
