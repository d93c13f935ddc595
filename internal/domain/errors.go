package domain

import "errors"

var (
	// Ledger errors
	ErrLedgerNotFound    = errors.New("ledger not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownBucket     = errors.New("unknown balance bucket")

	// Investment errors
	ErrInvestmentNotFound     = errors.New("investment not found")
	ErrNotMature              = errors.New("investment is not mature")
	ErrWithdrawalWindowClosed = errors.New("investment closure window is closed")
	ErrInvalidMonthlyRate     = errors.New("monthly rate must be between 0 and 1")

	// Release errors
	ErrReleaseNotFound = errors.New("principal release not found")

	// Withdrawal errors
	ErrWithdrawalNotFound       = errors.New("withdrawal not found")
	ErrInvalidOtp               = errors.New("invalid one-time password")
	ErrTooManyPendingUploads    = errors.New("too many withdrawals awaiting proof upload")
	ErrBelowMinimum             = errors.New("amount is below the minimum withdrawal")
	ErrNotAwaitingProof         = errors.New("withdrawal is not awaiting a proof upload")
	ErrAlreadyBlocked           = errors.New("withdrawal is blocked after repeated failed verifications")
	ErrAlreadyTerminal          = errors.New("withdrawal is already completed or rejected")
	ErrInvalidTransition        = errors.New("withdrawal cannot move to the requested state")
	ErrAccountWithdrawalBlocked = errors.New("withdrawals are blocked for this account")
	ErrInvalidSourceBucket      = errors.New("invalid withdrawal source bucket")
	ErrMissingReference         = errors.New("proof reference is required")
	ErrInvalidOutcome           = errors.New("verification outcome must be success or failure")

	// Collaborator errors
	ErrOTPUnavailable = errors.New("otp service unavailable")
	ErrOwnerBusy      = errors.New("another operation on this owner is in progress")
)

// ErrorKind groups errors by how the caller is expected to react.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
	KindForbidden  ErrorKind = "forbidden"
	KindTransient  ErrorKind = "transient"
	KindInternal   ErrorKind = "internal"
)

var errorKinds = map[error]ErrorKind{
	ErrInvalidAmount:       KindValidation,
	ErrInsufficientFunds:   KindValidation,
	ErrUnknownBucket:       KindValidation,
	ErrInvalidMonthlyRate:  KindValidation,
	ErrInvalidOtp:          KindValidation,
	ErrBelowMinimum:        KindValidation,
	ErrInvalidSourceBucket: KindValidation,
	ErrMissingReference:    KindValidation,
	ErrInvalidOutcome:      KindValidation,
	ErrAmountTooLarge:      KindValidation,
	ErrAmountTooSmall:      KindValidation,
	ErrMetadataTooLarge:    KindValidation,
	ErrInvalidOwnerID:      KindValidation,

	ErrNotMature:                KindConflict,
	ErrWithdrawalWindowClosed:   KindConflict,
	ErrTooManyPendingUploads:    KindConflict,
	ErrNotAwaitingProof:         KindConflict,
	ErrAlreadyBlocked:           KindConflict,
	ErrAlreadyTerminal:          KindConflict,
	ErrInvalidTransition:        KindConflict,
	ErrAccountWithdrawalBlocked: KindConflict,

	ErrLedgerNotFound:     KindNotFound,
	ErrInvestmentNotFound: KindNotFound,
	ErrReleaseNotFound:    KindNotFound,
	ErrWithdrawalNotFound: KindNotFound,

	ErrUnauthorized:     KindForbidden,
	ErrInsufficientRole: KindForbidden,

	ErrOTPUnavailable: KindTransient,
	ErrOwnerBusy:      KindTransient,
}

// KindOf classifies err by the first known sentinel in its chain.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for sentinel, kind := range errorKinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}
