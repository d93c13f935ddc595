package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending                   WithdrawalStatus = "pending"
	WithdrawalStatusAdminApproved             WithdrawalStatus = "admin_approved"
	WithdrawalStatusClientVerificationPending WithdrawalStatus = "client_verification_pending"
	WithdrawalStatusVerificationFailed        WithdrawalStatus = "verification_failed"
	WithdrawalStatusCompleted                 WithdrawalStatus = "completed"
	WithdrawalStatusRejected                  WithdrawalStatus = "rejected"

	// WithdrawalStatusAdminReview is an older label for client_verification_pending.
	WithdrawalStatusAdminReview WithdrawalStatus = "admin_review"
)

// Normalize maps legacy labels onto the canonical status set.
func (s WithdrawalStatus) Normalize() WithdrawalStatus {
	if s == WithdrawalStatusAdminReview {
		return WithdrawalStatusClientVerificationPending
	}
	return s
}

// IsTerminal reports whether no further transition is possible.
func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalStatusCompleted || s == WithdrawalStatusRejected
}

// SourceBucket is a withdrawable balance category.
type SourceBucket string

const (
	SourceReturns   SourceBucket = "returns"
	SourceReferral  SourceBucket = "referral"
	SourcePrincipal SourceBucket = "principal"
)

// LedgerBucket returns the ledger bucket a withdrawal source draws from.
// Released principal is credited to the available balance.
func (s SourceBucket) LedgerBucket() (Bucket, error) {
	switch s {
	case SourceReturns:
		return BucketReturns, nil
	case SourceReferral:
		return BucketReferral, nil
	case SourcePrincipal:
		return BucketAvailable, nil
	default:
		return "", ErrInvalidSourceBucket
	}
}

// VerificationOutcome is the decision of an external reviewer on an uploaded proof.
type VerificationOutcome string

const (
	OutcomeSuccess VerificationOutcome = "success"
	OutcomeFailure VerificationOutcome = "failure"
)

func (o VerificationOutcome) Validate() error {
	if o != OutcomeSuccess && o != OutcomeFailure {
		return ErrInvalidOutcome
	}
	return nil
}

// MaxVerificationAttempts is the number of failed verifications that blocks a withdrawal.
const MaxVerificationAttempts = 3

// Withdrawal is a request to move funds out of one ledger bucket.
type Withdrawal struct {
	ID                   string
	OwnerID              string
	Amount               decimal.Decimal
	SourceBucket         SourceBucket
	DestinationAddress   string
	Status               WithdrawalStatus
	VerificationAttempts int
	IsBlocked            bool
	AdminProofRef        string
	ProofRef             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewWithdrawal returns a pending withdrawal.
func NewWithdrawal(id, ownerID string, amount decimal.Decimal, source SourceBucket, destination string, now time.Time) *Withdrawal {
	return &Withdrawal{
		ID:                 id,
		OwnerID:            ownerID,
		Amount:             amount,
		SourceBucket:       source,
		DestinationAddress: destination,
		Status:             WithdrawalStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// AwaitsProof reports whether the owner still has to upload a proof.
func (w *Withdrawal) AwaitsProof() bool {
	if w.IsBlocked || w.ProofRef != "" {
		return false
	}
	return w.Status == WithdrawalStatusAdminApproved || w.Status == WithdrawalStatusVerificationFailed
}

// Approve records the admin approval and its proof reference.
func (w *Withdrawal) Approve(adminProofRef string, now time.Time) error {
	if w.Status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	if w.Status != WithdrawalStatusPending {
		return ErrInvalidTransition
	}
	w.Status = WithdrawalStatusAdminApproved
	w.AdminProofRef = adminProofRef
	w.UpdatedAt = now
	return nil
}

// AttachProof records the owner's proof and sends the withdrawal to review.
func (w *Withdrawal) AttachProof(proofRef string, now time.Time) error {
	if !w.AwaitsProof() {
		return ErrNotAwaitingProof
	}
	w.ProofRef = proofRef
	w.Status = WithdrawalStatusClientVerificationPending
	w.UpdatedAt = now
	return nil
}

// CanVerify checks if a verification outcome may be applied.
func (w *Withdrawal) CanVerify() error {
	if w.IsBlocked {
		return ErrAlreadyBlocked
	}
	if w.Status.Normalize().IsTerminal() {
		return ErrAlreadyTerminal
	}
	return nil
}

// Verify applies outcome and reports whether the withdrawal became blocked.
// Success requires a proof under review; failures count from any open state.
func (w *Withdrawal) Verify(outcome VerificationOutcome, now time.Time) (blocked bool, err error) {
	if err := outcome.Validate(); err != nil {
		return false, err
	}
	if err := w.CanVerify(); err != nil {
		return false, err
	}

	if outcome == OutcomeSuccess {
		// Only a reviewed proof can complete a withdrawal.
		if w.Status.Normalize() != WithdrawalStatusClientVerificationPending {
			return false, ErrInvalidTransition
		}
		w.Status = WithdrawalStatusCompleted
		w.UpdatedAt = now
		return false, nil
	}

	w.UpdatedAt = now
	w.VerificationAttempts++
	w.Status = WithdrawalStatusVerificationFailed
	w.ProofRef = ""
	if w.VerificationAttempts >= MaxVerificationAttempts {
		w.IsBlocked = true
	}
	return w.IsBlocked, nil
}

// Reject cancels a withdrawal that has not reached the proof stage.
func (w *Withdrawal) Reject(now time.Time) error {
	if w.Status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	if w.Status != WithdrawalStatusPending && w.Status != WithdrawalStatusAdminApproved {
		return ErrInvalidTransition
	}
	w.Status = WithdrawalStatusRejected
	w.UpdatedAt = now
	return nil
}
