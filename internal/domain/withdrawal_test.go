package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestWithdrawal() *Withdrawal {
	return NewWithdrawal("w-1", "owner-1", decimal.NewFromInt(50), SourceReturns, "addr", date(2024, time.May, 1))
}

func TestWithdrawal_HappyPath(t *testing.T) {
	w := newTestWithdrawal()
	now := date(2024, time.May, 2)

	if err := w.Approve("admin-proof", now); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !w.AwaitsProof() {
		t.Fatal("expected withdrawal to await proof after approval")
	}
	if err := w.AttachProof("proof-1", now); err != nil {
		t.Fatalf("AttachProof: %v", err)
	}
	if w.Status != WithdrawalStatusClientVerificationPending {
		t.Errorf("expected client_verification_pending, got %s", w.Status)
	}

	blocked, err := w.Verify(OutcomeSuccess, now)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if blocked {
		t.Error("success must not block")
	}
	if w.Status != WithdrawalStatusCompleted {
		t.Errorf("expected completed, got %s", w.Status)
	}
}

func TestWithdrawal_BlocksAfterThreeFailures(t *testing.T) {
	w := newTestWithdrawal()
	now := date(2024, time.May, 2)

	for i := 1; i <= MaxVerificationAttempts; i++ {
		blocked, err := w.Verify(OutcomeFailure, now)
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if w.VerificationAttempts != i {
			t.Errorf("attempt %d: VerificationAttempts = %d", i, w.VerificationAttempts)
		}
		if blocked != (i == MaxVerificationAttempts) {
			t.Errorf("attempt %d: blocked = %v", i, blocked)
		}
	}

	if _, err := w.Verify(OutcomeFailure, now); !errors.Is(err, ErrAlreadyBlocked) {
		t.Fatalf("expected ErrAlreadyBlocked on fourth verification, got %v", err)
	}
	if w.VerificationAttempts != MaxVerificationAttempts {
		t.Errorf("blocked verification must not count, got %d", w.VerificationAttempts)
	}
	if err := w.AttachProof("late", now); !errors.Is(err, ErrNotAwaitingProof) {
		t.Errorf("expected ErrNotAwaitingProof on blocked withdrawal, got %v", err)
	}
}

func TestWithdrawal_FailureReopensProofUpload(t *testing.T) {
	w := newTestWithdrawal()
	now := date(2024, time.May, 2)
	_ = w.Approve("admin-proof", now)
	_ = w.AttachProof("proof-1", now)

	if _, err := w.Verify(OutcomeFailure, now); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !w.AwaitsProof() {
		t.Fatal("failed verification should reopen proof upload")
	}
	if err := w.AttachProof("proof-2", now); err != nil {
		t.Fatalf("AttachProof after failure: %v", err)
	}
}

func TestWithdrawal_Transitions(t *testing.T) {
	now := date(2024, time.May, 2)

	tests := []struct {
		name   string
		status WithdrawalStatus
		action func(w *Withdrawal) error
		want   error
	}{
		{"approve twice", WithdrawalStatusAdminApproved, func(w *Withdrawal) error { return w.Approve("x", now) }, ErrInvalidTransition},
		{"approve completed", WithdrawalStatusCompleted, func(w *Withdrawal) error { return w.Approve("x", now) }, ErrAlreadyTerminal},
		{"reject pending", WithdrawalStatusPending, func(w *Withdrawal) error { return w.Reject(now) }, nil},
		{"reject approved", WithdrawalStatusAdminApproved, func(w *Withdrawal) error { return w.Reject(now) }, nil},
		{"reject under review", WithdrawalStatusClientVerificationPending, func(w *Withdrawal) error { return w.Reject(now) }, ErrInvalidTransition},
		{"reject rejected", WithdrawalStatusRejected, func(w *Withdrawal) error { return w.Reject(now) }, ErrAlreadyTerminal},
		{"proof on pending", WithdrawalStatusPending, func(w *Withdrawal) error { return w.AttachProof("p", now) }, ErrNotAwaitingProof},
		{"verify completed", WithdrawalStatusCompleted, func(w *Withdrawal) error { _, err := w.Verify(OutcomeSuccess, now); return err }, ErrAlreadyTerminal},
		{"verify legacy review label", WithdrawalStatusAdminReview, func(w *Withdrawal) error { _, err := w.Verify(OutcomeSuccess, now); return err }, nil},
		{"verify success on pending", WithdrawalStatusPending, func(w *Withdrawal) error { _, err := w.Verify(OutcomeSuccess, now); return err }, ErrInvalidTransition},
		{"verify success on approved", WithdrawalStatusAdminApproved, func(w *Withdrawal) error { _, err := w.Verify(OutcomeSuccess, now); return err }, ErrInvalidTransition},
		{"verify success after failure", WithdrawalStatusVerificationFailed, func(w *Withdrawal) error { _, err := w.Verify(OutcomeSuccess, now); return err }, ErrInvalidTransition},
		{"verify failure on pending", WithdrawalStatusPending, func(w *Withdrawal) error { _, err := w.Verify(OutcomeFailure, now); return err }, nil},
		{"verify unknown outcome", WithdrawalStatusPending, func(w *Withdrawal) error { _, err := w.Verify("maybe", now); return err }, ErrInvalidOutcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWithdrawal()
			w.Status = tt.status

			err := tt.action(w)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
