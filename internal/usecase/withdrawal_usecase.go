package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/infrastructure/metrics"
)

// WithdrawalUseCase handles the withdrawal verification workflow.
type WithdrawalUseCase struct {
	store   *Store
	otp     OTPService
	policy  WithdrawalPolicy
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewWithdrawalUseCase creates a new WithdrawalUseCase.
func NewWithdrawalUseCase(
	store *Store,
	otp OTPService,
	policy WithdrawalPolicy,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		store:   store,
		otp:     otp,
		policy:  policy,
		metrics: metrics,
		logger:  logger.With().Str("component", "withdrawals").Logger(),
	}
}

// CreateWithdrawalInput represents input for creating a withdrawal.
type CreateWithdrawalInput struct {
	OwnerID            string
	Amount             decimal.Decimal
	SourceBucket       domain.SourceBucket
	DestinationAddress string
	Otp                string
}

// SendWithdrawalOtp delivers a fresh one-time password to ownerID.
func (uc *WithdrawalUseCase) SendWithdrawalOtp(ctx context.Context, ownerID string) error {
	if err := domain.ValidateOwnerID(ownerID); err != nil {
		return err
	}
	if err := uc.otp.Send(ctx, ownerID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOTPUnavailable, err)
	}
	return nil
}

// CreateWithdrawal validates the request and debits the source bucket up front.
// Checks run in a fixed order: OTP, account block, outstanding proof uploads,
// minimum amount and finally the balance. An owner without a ledger has a zero
// balance.
func (uc *WithdrawalUseCase) CreateWithdrawal(ctx context.Context, input CreateWithdrawalInput) (*domain.Withdrawal, error) {
	w, err := uc.createWithdrawal(ctx, input)
	if err != nil {
		uc.countError(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsCreated.Inc()
	}

	return w, nil
}

func (uc *WithdrawalUseCase) createWithdrawal(ctx context.Context, input CreateWithdrawalInput) (*domain.Withdrawal, error) {
	if err := domain.ValidateOwnerID(input.OwnerID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	bucket, err := input.SourceBucket.LedgerBucket()
	if err != nil {
		return nil, err
	}

	// The collaborator is called before any lock is taken. The code is only
	// spent once every other check has passed.
	if err := uc.checkOtp(ctx, input.OwnerID, input.Otp); err != nil {
		return nil, err
	}

	var (
		w        *domain.Withdrawal
		otpSpent bool
	)
	err = uc.store.withOwnerTx(ctx, input.OwnerID, ledgerZero, func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error {
		if ledger.WithdrawalBlocked {
			return domain.ErrAccountWithdrawalBlocked
		}

		pending, err := uc.store.Withdrawals.CountAwaitingProof(ctx, tx, input.OwnerID)
		if err != nil {
			return err
		}
		if pending >= uc.policy.MaxPendingUploads {
			return domain.ErrTooManyPendingUploads
		}

		if input.Amount.LessThan(uc.policy.Minimum) {
			return fmt.Errorf("%w: minimum is %s", domain.ErrBelowMinimum, uc.policy.Minimum)
		}

		if err := ledger.Debit(bucket, input.Amount); err != nil {
			return err
		}

		// Every precondition holds, so the code may be spent. A retried
		// transaction must not see its own spend as a replay.
		if !otpSpent {
			if err := uc.consumeOtp(ctx, input.OwnerID, input.Otp); err != nil {
				return err
			}
			otpSpent = true
		}

		now := uc.store.now()
		w = domain.NewWithdrawal(uc.store.IDGen.Generate(), input.OwnerID, input.Amount, input.SourceBucket,
			strings.TrimSpace(input.DestinationAddress), now)

		if err := uc.store.Withdrawals.Create(ctx, tx, w); err != nil {
			return err
		}
		if err := uc.store.saveLedger(ctx, tx, ledger, now); err != nil {
			return err
		}
		if err := uc.store.logTx(ctx, tx, w.OwnerID, domain.TxKindWithdraw, w.Amount, domain.TxStatusPending, w.ID,
			"withdrawal from "+string(w.SourceBucket), now); err != nil {
			return err
		}
		return uc.store.emit(ctx, tx, domain.AggregateTypeWithdrawal, w.ID, domain.EventTypeWithdrawalCreated, withdrawalPayload(w), now)
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (uc *WithdrawalUseCase) checkOtp(ctx context.Context, ownerID, code string) error {
	if err := domain.ValidateOtpFormat(code); err != nil {
		return err
	}
	ok, err := uc.otp.Validate(ctx, ownerID, code)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOTPUnavailable, err)
	}
	if !ok {
		return domain.ErrInvalidOtp
	}
	return nil
}

// consumeOtp spends the code. A concurrent request that spent it first wins.
func (uc *WithdrawalUseCase) consumeOtp(ctx context.Context, ownerID, code string) error {
	ok, err := uc.otp.Consume(ctx, ownerID, code)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOTPUnavailable, err)
	}
	if !ok {
		return domain.ErrInvalidOtp
	}
	return nil
}

// AdminApproveWithdrawal records the admin approval of a pending withdrawal.
func (uc *WithdrawalUseCase) AdminApproveWithdrawal(ctx context.Context, id, adminProofRef string) (*domain.Withdrawal, error) {
	if strings.TrimSpace(adminProofRef) == "" {
		return nil, domain.ErrMissingReference
	}

	return uc.transition(ctx, id, domain.AuditActionWithdrawApprove, func(ctx context.Context, tx Transaction, ledger *domain.Ledger, w *domain.Withdrawal) (string, error) {
		if err := w.Approve(adminProofRef, uc.store.now()); err != nil {
			return "", err
		}
		return domain.EventTypeWithdrawalApproved, nil
	})
}

// UploadWithdrawalProof attaches the owner's proof and sends the withdrawal to review.
func (uc *WithdrawalUseCase) UploadWithdrawalProof(ctx context.Context, id, proofRef string) (*domain.Withdrawal, error) {
	if strings.TrimSpace(proofRef) == "" {
		return nil, domain.ErrMissingReference
	}

	return uc.transition(ctx, id, "", func(ctx context.Context, tx Transaction, ledger *domain.Ledger, w *domain.Withdrawal) (string, error) {
		if err := w.AttachProof(proofRef, uc.store.now()); err != nil {
			return "", err
		}
		return domain.EventTypeWithdrawalProofed, nil
	})
}

// VerifyWithdrawal applies the reviewer's outcome. The third failure blocks the
// withdrawal and every further withdrawal of the owner until support clears it.
func (uc *WithdrawalUseCase) VerifyWithdrawal(ctx context.Context, id string, outcome domain.VerificationOutcome) (*domain.Withdrawal, error) {
	if err := outcome.Validate(); err != nil {
		return nil, err
	}

	w, err := uc.transition(ctx, id, domain.AuditActionWithdrawVerify, func(ctx context.Context, tx Transaction, ledger *domain.Ledger, w *domain.Withdrawal) (string, error) {
		now := uc.store.now()

		blocked, err := w.Verify(outcome, now)
		if err != nil {
			return "", err
		}

		switch {
		case outcome == domain.OutcomeSuccess:
			if err := uc.store.logTx(ctx, tx, w.OwnerID, domain.TxKindWithdraw, w.Amount, domain.TxStatusCompleted, w.ID, "withdrawal verified", now); err != nil {
				return "", err
			}
			return domain.EventTypeWithdrawalCompleted, nil

		case blocked:
			ledger.WithdrawalBlocked = true
			if err := uc.store.saveLedger(ctx, tx, ledger, now); err != nil {
				return "", err
			}
			if err := uc.store.logTx(ctx, tx, w.OwnerID, domain.TxKindWithdrawBlocked, w.Amount, domain.TxStatusFailed, w.ID,
				fmt.Sprintf("blocked after %d failed verifications", w.VerificationAttempts), now); err != nil {
				return "", err
			}
			return domain.EventTypeWithdrawalBlocked, nil

		default:
			return domain.EventTypeWithdrawalFailed, nil
		}
	})
	if err != nil {
		return nil, err
	}

	if w.IsBlocked {
		uc.logger.Warn().
			Str("withdrawal_id", w.ID).
			Str("owner_id", w.OwnerID).
			Int("attempts", w.VerificationAttempts).
			Msg("withdrawal blocked")
	}

	return w, nil
}

// RejectWithdrawal cancels a withdrawal and returns its funds to the source bucket.
func (uc *WithdrawalUseCase) RejectWithdrawal(ctx context.Context, id string) (*domain.Withdrawal, error) {
	return uc.transition(ctx, id, domain.AuditActionWithdrawReject, func(ctx context.Context, tx Transaction, ledger *domain.Ledger, w *domain.Withdrawal) (string, error) {
		now := uc.store.now()

		bucket, err := w.SourceBucket.LedgerBucket()
		if err != nil {
			return "", err
		}
		if err := w.Reject(now); err != nil {
			return "", err
		}
		if err := ledger.Credit(bucket, w.Amount); err != nil {
			return "", err
		}
		if err := uc.store.saveLedger(ctx, tx, ledger, now); err != nil {
			return "", err
		}
		if err := uc.store.logTx(ctx, tx, w.OwnerID, domain.TxKindWithdrawReversal, w.Amount, domain.TxStatusRejected, w.ID,
			"withdrawal rejected", now); err != nil {
			return "", err
		}
		return domain.EventTypeWithdrawalRejected, nil
	})
}

// GetWithdrawal returns a withdrawal by ID.
func (uc *WithdrawalUseCase) GetWithdrawal(ctx context.Context, id string) (*domain.Withdrawal, error) {
	return uc.store.Withdrawals.GetByID(ctx, id)
}

// ListWithdrawals returns the withdrawals of ownerID, newest first.
func (uc *WithdrawalUseCase) ListWithdrawals(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Withdrawal, error) {
	limit, offset, err := domain.ValidatePagination(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.store.Withdrawals.ListByOwner(ctx, ownerID, limit, offset)
}

type withdrawalStep func(ctx context.Context, tx Transaction, ledger *domain.Ledger, w *domain.Withdrawal) (eventType string, err error)

// transition locks the owner and the withdrawal, applies step and persists the result.
func (uc *WithdrawalUseCase) transition(ctx context.Context, id string, action domain.AuditAction, step withdrawalStep) (*domain.Withdrawal, error) {
	current, err := uc.store.Withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var result *domain.Withdrawal
	err = uc.store.withOwnerTx(ctx, current.OwnerID, ledgerExisting, func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error {
		w, err := uc.store.Withdrawals.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		before := *w

		eventType, err := step(ctx, tx, ledger, w)
		if err != nil {
			return err
		}

		now := uc.store.now()
		if err := uc.store.Withdrawals.Update(ctx, tx, w); err != nil {
			return err
		}
		if err := uc.store.emit(ctx, tx, domain.AggregateTypeWithdrawal, w.ID, eventType, withdrawalPayload(w), now); err != nil {
			return err
		}
		if action != "" {
			if err := uc.store.audit(ctx, tx, action, "withdrawal", w.ID, before, w, now); err != nil {
				return err
			}
		}

		result = w
		return nil
	})
	if err != nil {
		uc.countError(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalTransitions.WithLabelValues(string(result.Status)).Inc()
		if result.IsBlocked && !current.IsBlocked {
			uc.metrics.WithdrawalsBlocked.Inc()
		}
	}

	return result, nil
}

func (uc *WithdrawalUseCase) countError(err error) {
	if uc.metrics != nil {
		uc.metrics.WithdrawalErrors.WithLabelValues(string(domain.KindOf(err))).Inc()
	}
}

func withdrawalPayload(w *domain.Withdrawal) map[string]any {
	return map[string]any{
		"withdrawal_id":         w.ID,
		"owner_id":              w.OwnerID,
		"amount":                w.Amount.String(),
		"source_bucket":         string(w.SourceBucket),
		"status":                string(w.Status),
		"verification_attempts": w.VerificationAttempts,
		"is_blocked":            w.IsBlocked,
	}
}
