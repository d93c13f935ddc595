package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/infrastructure/metrics"
)

// LedgerUseCase handles funding and support operations on owner ledgers.
type LedgerUseCase struct {
	store   *Store
	metrics *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(store *Store, metrics *metrics.Metrics) *LedgerUseCase {
	return &LedgerUseCase{
		store:   store,
		metrics: metrics,
	}
}

// Deposit credits the available balance of ownerID, creating the ledger if needed.
func (uc *LedgerUseCase) Deposit(ctx context.Context, ownerID string, amount decimal.Decimal) (*domain.Ledger, error) {
	if err := domain.ValidateOwnerID(ownerID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var result *domain.Ledger
	err := uc.store.withOwnerTx(ctx, ownerID, ledgerCreate, func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error {
		before := *ledger
		now := uc.store.now()

		if err := ledger.Credit(domain.BucketAvailable, amount); err != nil {
			return err
		}
		if err := uc.store.saveLedger(ctx, tx, ledger, now); err != nil {
			return err
		}
		if err := uc.store.logTx(ctx, tx, ownerID, domain.TxKindDeposit, amount, domain.TxStatusCompleted, "", "deposit", now); err != nil {
			return err
		}
		if err := uc.store.emit(ctx, tx, domain.AggregateTypeLedger, ownerID, domain.EventTypeLedgerCredited, map[string]any{
			"owner_id": ownerID,
			"bucket":   string(domain.BucketAvailable),
			"amount":   amount.String(),
		}, now); err != nil {
			return err
		}
		if err := uc.store.audit(ctx, tx, domain.AuditActionLedgerDeposit, "ledger", ownerID, before, ledger, now); err != nil {
			return err
		}

		result = ledger
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LedgerOperations.WithLabelValues("deposit").Inc()
	}

	return result, nil
}

// CreditReferral credits referral earnings of ownerID for bringing in referredUserID.
func (uc *LedgerUseCase) CreditReferral(ctx context.Context, ownerID string, amount decimal.Decimal, referredUserID string) (*domain.Ledger, error) {
	if err := domain.ValidateOwnerID(ownerID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	var result *domain.Ledger
	err := uc.store.withOwnerTx(ctx, ownerID, ledgerCreate, func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error {
		before := *ledger
		now := uc.store.now()

		if err := ledger.Credit(domain.BucketReferral, amount); err != nil {
			return err
		}
		if err := uc.store.saveLedger(ctx, tx, ledger, now); err != nil {
			return err
		}
		if err := uc.store.logTx(ctx, tx, ownerID, domain.TxKindReferral, amount, domain.TxStatusCompleted, referredUserID, "referral bonus", now); err != nil {
			return err
		}
		if err := uc.store.emit(ctx, tx, domain.AggregateTypeLedger, ownerID, domain.EventTypeLedgerCredited, map[string]any{
			"owner_id":         ownerID,
			"bucket":           string(domain.BucketReferral),
			"amount":           amount.String(),
			"referred_user_id": referredUserID,
		}, now); err != nil {
			return err
		}
		if err := uc.store.audit(ctx, tx, domain.AuditActionLedgerReferral, "ledger", ownerID, before, ledger, now); err != nil {
			return err
		}

		result = ledger
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LedgerOperations.WithLabelValues("referral").Inc()
	}

	return result, nil
}

// UnblockWithdrawals clears the withdrawal block of ownerID. It is a support action and
// is never triggered by the engine itself.
func (uc *LedgerUseCase) UnblockWithdrawals(ctx context.Context, ownerID string) (*domain.Ledger, error) {
	var result *domain.Ledger
	err := uc.store.withOwnerTx(ctx, ownerID, ledgerExisting, func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error {
		result = ledger
		if !ledger.WithdrawalBlocked {
			return nil
		}

		before := *ledger
		now := uc.store.now()
		ledger.WithdrawalBlocked = false

		if err := uc.store.saveLedger(ctx, tx, ledger, now); err != nil {
			return err
		}
		if err := uc.store.emit(ctx, tx, domain.AggregateTypeLedger, ownerID, domain.EventTypeLedgerUnblocked, map[string]any{
			"owner_id": ownerID,
		}, now); err != nil {
			return err
		}
		return uc.store.audit(ctx, tx, domain.AuditActionLedgerUnblock, "ledger", ownerID, before, ledger, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LedgerOperations.WithLabelValues("unblock").Inc()
	}

	return result, nil
}

// GetBalances returns the current ledger of ownerID.
func (uc *LedgerUseCase) GetBalances(ctx context.Context, ownerID string) (*domain.Ledger, error) {
	return uc.store.Ledgers.GetByOwner(ctx, ownerID)
}

// ListTransactions returns the transaction log of ownerID, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, ownerID string, limit, offset int) ([]*domain.TransactionLog, error) {
	limit, offset, err := domain.ValidatePagination(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.store.TxLog.ListByOwner(ctx, ownerID, limit, offset)
}
