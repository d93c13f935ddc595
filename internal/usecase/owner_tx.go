package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
)

// Store bundles the repositories and transaction plumbing shared by the use cases.
type Store struct {
	TxManager   TransactionManager
	Retrier     Retrier
	Locker      OwnerLocker
	Ledgers     LedgerRepository
	Investments InvestmentRepository
	Releases    ReleaseRepository
	Withdrawals WithdrawalRepository
	TxLog       TransactionLogRepository
	Outbox      OutboxRepository
	Audit       AuditRepository
	IDGen       IDGenerator
	Clock       Clock
}

func (s *Store) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

type ownerTxFunc func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error

// ledgerMode says how withOwnerTx treats an owner without a ledger row.
type ledgerMode int

const (
	// ledgerExisting fails with domain.ErrLedgerNotFound.
	ledgerExisting ledgerMode = iota
	// ledgerCreate inserts an empty ledger first.
	ledgerCreate
	// ledgerZero hands fn an unsaved zero-balance ledger, so debits fail
	// with domain.ErrInsufficientFunds.
	ledgerZero
)

// withOwnerTx runs fn under the owner lock inside one database transaction that holds
// the ledger row lock.
func (s *Store) withOwnerTx(ctx context.Context, ownerID string, mode ledgerMode, fn ownerTxFunc) error {
	unlock, err := s.Locker.Lock(ctx, ownerID)
	if err != nil {
		return err
	}
	defer unlock()

	op := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := s.TxManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		var ledger *domain.Ledger
		if mode == ledgerCreate {
			ledger, err = s.Ledgers.GetOrCreateForUpdate(txCtx, tx, ownerID, s.now())
		} else {
			ledger, err = s.Ledgers.GetByOwnerForUpdate(txCtx, tx, ownerID)
			if mode == ledgerZero && errors.Is(err, domain.ErrLedgerNotFound) {
				ledger, err = domain.NewLedger(ownerID, s.now()), nil
			}
		}
		if err != nil {
			return err
		}

		if err := fn(txCtx, tx, ledger); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if s.Retrier == nil {
		return op()
	}
	return s.Retrier.Retry(ctx, op)
}

// saveLedger stamps and persists a ledger changed inside fn.
func (s *Store) saveLedger(ctx context.Context, tx Transaction, ledger *domain.Ledger, now time.Time) error {
	ledger.Touch(now)
	return s.Ledgers.Update(ctx, tx, ledger)
}

func (s *Store) logTx(
	ctx context.Context,
	tx Transaction,
	ownerID string,
	kind domain.TransactionKind,
	amount decimal.Decimal,
	status domain.TransactionStatus,
	relatedID, description string,
	now time.Time,
) error {
	return s.TxLog.Create(ctx, tx, &domain.TransactionLog{
		ID:              s.IDGen.Generate(),
		OwnerID:         ownerID,
		Kind:            kind,
		Amount:          amount,
		Status:          status,
		RelatedEntityID: relatedID,
		Description:     description,
		Timestamp:       now,
	})
}

func (s *Store) emit(
	ctx context.Context,
	tx Transaction,
	aggregateType, aggregateID, eventType string,
	payload map[string]any,
	now time.Time,
) error {
	if s.Outbox == nil {
		return nil
	}
	event := domain.NewOutboxEvent(s.IDGen.Generate(), aggregateType, aggregateID, eventType, payload, now)
	return s.Outbox.Create(ctx, tx, event)
}

func (s *Store) audit(
	ctx context.Context,
	tx Transaction,
	action domain.AuditAction,
	resourceType, resourceID string,
	before, after any,
	now time.Time,
) error {
	if s.Audit == nil {
		return nil
	}
	return s.Audit.CreateTx(ctx, tx, s.newAuditLog(ctx, action, resourceType, resourceID, before, after, nil, now))
}

// auditOutcome records an action that ran outside a single owner transaction,
// in a transaction of its own. A non-nil opErr marks the entry as failed.
func (s *Store) auditOutcome(
	ctx context.Context,
	action domain.AuditAction,
	resourceType, resourceID string,
	after any,
	opErr error,
	now time.Time,
) error {
	if s.Audit == nil {
		return nil
	}

	tx, err := s.TxManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.Audit.CreateTx(ctx, tx, s.newAuditLog(ctx, action, resourceType, resourceID, nil, after, opErr, now)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) newAuditLog(
	ctx context.Context,
	action domain.AuditAction,
	resourceType, resourceID string,
	before, after any,
	opErr error,
	now time.Time,
) *domain.AuditLog {
	log := &domain.AuditLog{
		ID:           s.IDGen.Generate(),
		UserID:       domain.ActorID(ctx),
		Action:       string(action),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}
	if opErr != nil {
		log.Status = string(domain.AuditStatusFailure)
		log.ErrorMessage = opErr.Error()
	}
	return log
}
