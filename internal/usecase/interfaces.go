package usecase

import (
	"context"
	"time"

	"github.com/iho/goinvest/internal/domain"
)

// LedgerRepository defines data access for owner ledgers.
type LedgerRepository interface {
	GetByOwner(ctx context.Context, ownerID string) (*domain.Ledger, error)
	GetByOwnerForUpdate(ctx context.Context, tx Transaction, ownerID string) (*domain.Ledger, error)
	// GetOrCreateForUpdate locks the ledger of ownerID, creating an empty one first if needed.
	GetOrCreateForUpdate(ctx context.Context, tx Transaction, ownerID string, now time.Time) (*domain.Ledger, error)
	Update(ctx context.Context, tx Transaction, ledger *domain.Ledger) error
}

// InvestmentRepository defines data access for investments.
type InvestmentRepository interface {
	Create(ctx context.Context, tx Transaction, inv *domain.Investment) error
	GetByID(ctx context.Context, id string) (*domain.Investment, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Investment, error)
	Update(ctx context.Context, tx Transaction, inv *domain.Investment) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Investment, error)
	// ListDueForUpdate locks the active investments of ownerID whose next boundary is on or before date.
	ListDueForUpdate(ctx context.Context, tx Transaction, ownerID string, date time.Time) ([]*domain.Investment, error)
	// OwnersWithDue returns owners that have at least one active investment due on date.
	OwnersWithDue(ctx context.Context, date time.Time) ([]string, error)
}

// ReleaseRepository defines data access for pending principal releases.
type ReleaseRepository interface {
	Create(ctx context.Context, tx Transaction, rel *domain.PendingPrincipalRelease) error
	GetByInvestment(ctx context.Context, investmentID string) (*domain.PendingPrincipalRelease, error)
	Update(ctx context.Context, tx Transaction, rel *domain.PendingPrincipalRelease) error
	// ListDueForUpdate locks the pending releases of ownerID whose release date is on or before date.
	ListDueForUpdate(ctx context.Context, tx Transaction, ownerID string, date time.Time) ([]*domain.PendingPrincipalRelease, error)
	OwnersWithDue(ctx context.Context, date time.Time) ([]string, error)
}

// WithdrawalRepository defines data access for withdrawals.
type WithdrawalRepository interface {
	Create(ctx context.Context, tx Transaction, w *domain.Withdrawal) error
	GetByID(ctx context.Context, id string) (*domain.Withdrawal, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Withdrawal, error)
	Update(ctx context.Context, tx Transaction, w *domain.Withdrawal) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Withdrawal, error)
	// CountAwaitingProof counts withdrawals of ownerID waiting for the owner to upload a proof.
	CountAwaitingProof(ctx context.Context, tx Transaction, ownerID string) (int, error)
}

// TransactionLogRepository defines data access for the append-only transaction log.
type TransactionLogRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.TransactionLog) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.TransactionLog, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation that failed with a transient storage error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// OwnerLocker serializes commands on the same owner.
type OwnerLocker interface {
	// Lock blocks until the owner's lock is held or ctx is done.
	Lock(ctx context.Context, ownerID string) (unlock func(), err error)
}

// OTPService sends and checks one-time passwords for withdrawals.
type OTPService interface {
	Send(ctx context.Context, ownerID string) error
	// Validate checks code without spending it.
	Validate(ctx context.Context, ownerID, code string) (bool, error)
	// Consume spends code and reports false if it was already spent.
	Consume(ctx context.Context, ownerID, code string) (bool, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release forgets key so a failed request can be retried with it.
	Release(ctx context.Context, key string) error
}
