package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

const ledgerColumns = `owner_id, available_balance, invested_principal, accrued_returns, referral_earnings,
	withdrawal_blocked, version, created_at, updated_at`

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	db DBTX
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetByOwner retrieves the ledger of ownerID.
func (r *LedgerRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Ledger, error) {
	return scanLedger(r.db.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE owner_id = $1`, ownerID))
}

// GetByOwnerForUpdate retrieves the ledger of ownerID with a FOR UPDATE lock.
func (r *LedgerRepository) GetByOwnerForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string) (*domain.Ledger, error) {
	return scanLedger(pgxTx(tx).QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE owner_id = $1 FOR UPDATE`, ownerID))
}

// GetOrCreateForUpdate locks the ledger of ownerID, inserting an empty one first if needed.
func (r *LedgerRepository) GetOrCreateForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, now time.Time) (*domain.Ledger, error) {
	q := pgxTx(tx)

	_, err := q.Exec(ctx, `
		INSERT INTO ledgers (owner_id, created_at, updated_at)
		VALUES ($1, $2, $2)
		ON CONFLICT (owner_id) DO NOTHING`,
		ownerID, timeToPgTimestamptz(now),
	)
	if err != nil {
		return nil, err
	}

	return scanLedger(q.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE owner_id = $1 FOR UPDATE`, ownerID))
}

// Update writes all balances and flags of ledger.
func (r *LedgerRepository) Update(ctx context.Context, tx usecase.Transaction, ledger *domain.Ledger) error {
	tag, err := pgxTx(tx).Exec(ctx, `
		UPDATE ledgers
		SET available_balance = $2, invested_principal = $3, accrued_returns = $4, referral_earnings = $5,
		    withdrawal_blocked = $6, version = $7, updated_at = $8
		WHERE owner_id = $1`,
		ledger.OwnerID,
		decimalToNumeric(ledger.AvailableBalance),
		decimalToNumeric(ledger.InvestedPrincipal),
		decimalToNumeric(ledger.AccruedReturns),
		decimalToNumeric(ledger.ReferralEarnings),
		ledger.WithdrawalBlocked,
		ledger.Version,
		timeToPgTimestamptz(ledger.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLedgerNotFound
	}
	return nil
}

func scanLedger(row pgx.Row) (*domain.Ledger, error) {
	var l domain.Ledger
	var available, invested, returns, referral pgtype.Numeric
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&l.OwnerID, &available, &invested, &returns, &referral,
		&l.WithdrawalBlocked, &l.Version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}

	l.AvailableBalance = numericToDecimal(available)
	l.InvestedPrincipal = numericToDecimal(invested)
	l.AccruedReturns = numericToDecimal(returns)
	l.ReferralEarnings = numericToDecimal(referral)
	l.CreatedAt = createdAt.Time.UTC()
	l.UpdatedAt = updatedAt.Time.UTC()

	return &l, nil
}
