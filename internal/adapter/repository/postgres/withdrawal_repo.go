package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

const withdrawalColumns = `id, owner_id, amount, source_bucket, destination_address, status,
	verification_attempts, is_blocked, admin_proof_ref, proof_ref, created_at, updated_at`

// WithdrawalRepository implements usecase.WithdrawalRepository.
type WithdrawalRepository struct {
	db DBTX
}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository(db DBTX) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Create inserts a new withdrawal.
func (r *WithdrawalRepository) Create(ctx context.Context, tx usecase.Transaction, w *domain.Withdrawal) error {
	_, err := pgxTx(tx).Exec(ctx, `
		INSERT INTO withdrawals (`+withdrawalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		w.ID,
		w.OwnerID,
		decimalToNumeric(w.Amount),
		string(w.SourceBucket),
		w.DestinationAddress,
		string(w.Status),
		w.VerificationAttempts,
		w.IsBlocked,
		w.AdminProofRef,
		w.ProofRef,
		timeToPgTimestamptz(w.CreatedAt),
		timeToPgTimestamptz(w.UpdatedAt),
	)
	return err
}

// GetByID retrieves a withdrawal by ID.
func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	return scanWithdrawal(r.db.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a withdrawal by ID with a FOR UPDATE lock.
func (r *WithdrawalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Withdrawal, error) {
	return scanWithdrawal(pgxTx(tx).QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`, id))
}

// Update writes the workflow fields of w.
func (r *WithdrawalRepository) Update(ctx context.Context, tx usecase.Transaction, w *domain.Withdrawal) error {
	tag, err := pgxTx(tx).Exec(ctx, `
		UPDATE withdrawals
		SET status = $2, verification_attempts = $3, is_blocked = $4, admin_proof_ref = $5, proof_ref = $6, updated_at = $7
		WHERE id = $1`,
		w.ID,
		string(w.Status),
		w.VerificationAttempts,
		w.IsBlocked,
		w.AdminProofRef,
		w.ProofRef,
		timeToPgTimestamptz(w.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWithdrawalNotFound
	}
	return nil
}

// ListByOwner lists the withdrawals of ownerID, newest first.
func (r *WithdrawalRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+withdrawalColumns+`
		FROM withdrawals
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []*domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

// CountAwaitingProof counts approved or failed withdrawals of ownerID with no proof uploaded.
func (r *WithdrawalRepository) CountAwaitingProof(ctx context.Context, tx usecase.Transaction, ownerID string) (int, error) {
	var n int
	err := pgxTx(tx).QueryRow(ctx, `
		SELECT COUNT(*)
		FROM withdrawals
		WHERE owner_id = $1
		  AND status IN ($2, $3)
		  AND proof_ref = ''
		  AND NOT is_blocked`,
		ownerID,
		string(domain.WithdrawalStatusAdminApproved),
		string(domain.WithdrawalStatusVerificationFailed),
	).Scan(&n)
	return n, err
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	var source, status string
	var amount pgtype.Numeric
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&w.ID, &w.OwnerID, &amount, &source, &w.DestinationAddress, &status,
		&w.VerificationAttempts, &w.IsBlocked, &w.AdminProofRef, &w.ProofRef, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}

	w.Amount = numericToDecimal(amount)
	w.SourceBucket = domain.SourceBucket(source)
	w.Status = domain.WithdrawalStatus(status).Normalize()
	w.CreatedAt = createdAt.Time.UTC()
	w.UpdatedAt = updatedAt.Time.UTC()

	return &w, nil
}
