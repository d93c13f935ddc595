package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

// TransactionLogRepository implements usecase.TransactionLogRepository.
type TransactionLogRepository struct {
	db DBTX
}

// NewTransactionLogRepository creates a new TransactionLogRepository.
func NewTransactionLogRepository(db DBTX) *TransactionLogRepository {
	return &TransactionLogRepository{db: db}
}

// Create appends an entry to the log.
func (r *TransactionLogRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.TransactionLog) error {
	_, err := pgxTx(tx).Exec(ctx, `
		INSERT INTO transaction_logs (id, owner_id, kind, amount, status, related_entity_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID,
		entry.OwnerID,
		string(entry.Kind),
		decimalToNumeric(entry.Amount),
		string(entry.Status),
		entry.RelatedEntityID,
		entry.Description,
		timeToPgTimestamptz(entry.Timestamp),
	)
	return err
}

// ListByOwner lists the entries of ownerID, newest first.
func (r *TransactionLogRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.TransactionLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, owner_id, kind, amount, status, related_entity_id, description, created_at
		FROM transaction_logs
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.TransactionLog
	for rows.Next() {
		var e domain.TransactionLog
		var kind, status string
		var amount pgtype.Numeric
		var createdAt pgtype.Timestamptz

		if err := rows.Scan(&e.ID, &e.OwnerID, &kind, &amount, &status, &e.RelatedEntityID, &e.Description, &createdAt); err != nil {
			return nil, err
		}

		e.Kind = domain.TransactionKind(kind)
		e.Amount = numericToDecimal(amount)
		e.Status = domain.TransactionStatus(status)
		e.Timestamp = createdAt.Time.UTC()
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
