package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

const investmentColumns = `id, owner_id, principal, monthly_rate, status, next_cycle_boundary, metadata,
	closed_at, completed_at, created_at, updated_at`

// InvestmentRepository implements usecase.InvestmentRepository.
type InvestmentRepository struct {
	db DBTX
}

// NewInvestmentRepository creates a new InvestmentRepository.
func NewInvestmentRepository(db DBTX) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create inserts a new investment.
func (r *InvestmentRepository) Create(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
	metadata, err := marshalMetadata(inv.Metadata)
	if err != nil {
		return err
	}

	_, err = pgxTx(tx).Exec(ctx, `
		INSERT INTO investments (`+investmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		inv.ID,
		inv.OwnerID,
		decimalToNumeric(inv.Principal),
		decimalToNumeric(inv.MonthlyRate),
		string(inv.Status),
		dateToPg(inv.NextCycleBoundary),
		metadata,
		optionalTimestamptz(inv.ClosedAt),
		optionalTimestamptz(inv.CompletedAt),
		timeToPgTimestamptz(inv.CreatedAt),
		timeToPgTimestamptz(inv.UpdatedAt),
	)
	return err
}

// GetByID retrieves an investment by ID.
func (r *InvestmentRepository) GetByID(ctx context.Context, id string) (*domain.Investment, error) {
	return scanInvestment(r.db.QueryRow(ctx, `SELECT `+investmentColumns+` FROM investments WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves an investment by ID with a FOR UPDATE lock.
func (r *InvestmentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Investment, error) {
	return scanInvestment(pgxTx(tx).QueryRow(ctx, `SELECT `+investmentColumns+` FROM investments WHERE id = $1 FOR UPDATE`, id))
}

// Update writes the mutable fields of inv.
func (r *InvestmentRepository) Update(ctx context.Context, tx usecase.Transaction, inv *domain.Investment) error {
	tag, err := pgxTx(tx).Exec(ctx, `
		UPDATE investments
		SET status = $2, next_cycle_boundary = $3, closed_at = $4, completed_at = $5, updated_at = $6
		WHERE id = $1`,
		inv.ID,
		string(inv.Status),
		dateToPg(inv.NextCycleBoundary),
		optionalTimestamptz(inv.ClosedAt),
		optionalTimestamptz(inv.CompletedAt),
		timeToPgTimestamptz(inv.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvestmentNotFound
	}
	return nil
}

// ListByOwner lists the investments of ownerID, newest first.
func (r *InvestmentRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Investment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+investmentColumns+`
		FROM investments
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectInvestments(rows)
}

// ListDueForUpdate locks the active investments of ownerID due on or before date.
func (r *InvestmentRepository) ListDueForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, date time.Time) ([]*domain.Investment, error) {
	rows, err := pgxTx(tx).Query(ctx, `
		SELECT `+investmentColumns+`
		FROM investments
		WHERE owner_id = $1 AND status = $2 AND next_cycle_boundary <= $3
		ORDER BY next_cycle_boundary, id
		FOR UPDATE`,
		ownerID, string(domain.InvestmentStatusActive), dateToPg(date),
	)
	if err != nil {
		return nil, err
	}
	return collectInvestments(rows)
}

// OwnersWithDue returns the owners with an active investment due on or before date.
func (r *InvestmentRepository) OwnersWithDue(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT owner_id
		FROM investments
		WHERE status = $1 AND next_cycle_boundary <= $2
		ORDER BY owner_id`,
		string(domain.InvestmentStatusActive), dateToPg(date),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func collectInvestments(rows pgx.Rows) ([]*domain.Investment, error) {
	defer rows.Close()

	var investments []*domain.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var inv domain.Investment
	var status string
	var principal, rate pgtype.Numeric
	var boundary pgtype.Date
	var metadata []byte
	var closedAt, completedAt, createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&inv.ID, &inv.OwnerID, &principal, &rate, &status, &boundary, &metadata,
		&closedAt, &completedAt, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, err
	}

	inv.Principal = numericToDecimal(principal)
	inv.MonthlyRate = numericToDecimal(rate)
	inv.Status = domain.InvestmentStatus(status)
	inv.NextCycleBoundary = pgToDate(boundary)
	inv.ClosedAt = timestamptzPtr(closedAt)
	inv.CompletedAt = timestamptzPtr(completedAt)
	inv.CreatedAt = createdAt.Time.UTC()
	inv.UpdatedAt = updatedAt.Time.UTC()
	if metadata != nil {
		_ = json.Unmarshal(metadata, &inv.Metadata)
	}

	return &inv, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	return json.Marshal(metadata)
}
