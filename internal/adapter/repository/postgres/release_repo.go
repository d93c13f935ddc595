package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

const releaseColumns = `id, investment_id, owner_id, amount, release_date, status, released_at, created_at`

// ReleaseRepository implements usecase.ReleaseRepository.
type ReleaseRepository struct {
	db DBTX
}

// NewReleaseRepository creates a new ReleaseRepository.
func NewReleaseRepository(db DBTX) *ReleaseRepository {
	return &ReleaseRepository{db: db}
}

// Create queues a principal release. The unique index on investment_id
// rejects a second release for the same investment.
func (r *ReleaseRepository) Create(ctx context.Context, tx usecase.Transaction, rel *domain.PendingPrincipalRelease) error {
	_, err := pgxTx(tx).Exec(ctx, `
		INSERT INTO principal_releases (`+releaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rel.ID,
		rel.InvestmentID,
		rel.OwnerID,
		decimalToNumeric(rel.Amount),
		dateToPg(rel.ReleaseDate),
		string(rel.Status),
		optionalTimestamptz(rel.ReleasedAt),
		timeToPgTimestamptz(rel.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: principal of %s is already queued", domain.ErrInvalidTransition, rel.InvestmentID)
	}
	return err
}

// GetByInvestment retrieves the release queued for an investment.
func (r *ReleaseRepository) GetByInvestment(ctx context.Context, investmentID string) (*domain.PendingPrincipalRelease, error) {
	return scanRelease(r.db.QueryRow(ctx, `SELECT `+releaseColumns+` FROM principal_releases WHERE investment_id = $1`, investmentID))
}

// Update writes the status of rel.
func (r *ReleaseRepository) Update(ctx context.Context, tx usecase.Transaction, rel *domain.PendingPrincipalRelease) error {
	tag, err := pgxTx(tx).Exec(ctx, `
		UPDATE principal_releases SET status = $2, released_at = $3 WHERE id = $1`,
		rel.ID, string(rel.Status), optionalTimestamptz(rel.ReleasedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReleaseNotFound
	}
	return nil
}

// ListDueForUpdate locks the pending releases of ownerID due on or before date.
func (r *ReleaseRepository) ListDueForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, date time.Time) ([]*domain.PendingPrincipalRelease, error) {
	rows, err := pgxTx(tx).Query(ctx, `
		SELECT `+releaseColumns+`
		FROM principal_releases
		WHERE owner_id = $1 AND status = $2 AND release_date <= $3
		ORDER BY release_date, id
		FOR UPDATE`,
		ownerID, string(domain.ReleaseStatusPending), dateToPg(date),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var releases []*domain.PendingPrincipalRelease
	for rows.Next() {
		rel, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, rel)
	}
	return releases, rows.Err()
}

// OwnersWithDue returns the owners with a pending release due on or before date.
func (r *ReleaseRepository) OwnersWithDue(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT owner_id
		FROM principal_releases
		WHERE status = $1 AND release_date <= $2
		ORDER BY owner_id`,
		string(domain.ReleaseStatusPending), dateToPg(date),
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func scanRelease(row pgx.Row) (*domain.PendingPrincipalRelease, error) {
	var rel domain.PendingPrincipalRelease
	var status string
	var amount pgtype.Numeric
	var releaseDate pgtype.Date
	var releasedAt, createdAt pgtype.Timestamptz

	err := row.Scan(&rel.ID, &rel.InvestmentID, &rel.OwnerID, &amount, &releaseDate, &status, &releasedAt, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReleaseNotFound
		}
		return nil, err
	}

	rel.Amount = numericToDecimal(amount)
	rel.ReleaseDate = pgToDate(releaseDate)
	rel.Status = domain.ReleaseStatus(status)
	rel.ReleasedAt = timestamptzPtr(releasedAt)
	rel.CreatedAt = createdAt.Time.UTC()

	return &rel, nil
}
