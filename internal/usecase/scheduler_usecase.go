package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/infrastructure/metrics"
)

// TickResult summarises one scheduled tick.
type TickResult struct {
	Date                time.Time
	InvestmentsAdvanced int
	ReleasesCompleted   int
}

// SchedulerUseCase advances investments and pays out due principal releases.
type SchedulerUseCase struct {
	store       *Store
	concurrency int
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewSchedulerUseCase creates a new SchedulerUseCase.
func NewSchedulerUseCase(store *Store, concurrency int, metrics *metrics.Metrics, logger zerolog.Logger) *SchedulerUseCase {
	if concurrency <= 0 {
		concurrency = DefaultSchedulerConcurrency
	}
	return &SchedulerUseCase{
		store:       store,
		concurrency: concurrency,
		metrics:     metrics,
		logger:      logger.With().Str("component", "scheduler").Logger(),
	}
}

// RunScheduledTick runs the maturity tick and then the release tick for date.
// Running it again for the same date changes nothing. A failing owner does not stop
// the others; all owner errors are returned joined.
func (uc *SchedulerUseCase) RunScheduledTick(ctx context.Context, date time.Time) (*TickResult, error) {
	start := time.Now()
	date = domain.StartOfDay(date)
	result := &TickResult{Date: date}

	advanced, maturityErr := uc.AdvanceInvestments(ctx, date)
	result.InvestmentsAdvanced = advanced

	released, releaseErr := uc.ReleasePrincipal(ctx, date)
	result.ReleasesCompleted = released

	err := errors.Join(maturityErr, releaseErr)

	if uc.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "partial"
		}
		uc.metrics.SchedulerTicks.WithLabelValues(outcome).Inc()
		uc.metrics.SchedulerTickDuration.Observe(time.Since(start).Seconds())
	}

	uc.logger.Info().
		Str("date", date.Format(time.DateOnly)).
		Int("investments_advanced", result.InvestmentsAdvanced).
		Int("releases_completed", result.ReleasesCompleted).
		Err(err).
		Msg("scheduled tick finished")

	// The tick already happened; a lost audit entry is only logged.
	if auditErr := uc.store.auditOutcome(ctx, domain.AuditActionSchedulerRunTick, "scheduler", date.Format(time.DateOnly),
		result, err, uc.store.now()); auditErr != nil {
		uc.logger.Warn().Err(auditErr).Msg("failed to record tick audit entry")
	}

	return result, err
}

// AdvanceInvestments matures every active investment whose next cycle boundary is on
// or before date and credits the accrued return.
func (uc *SchedulerUseCase) AdvanceInvestments(ctx context.Context, date time.Time) (int, error) {
	owners, err := uc.store.Investments.OwnersWithDue(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("list owners with due investments: %w", err)
	}

	return uc.forEachOwner(ctx, owners, func(ctx context.Context, ownerID string) (int, error) {
		return uc.advanceOwner(ctx, ownerID, date)
	})
}

func (uc *SchedulerUseCase) advanceOwner(ctx context.Context, ownerID string, date time.Time) (int, error) {
	var advanced int
	var accrued []float64
	err := uc.store.withOwnerTx(ctx, ownerID, ledgerExisting, func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error {
		advanced, accrued = 0, accrued[:0]

		due, err := uc.store.Investments.ListDueForUpdate(ctx, tx, ownerID, date)
		if err != nil {
			return err
		}

		now := uc.store.now()
		for _, inv := range due {
			// Re-checked under the lock so a concurrent tick cannot accrue twice.
			if !inv.IsDue(date) {
				continue
			}

			boundary := inv.NextCycleBoundary
			amount := inv.Mature(now)
			if amount.IsPositive() {
				if err := ledger.Credit(domain.BucketReturns, amount); err != nil {
					return err
				}
			}
			if err := uc.store.Investments.Update(ctx, tx, inv); err != nil {
				return err
			}
			if err := uc.store.logTx(ctx, tx, ownerID, domain.TxKindReturn, amount, domain.TxStatusCompleted, inv.ID,
				"return for cycle ending "+boundary.Format(time.DateOnly), now); err != nil {
				return err
			}
			if err := uc.store.emit(ctx, tx, domain.AggregateTypeInvestment, inv.ID, domain.EventTypeInvestmentMatured, map[string]any{
				"investment_id": inv.ID,
				"owner_id":      ownerID,
				"return":        amount.String(),
				"boundary":      boundary.Format(time.DateOnly),
			}, now); err != nil {
				return err
			}

			advanced++
			accrued = append(accrued, amount.InexactFloat64())
		}

		if advanced == 0 {
			return nil
		}
		return uc.store.saveLedger(ctx, tx, ledger, now)
	})
	if err != nil {
		return 0, err
	}

	if uc.metrics != nil {
		uc.metrics.InvestmentsMatured.Add(float64(advanced))
		for _, a := range accrued {
			uc.metrics.ReturnsAccrued.Add(a)
		}
	}

	return advanced, nil
}

// ReleasePrincipal pays out every pending principal release due on or before date and
// completes the related investments.
func (uc *SchedulerUseCase) ReleasePrincipal(ctx context.Context, date time.Time) (int, error) {
	owners, err := uc.store.Releases.OwnersWithDue(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("list owners with due releases: %w", err)
	}

	return uc.forEachOwner(ctx, owners, func(ctx context.Context, ownerID string) (int, error) {
		return uc.releaseOwner(ctx, ownerID, date)
	})
}

func (uc *SchedulerUseCase) releaseOwner(ctx context.Context, ownerID string, date time.Time) (int, error) {
	var released int
	err := uc.store.withOwnerTx(ctx, ownerID, ledgerExisting, func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error {
		released = 0

		due, err := uc.store.Releases.ListDueForUpdate(ctx, tx, ownerID, date)
		if err != nil {
			return err
		}

		now := uc.store.now()
		for _, rel := range due {
			if !rel.IsDue(date) {
				continue
			}

			inv, err := uc.store.Investments.GetByIDForUpdate(ctx, tx, rel.InvestmentID)
			if err != nil {
				return fmt.Errorf("release %s: %w", rel.ID, err)
			}

			if err := ledger.Credit(domain.BucketAvailable, rel.Amount); err != nil {
				return err
			}
			rel.Release(now)
			inv.Complete(now)

			if err := uc.store.Releases.Update(ctx, tx, rel); err != nil {
				return err
			}
			if err := uc.store.Investments.Update(ctx, tx, inv); err != nil {
				return err
			}
			if err := uc.store.logTx(ctx, tx, ownerID, domain.TxKindPrincipalProcessing, rel.Amount, domain.TxStatusCompleted, inv.ID,
				"principal released", now); err != nil {
				return err
			}
			if err := uc.store.emit(ctx, tx, domain.AggregateTypeInvestment, inv.ID, domain.EventTypeInvestmentCompleted, map[string]any{
				"investment_id": inv.ID,
				"owner_id":      ownerID,
				"principal":     rel.Amount.String(),
			}, now); err != nil {
				return err
			}

			released++
		}

		if released == 0 {
			return nil
		}
		return uc.store.saveLedger(ctx, tx, ledger, now)
	})
	if err != nil {
		return 0, err
	}

	if uc.metrics != nil {
		uc.metrics.PrincipalReleased.Add(float64(released))
	}

	return released, nil
}

type ownerJob func(ctx context.Context, ownerID string) (int, error)

// forEachOwner runs job for every owner with bounded parallelism and sums the counts.
func (uc *SchedulerUseCase) forEachOwner(ctx context.Context, owners []string, job ownerJob) (int, error) {
	var (
		total int64
		mu    sync.Mutex
		errs  []error
	)

	var g errgroup.Group
	g.SetLimit(uc.concurrency)

	for _, ownerID := range owners {
		g.Go(func() error {
			n, err := job(ctx, ownerID)
			if err != nil {
				uc.logger.Error().Err(err).Str("owner_id", ownerID).Msg("owner tick failed")
				if uc.metrics != nil {
					uc.metrics.SchedulerOwnerErrors.Inc()
				}
				mu.Lock()
				errs = append(errs, fmt.Errorf("owner %s: %w", ownerID, err))
				mu.Unlock()
				return nil
			}
			atomic.AddInt64(&total, int64(n))
			return nil
		})
	}

	_ = g.Wait() // jobs record their own errors
	return int(total), errors.Join(errs...)
}
