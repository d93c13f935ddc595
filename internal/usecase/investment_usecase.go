package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/infrastructure/metrics"
)

// InvestmentUseCase handles the investment lifecycle.
type InvestmentUseCase struct {
	store   *Store
	policy  InvestmentPolicy
	metrics *metrics.Metrics
}

// NewInvestmentUseCase creates a new InvestmentUseCase.
func NewInvestmentUseCase(store *Store, policy InvestmentPolicy, metrics *metrics.Metrics) *InvestmentUseCase {
	if policy.Amount == nil {
		policy.Amount = DefaultAmountPolicy()
	}
	return &InvestmentUseCase{
		store:   store,
		policy:  policy,
		metrics: metrics,
	}
}

// CreateInvestmentInput represents input for creating an investment.
type CreateInvestmentInput struct {
	OwnerID     string
	Principal   decimal.Decimal
	MonthlyRate decimal.Decimal // zero means the configured default
	Metadata    map[string]any
}

// InvestmentView is an investment together with its cycle as of a given day.
// Release is set only on the view returned by CloseInvestment.
type InvestmentView struct {
	Investment *domain.Investment
	Cycle      domain.Cycle
	Release    *domain.PendingPrincipalRelease
}

// CreateInvestment moves principal from the available balance into a new active investment.
func (uc *InvestmentUseCase) CreateInvestment(ctx context.Context, input CreateInvestmentInput) (*domain.Investment, error) {
	if err := domain.ValidateOwnerID(input.OwnerID); err != nil {
		return nil, err
	}
	if err := uc.policy.Amount.Validate(input.Principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	rate := input.MonthlyRate
	if rate.IsZero() {
		rate = uc.policy.DefaultMonthlyRate
	}
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, domain.ErrInvalidMonthlyRate
	}

	var inv *domain.Investment
	err := uc.store.withOwnerTx(ctx, input.OwnerID, ledgerZero, func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error {
		now := uc.store.now()

		if err := ledger.Move(domain.BucketAvailable, domain.BucketInvested, input.Principal); err != nil {
			return err
		}

		inv = domain.NewInvestment(uc.store.IDGen.Generate(), input.OwnerID, input.Principal, rate, input.Metadata, now)
		if err := uc.store.Investments.Create(ctx, tx, inv); err != nil {
			return err
		}
		if err := uc.store.saveLedger(ctx, tx, ledger, now); err != nil {
			return err
		}
		if err := uc.store.logTx(ctx, tx, input.OwnerID, domain.TxKindInvestment, input.Principal, domain.TxStatusCompleted, inv.ID, "investment created", now); err != nil {
			return err
		}
		return uc.store.emit(ctx, tx, domain.AggregateTypeInvestment, inv.ID, domain.EventTypeInvestmentCreated, map[string]any{
			"investment_id": inv.ID,
			"owner_id":      inv.OwnerID,
			"principal":     inv.Principal.String(),
			"monthly_rate":  inv.MonthlyRate.String(),
		}, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvestmentsCreated.Inc()
	}

	return inv, nil
}

// CloseInvestment closes a mature investment on the closure day and queues its
// principal for release after the cool-down. It returns the updated investment
// with the queued release.
func (uc *InvestmentUseCase) CloseInvestment(ctx context.Context, investmentID string) (*InvestmentView, error) {
	current, err := uc.store.Investments.GetByID(ctx, investmentID)
	if err != nil {
		return nil, err
	}

	var (
		closed  *domain.Investment
		release *domain.PendingPrincipalRelease
		now     time.Time
	)
	err = uc.store.withOwnerTx(ctx, current.OwnerID, ledgerExisting, func(ctx context.Context, tx Transaction, ledger *domain.Ledger) error {
		inv, err := uc.store.Investments.GetByIDForUpdate(ctx, tx, investmentID)
		if err != nil {
			return err
		}
		closed = inv

		now = uc.store.now()
		if err := inv.CanClose(now, uc.policy.ClosureDay); err != nil {
			return err
		}
		if err := ledger.Debit(domain.BucketInvested, inv.Principal); err != nil {
			return fmt.Errorf("close investment %s: %w", inv.ID, err)
		}

		inv.Close(now)
		inv.StartPrincipalProcessing(now)
		release = domain.NewPendingPrincipalRelease(uc.store.IDGen.Generate(), inv, now)

		if err := uc.store.Investments.Update(ctx, tx, inv); err != nil {
			return err
		}
		if err := uc.store.Releases.Create(ctx, tx, release); err != nil {
			return err
		}
		if err := uc.store.saveLedger(ctx, tx, ledger, now); err != nil {
			return err
		}
		if err := uc.store.logTx(ctx, tx, inv.OwnerID, domain.TxKindClose, inv.Principal, domain.TxStatusPending, inv.ID,
			"principal release on "+release.ReleaseDate.Format(time.DateOnly), now); err != nil {
			return err
		}
		return uc.store.emit(ctx, tx, domain.AggregateTypeInvestment, inv.ID, domain.EventTypeInvestmentClosed, map[string]any{
			"investment_id": inv.ID,
			"owner_id":      inv.OwnerID,
			"principal":     inv.Principal.String(),
			"release_date":  release.ReleaseDate.Format(time.DateOnly),
		}, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvestmentsClosed.Inc()
	}

	return &InvestmentView{Investment: closed, Cycle: closed.Cycle(now), Release: release}, nil
}

// GetInvestment returns an investment with its current cycle.
func (uc *InvestmentUseCase) GetInvestment(ctx context.Context, id string) (*InvestmentView, error) {
	inv, err := uc.store.Investments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &InvestmentView{Investment: inv, Cycle: inv.Cycle(uc.store.now())}, nil
}

// ListInvestments returns the investments of ownerID with their current cycles.
func (uc *InvestmentUseCase) ListInvestments(ctx context.Context, ownerID string, limit, offset int) ([]*InvestmentView, error) {
	limit, offset, err := domain.ValidatePagination(limit, offset)
	if err != nil {
		return nil, err
	}

	investments, err := uc.store.Investments.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	now := uc.store.now()
	views := make([]*InvestmentView, 0, len(investments))
	for _, inv := range investments {
		views = append(views, &InvestmentView{Investment: inv, Cycle: inv.Cycle(now)})
	}
	return views, nil
}
