package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

func TestInvestmentUseCase_CreateInvestment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		wantErr   error
	}{
		{name: "valid", principal: "1000", rate: "0.05"},
		{name: "default rate", principal: "1000", rate: "0"},
		{name: "below minimum principal", principal: "90", rate: "0.05", wantErr: domain.ErrInvalidAmount},
		{name: "not a step multiple", principal: "105", rate: "0.05", wantErr: domain.ErrInvalidAmount},
		{name: "rate above one", principal: "1000", rate: "1.5", wantErr: domain.ErrInvalidMonthlyRate},
		{name: "negative rate", principal: "1000", rate: "-0.01", wantErr: domain.ErrInvalidMonthlyRate},
		{name: "insufficient available", principal: "5000", rate: "0.05", wantErr: domain.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, day(2024, time.January, 15))
			h.fund("alice", 2000, 0, 0)

			inv, err := h.investmentUC.CreateInvestment(context.Background(), usecase.CreateInvestmentInput{
				OwnerID:     "alice",
				Principal:   amount(tt.principal),
				MonthlyRate: amount(tt.rate),
			})

			l := h.ledger(t, "alice")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				assertAmount(t, "available", l.AvailableBalance, "2000")
				assertAmount(t, "invested", l.InvestedPrincipal, "0")
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if inv.Status != domain.InvestmentStatusActive {
				t.Errorf("expected active, got %s", inv.Status)
			}
			if !inv.NextCycleBoundary.Equal(day(2024, time.February, 1)) {
				t.Errorf("next boundary = %s", inv.NextCycleBoundary)
			}
			if !inv.MonthlyRate.Equal(usecase.DefaultInvestmentPolicy().DefaultMonthlyRate) {
				t.Errorf("monthly rate = %s", inv.MonthlyRate)
			}
			assertAmount(t, "available", l.AvailableBalance, "1000")
			assertAmount(t, "invested", l.InvestedPrincipal, tt.principal)
		})
	}
}

func TestInvestmentUseCase_CreateWithoutLedgerIsInsufficient(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, day(2024, time.January, 15))

	_, err := h.investmentUC.CreateInvestment(ctx, usecase.CreateInvestmentInput{
		OwnerID:   "nobody",
		Principal: amount("1000"),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, err := h.ledgers.GetByOwner(ctx, "nobody"); !errors.Is(err, domain.ErrLedgerNotFound) {
		t.Errorf("a rejected investment must not create a ledger, got %v", err)
	}
	if len(h.outbox.EventTypes()) != 0 {
		t.Error("a rejected investment emitted events")
	}
}

func TestInvestmentUseCase_CloseInvestment(t *testing.T) {
	tests := []struct {
		name    string
		tickOn  time.Time
		closeOn time.Time
		wantErr error
	}{
		{name: "mature on closure day", tickOn: day(2024, time.February, 1), closeOn: day(2024, time.February, 2)},
		{name: "mature on wrong day", tickOn: day(2024, time.February, 1), closeOn: day(2024, time.February, 3), wantErr: domain.ErrWithdrawalWindowClosed},
		{name: "active on closure day", closeOn: day(2024, time.February, 2), wantErr: domain.ErrNotMature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			h := newHarness(t, day(2024, time.January, 15))
			h.fund("alice", 1000, 0, 0)

			inv, err := h.investmentUC.CreateInvestment(ctx, usecase.CreateInvestmentInput{OwnerID: "alice", Principal: amount("1000")})
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			if !tt.tickOn.IsZero() {
				h.clock.Set(tt.tickOn)
				if _, err := h.schedulerUC.RunScheduledTick(ctx, tt.tickOn); err != nil {
					t.Fatalf("tick: %v", err)
				}
			}

			h.clock.Set(tt.closeOn)
			closed, err := h.investmentUC.CloseInvestment(ctx, inv.ID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				assertAmount(t, "invested", h.ledger(t, "alice").InvestedPrincipal, "1000")
				return
			}

			if err != nil {
				t.Fatalf("close: %v", err)
			}
			if closed.Investment.ID != inv.ID || closed.Investment.Status != domain.InvestmentStatusPrincipalProcessing {
				t.Errorf("unexpected closed investment %+v", closed.Investment)
			}
			if closed.Investment.ClosedAt == nil {
				t.Error("closed investment has no close time")
			}
			rel := closed.Release
			if rel == nil {
				t.Fatal("expected the queued release on the closed investment")
			}
			if rel.InvestmentID != inv.ID {
				t.Errorf("release investment = %s", rel.InvestmentID)
			}
			if !rel.ReleaseDate.Equal(day(2024, time.February, 17)) {
				t.Errorf("release date = %s", rel.ReleaseDate)
			}
			assertAmount(t, "release amount", rel.Amount, "1000")

			got := h.investment(t, inv.ID)
			if got.Status != domain.InvestmentStatusPrincipalProcessing {
				t.Errorf("expected principal_processing, got %s", got.Status)
			}
			l := h.ledger(t, "alice")
			assertAmount(t, "invested", l.InvestedPrincipal, "0")
			assertAmount(t, "available", l.AvailableBalance, "0")

			if _, err := h.investmentUC.CloseInvestment(ctx, inv.ID); !errors.Is(err, domain.ErrNotMature) {
				t.Errorf("second close: expected ErrNotMature, got %v", err)
			}
		})
	}
}

func TestInvestmentUseCase_GetInvestmentCycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, day(2024, time.January, 15))
	h.fund("alice", 1000, 0, 0)

	inv, err := h.investmentUC.CreateInvestment(ctx, usecase.CreateInvestmentInput{
		OwnerID:     "alice",
		Principal:   amount("1000"),
		MonthlyRate: decimal.RequireFromString("0.05"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	h.clock.Set(day(2024, time.January, 20))
	view, err := h.investmentUC.GetInvestment(ctx, inv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Cycle.TotalDays != 17 || view.Cycle.DaysElapsed != 5 || view.Cycle.DaysRemaining != 12 {
		t.Errorf("unexpected cycle %+v", view.Cycle)
	}
	if !view.Cycle.MaturityDate.Equal(day(2024, time.February, 1)) {
		t.Errorf("maturity date = %s", view.Cycle.MaturityDate)
	}
	if view.Investment.ID != inv.ID {
		t.Errorf("unexpected investment %s", view.Investment.ID)
	}

	views, err := h.investmentUC.ListInvestments(ctx, "alice", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 investment, got %d", len(views))
	}

	if _, err := h.investmentUC.GetInvestment(ctx, "missing"); !errors.Is(err, domain.ErrInvestmentNotFound) {
		t.Errorf("expected ErrInvestmentNotFound, got %v", err)
	}
}
