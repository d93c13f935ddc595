package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

func TestSchedulerUseCase_RunScheduledTick_Accrual(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, day(2024, time.January, 15))
	h.fund("alice", 1000, 0, 0)

	inv, err := h.investmentUC.CreateInvestment(ctx, usecase.CreateInvestmentInput{OwnerID: "alice", Principal: amount("1000")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		name        string
		date        time.Time
		wantAdvance int
		wantReturns string
	}{
		{name: "day before boundary", date: day(2024, time.January, 31), wantAdvance: 0, wantReturns: "0"},
		{name: "on boundary", date: day(2024, time.February, 1), wantAdvance: 1, wantReturns: "27.42"},
		{name: "same day again", date: day(2024, time.February, 1), wantAdvance: 0, wantReturns: "27.42"},
		{name: "mature stays put", date: day(2024, time.March, 1), wantAdvance: 0, wantReturns: "27.42"},
	}

	for _, tt := range tests {
		h.clock.Set(tt.date)
		res, err := h.schedulerUC.RunScheduledTick(ctx, tt.date)
		if err != nil {
			t.Fatalf("%s: tick: %v", tt.name, err)
		}
		if res.InvestmentsAdvanced != tt.wantAdvance {
			t.Errorf("%s: advanced = %d, want %d", tt.name, res.InvestmentsAdvanced, tt.wantAdvance)
		}
		assertAmount(t, tt.name+" returns", h.ledger(t, "alice").AccruedReturns, tt.wantReturns)
	}

	got := h.investment(t, inv.ID)
	if got.Status != domain.InvestmentStatusMature {
		t.Errorf("expected mature, got %s", got.Status)
	}
	if h.countLogs(domain.TxKindReturn) != 1 {
		t.Errorf("expected one return entry, got %d", h.countLogs(domain.TxKindReturn))
	}
}

func TestSchedulerUseCase_RunScheduledTick_CatchesUpMissedBoundary(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, day(2024, time.January, 15))
	h.fund("alice", 1000, 0, 0)

	if _, err := h.investmentUC.CreateInvestment(ctx, usecase.CreateInvestmentInput{OwnerID: "alice", Principal: amount("1000")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	h.clock.Set(day(2024, time.February, 4))
	res, err := h.schedulerUC.RunScheduledTick(ctx, day(2024, time.February, 4))
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if res.InvestmentsAdvanced != 1 {
		t.Fatalf("expected the missed boundary to be processed, got %d", res.InvestmentsAdvanced)
	}
	assertAmount(t, "returns", h.ledger(t, "alice").AccruedReturns, "27.42")
}

func TestSchedulerUseCase_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, day(2024, time.January, 15))
	h.fund("alice", 1000, 0, 0)

	inv, err := h.investmentUC.CreateInvestment(ctx, usecase.CreateInvestmentInput{OwnerID: "alice", Principal: amount("1000")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tick := func(d time.Time) *usecase.TickResult {
		t.Helper()
		h.clock.Set(d)
		res, err := h.schedulerUC.RunScheduledTick(ctx, d)
		if err != nil {
			t.Fatalf("tick %s: %v", d.Format(time.DateOnly), err)
		}
		return res
	}

	tick(day(2024, time.February, 1))

	h.clock.Set(day(2024, time.February, 2))
	closed, err := h.investmentUC.CloseInvestment(ctx, inv.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	rel := closed.Release

	if res := tick(day(2024, time.February, 16)); res.ReleasesCompleted != 0 {
		t.Fatalf("released a day early")
	}
	assertAmount(t, "available before release", h.ledger(t, "alice").AvailableBalance, "0")

	if res := tick(rel.ReleaseDate); res.ReleasesCompleted != 1 {
		t.Fatalf("expected release on %s", rel.ReleaseDate.Format(time.DateOnly))
	}
	if res := tick(rel.ReleaseDate); res.ReleasesCompleted != 0 {
		t.Fatalf("release paid twice")
	}
	tick(day(2024, time.March, 1))

	l := h.ledger(t, "alice")
	assertAmount(t, "available", l.AvailableBalance, "1000")
	assertAmount(t, "invested", l.InvestedPrincipal, "0")
	assertAmount(t, "returns", l.AccruedReturns, "27.42")

	got := h.investment(t, inv.ID)
	if got.Status != domain.InvestmentStatusCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("completed investment has no completion time")
	}

	stored, err := h.releases.GetByInvestment(ctx, inv.ID)
	if err != nil {
		t.Fatalf("load release: %v", err)
	}
	if stored.Status != domain.ReleaseStatusReleased {
		t.Errorf("expected released, got %s", stored.Status)
	}
}

func TestSchedulerUseCase_OwnerFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, day(2024, time.January, 15))

	for _, owner := range []string{"alice", "bob", "carol"} {
		h.fund(owner, 1000, 0, 0)
		if _, err := h.investmentUC.CreateInvestment(ctx, usecase.CreateInvestmentInput{OwnerID: owner, Principal: amount("1000")}); err != nil {
			t.Fatalf("create for %s: %v", owner, err)
		}
	}

	broken := errors.New("disk full")
	h.ledgers.UpdateFunc = func(ctx context.Context, tx usecase.Transaction, l *domain.Ledger) error {
		if l.OwnerID == "bob" {
			return broken
		}
		return nil
	}

	h.clock.Set(day(2024, time.February, 1))
	res, err := h.schedulerUC.RunScheduledTick(ctx, day(2024, time.February, 1))
	if !errors.Is(err, broken) {
		t.Fatalf("expected joined owner error, got %v", err)
	}
	if res.InvestmentsAdvanced != 2 {
		t.Errorf("expected the other owners to advance, got %d", res.InvestmentsAdvanced)
	}
}

func TestSchedulerUseCase_ListFailure(t *testing.T) {
	h := newHarness(t, day(2024, time.February, 1))

	listErr := errors.New("connection reset")
	h.investments.OwnersWithDueFunc = func(ctx context.Context, date time.Time) ([]string, error) {
		return nil, listErr
	}

	res, err := h.schedulerUC.RunScheduledTick(context.Background(), day(2024, time.February, 1))
	if !errors.Is(err, listErr) {
		t.Fatalf("expected list error, got %v", err)
	}
	if res.InvestmentsAdvanced != 0 || res.ReleasesCompleted != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestSchedulerUseCase_TickIsAudited(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, day(2024, time.February, 1))

	if _, err := h.schedulerUC.RunScheduledTick(ctx, day(2024, time.February, 1)); err != nil {
		t.Fatalf("tick: %v", err)
	}

	listErr := errors.New("connection reset")
	h.investments.OwnersWithDueFunc = func(ctx context.Context, date time.Time) ([]string, error) {
		return nil, listErr
	}
	if _, err := h.schedulerUC.RunScheduledTick(ctx, day(2024, time.February, 2)); !errors.Is(err, listErr) {
		t.Fatalf("expected list error, got %v", err)
	}

	logs, _ := h.audit.List(ctx, domain.AuditFilter{Action: string(domain.AuditActionSchedulerRunTick)})
	if len(logs) != 2 {
		t.Fatalf("expected two tick audit entries, got %d", len(logs))
	}

	if logs[0].ResourceID != "2024-02-01" || logs[0].Status != string(domain.AuditStatusSuccess) {
		t.Errorf("unexpected first entry %+v", logs[0])
	}
	if logs[0].UserID != "system" {
		t.Errorf("expected system actor, got %q", logs[0].UserID)
	}
	if logs[1].ResourceID != "2024-02-02" || logs[1].Status != string(domain.AuditStatusFailure) {
		t.Errorf("unexpected second entry %+v", logs[1])
	}
	if logs[1].ErrorMessage == "" {
		t.Error("failed tick entry carries no error message")
	}
}

func TestSchedulerUseCase_AuditFailureDoesNotFailTick(t *testing.T) {
	h := newHarness(t, day(2024, time.February, 1))
	h.audit.CreateTxFunc = func(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
		return errors.New("audit table locked")
	}

	if _, err := h.schedulerUC.RunScheduledTick(context.Background(), day(2024, time.February, 1)); err != nil {
		t.Fatalf("tick: %v", err)
	}
}
