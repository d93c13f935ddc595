package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
	"github.com/iho/goinvest/internal/usecase/mocks"
)

const testOtp = "123456"

type harness struct {
	store       *usecase.Store
	clock       *mocks.MockClock
	ledgers     *mocks.MockLedgerRepository
	investments *mocks.MockInvestmentRepository
	releases    *mocks.MockReleaseRepository
	withdrawals *mocks.MockWithdrawalRepository
	txLog       *mocks.MockTransactionLogRepository
	outbox      *mocks.MockOutboxRepository
	audit       *mocks.MockAuditRepository
	otp         *mocks.MockOTPService

	ledgerUC     *usecase.LedgerUseCase
	investmentUC *usecase.InvestmentUseCase
	withdrawalUC *usecase.WithdrawalUseCase
	schedulerUC  *usecase.SchedulerUseCase
}

func newHarness(t *testing.T, now time.Time) *harness {
	t.Helper()

	h := &harness{
		clock:       mocks.NewMockClock(now),
		ledgers:     mocks.NewMockLedgerRepository(),
		investments: mocks.NewMockInvestmentRepository(),
		releases:    mocks.NewMockReleaseRepository(),
		withdrawals: mocks.NewMockWithdrawalRepository(),
		txLog:       mocks.NewMockTransactionLogRepository(),
		outbox:      mocks.NewMockOutboxRepository(),
		audit:       mocks.NewMockAuditRepository(),
		otp:         mocks.NewMockOTPService(testOtp),
	}

	h.store = &usecase.Store{
		TxManager:   mocks.NewMockTransactionManager(),
		Locker:      mocks.NewMockOwnerLocker(),
		Ledgers:     h.ledgers,
		Investments: h.investments,
		Releases:    h.releases,
		Withdrawals: h.withdrawals,
		TxLog:       h.txLog,
		Outbox:      h.outbox,
		Audit:       h.audit,
		IDGen:       mocks.NewMockIDGenerator(),
		Clock:       h.clock,
	}

	logger := zerolog.Nop()
	h.ledgerUC = usecase.NewLedgerUseCase(h.store, nil)
	h.investmentUC = usecase.NewInvestmentUseCase(h.store, usecase.DefaultInvestmentPolicy(), nil)
	h.withdrawalUC = usecase.NewWithdrawalUseCase(h.store, h.otp, usecase.DefaultWithdrawalPolicy(), nil, logger)
	h.schedulerUC = usecase.NewSchedulerUseCase(h.store, 4, nil, logger)

	return h
}

// fund stores a ledger for ownerID with the given bucket balances.
func (h *harness) fund(ownerID string, available, returns, referral int64) {
	l := domain.NewLedger(ownerID, h.clock.Now())
	l.AvailableBalance = decimal.NewFromInt(available)
	l.AccruedReturns = decimal.NewFromInt(returns)
	l.ReferralEarnings = decimal.NewFromInt(referral)
	h.ledgers.Put(l)
}

func (h *harness) ledger(t *testing.T, ownerID string) *domain.Ledger {
	t.Helper()
	l, err := h.ledgers.GetByOwner(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("load ledger %s: %v", ownerID, err)
	}
	return l
}

func (h *harness) withdrawal(t *testing.T, id string) *domain.Withdrawal {
	t.Helper()
	w, err := h.withdrawals.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load withdrawal %s: %v", id, err)
	}
	return w
}

func (h *harness) investment(t *testing.T, id string) *domain.Investment {
	t.Helper()
	inv, err := h.investments.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load investment %s: %v", id, err)
	}
	return inv
}

func (h *harness) countLogs(kind domain.TransactionKind) int {
	n := 0
	for _, e := range h.txLog.Entries() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(amount(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
