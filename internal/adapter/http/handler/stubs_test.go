package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

var (
	errNotStubbed = errors.New("not stubbed")
	testNow       = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
)

type ledgerServiceStub struct {
	depositFn  func(ctx context.Context, ownerID string, amount decimal.Decimal) (*domain.Ledger, error)
	referralFn func(ctx context.Context, ownerID string, amount decimal.Decimal, referredUserID string) (*domain.Ledger, error)
	unblockFn  func(ctx context.Context, ownerID string) (*domain.Ledger, error)
	getFn      func(ctx context.Context, ownerID string) (*domain.Ledger, error)
	listFn     func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.TransactionLog, error)
}

func (s *ledgerServiceStub) Deposit(ctx context.Context, ownerID string, amount decimal.Decimal) (*domain.Ledger, error) {
	if s.depositFn == nil {
		return nil, errNotStubbed
	}
	return s.depositFn(ctx, ownerID, amount)
}

func (s *ledgerServiceStub) CreditReferral(ctx context.Context, ownerID string, amount decimal.Decimal, referredUserID string) (*domain.Ledger, error) {
	if s.referralFn == nil {
		return nil, errNotStubbed
	}
	return s.referralFn(ctx, ownerID, amount, referredUserID)
}

func (s *ledgerServiceStub) UnblockWithdrawals(ctx context.Context, ownerID string) (*domain.Ledger, error) {
	if s.unblockFn == nil {
		return nil, errNotStubbed
	}
	return s.unblockFn(ctx, ownerID)
}

func (s *ledgerServiceStub) GetBalances(ctx context.Context, ownerID string) (*domain.Ledger, error) {
	if s.getFn == nil {
		return nil, errNotStubbed
	}
	return s.getFn(ctx, ownerID)
}

func (s *ledgerServiceStub) ListTransactions(ctx context.Context, ownerID string, limit, offset int) ([]*domain.TransactionLog, error) {
	if s.listFn == nil {
		return nil, errNotStubbed
	}
	return s.listFn(ctx, ownerID, limit, offset)
}

type investmentServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateInvestmentInput) (*domain.Investment, error)
	closeFn  func(ctx context.Context, id string) (*usecase.InvestmentView, error)
	getFn    func(ctx context.Context, id string) (*usecase.InvestmentView, error)
	listFn   func(ctx context.Context, ownerID string, limit, offset int) ([]*usecase.InvestmentView, error)
}

func (s *investmentServiceStub) CreateInvestment(ctx context.Context, input usecase.CreateInvestmentInput) (*domain.Investment, error) {
	if s.createFn == nil {
		return nil, errNotStubbed
	}
	return s.createFn(ctx, input)
}

func (s *investmentServiceStub) CloseInvestment(ctx context.Context, id string) (*usecase.InvestmentView, error) {
	if s.closeFn == nil {
		return nil, errNotStubbed
	}
	return s.closeFn(ctx, id)
}

func (s *investmentServiceStub) GetInvestment(ctx context.Context, id string) (*usecase.InvestmentView, error) {
	if s.getFn == nil {
		return nil, errNotStubbed
	}
	return s.getFn(ctx, id)
}

func (s *investmentServiceStub) ListInvestments(ctx context.Context, ownerID string, limit, offset int) ([]*usecase.InvestmentView, error) {
	if s.listFn == nil {
		return nil, errNotStubbed
	}
	return s.listFn(ctx, ownerID, limit, offset)
}

type withdrawalServiceStub struct {
	sendOtpFn func(ctx context.Context, ownerID string) error
	createFn  func(ctx context.Context, input usecase.CreateWithdrawalInput) (*domain.Withdrawal, error)
	approveFn func(ctx context.Context, id, ref string) (*domain.Withdrawal, error)
	uploadFn  func(ctx context.Context, id, ref string) (*domain.Withdrawal, error)
	verifyFn  func(ctx context.Context, id string, outcome domain.VerificationOutcome) (*domain.Withdrawal, error)
	rejectFn  func(ctx context.Context, id string) (*domain.Withdrawal, error)
	getFn     func(ctx context.Context, id string) (*domain.Withdrawal, error)
	listFn    func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Withdrawal, error)
}

func (s *withdrawalServiceStub) SendWithdrawalOtp(ctx context.Context, ownerID string) error {
	if s.sendOtpFn == nil {
		return errNotStubbed
	}
	return s.sendOtpFn(ctx, ownerID)
}

func (s *withdrawalServiceStub) CreateWithdrawal(ctx context.Context, input usecase.CreateWithdrawalInput) (*domain.Withdrawal, error) {
	if s.createFn == nil {
		return nil, errNotStubbed
	}
	return s.createFn(ctx, input)
}

func (s *withdrawalServiceStub) AdminApproveWithdrawal(ctx context.Context, id, ref string) (*domain.Withdrawal, error) {
	if s.approveFn == nil {
		return nil, errNotStubbed
	}
	return s.approveFn(ctx, id, ref)
}

func (s *withdrawalServiceStub) UploadWithdrawalProof(ctx context.Context, id, ref string) (*domain.Withdrawal, error) {
	if s.uploadFn == nil {
		return nil, errNotStubbed
	}
	return s.uploadFn(ctx, id, ref)
}

func (s *withdrawalServiceStub) VerifyWithdrawal(ctx context.Context, id string, outcome domain.VerificationOutcome) (*domain.Withdrawal, error) {
	if s.verifyFn == nil {
		return nil, errNotStubbed
	}
	return s.verifyFn(ctx, id, outcome)
}

func (s *withdrawalServiceStub) RejectWithdrawal(ctx context.Context, id string) (*domain.Withdrawal, error) {
	if s.rejectFn == nil {
		return nil, errNotStubbed
	}
	return s.rejectFn(ctx, id)
}

func (s *withdrawalServiceStub) GetWithdrawal(ctx context.Context, id string) (*domain.Withdrawal, error) {
	if s.getFn == nil {
		return nil, errNotStubbed
	}
	return s.getFn(ctx, id)
}

func (s *withdrawalServiceStub) ListWithdrawals(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Withdrawal, error) {
	if s.listFn == nil {
		return nil, errNotStubbed
	}
	return s.listFn(ctx, ownerID, limit, offset)
}

type tickServiceStub struct {
	tickFn func(ctx context.Context, date time.Time) (*usecase.TickResult, error)
}

func (s *tickServiceStub) RunScheduledTick(ctx context.Context, date time.Time) (*usecase.TickResult, error) {
	return s.tickFn(ctx, date)
}

// newRequest builds a request with chi URL params and an optional caller.
func newRequest(method, target, body string, params map[string]string, user *domain.User) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if user != nil {
		ctx = domain.ContextWithUser(ctx, user)
	}
	return req.WithContext(ctx)
}

func investor(id string) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleInvestor}
}
