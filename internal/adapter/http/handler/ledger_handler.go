package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/adapter/http/dto"
	"github.com/iho/goinvest/internal/domain"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Deposit(ctx context.Context, ownerID string, amount decimal.Decimal) (*domain.Ledger, error)
	CreditReferral(ctx context.Context, ownerID string, amount decimal.Decimal, referredUserID string) (*domain.Ledger, error)
	UnblockWithdrawals(ctx context.Context, ownerID string) (*domain.Ledger, error)
	GetBalances(ctx context.Context, ownerID string) (*domain.Ledger, error)
	ListTransactions(ctx context.Context, ownerID string, limit, offset int) ([]*domain.TransactionLog, error)
}

// LedgerHandler handles balance-related HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Deposit credits the available balance. Admin only.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		writeDomainError(w, "invalid amount", err)
		return
	}

	ledger, err := h.ledgerUC.Deposit(r.Context(), req.OwnerID, amount)
	if err != nil {
		writeDomainError(w, "failed to deposit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// CreditReferral credits referral earnings. Admin only.
func (h *LedgerHandler) CreditReferral(w http.ResponseWriter, r *http.Request) {
	var req dto.ReferralRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		writeDomainError(w, "invalid amount", err)
		return
	}

	ledger, err := h.ledgerUC.CreditReferral(r.Context(), req.OwnerID, amount, req.ReferredUserID)
	if err != nil {
		writeDomainError(w, "failed to credit referral", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// Get returns the balances of an owner.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if err := authorizeRead(r, ownerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	ledger, err := h.ledgerUC.GetBalances(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, "failed to get ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// ListTransactions returns the transaction log of an owner, newest first.
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if err := authorizeRead(r, ownerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	limit, offset := pagination(r)
	entries, err := h.ledgerUC.ListTransactions(r.Context(), ownerID, limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.TransactionResponse]{
		Items:  dto.TransactionsFromDomain(entries),
		Limit:  limit,
		Offset: offset,
	})
}

// Unblock lifts the withdrawal block of an owner. Admin only.
func (h *LedgerHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.ledgerUC.UnblockWithdrawals(r.Context(), chi.URLParam(r, "ownerID"))
	if err != nil {
		writeDomainError(w, "failed to unblock", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}
