package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goinvest/internal/adapter/http/dto"
	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

// WithdrawalService defines the behavior needed by WithdrawalHandler.
type WithdrawalService interface {
	SendWithdrawalOtp(ctx context.Context, ownerID string) error
	CreateWithdrawal(ctx context.Context, input usecase.CreateWithdrawalInput) (*domain.Withdrawal, error)
	AdminApproveWithdrawal(ctx context.Context, id, adminProofRef string) (*domain.Withdrawal, error)
	UploadWithdrawalProof(ctx context.Context, id, proofRef string) (*domain.Withdrawal, error)
	VerifyWithdrawal(ctx context.Context, id string, outcome domain.VerificationOutcome) (*domain.Withdrawal, error)
	RejectWithdrawal(ctx context.Context, id string) (*domain.Withdrawal, error)
	GetWithdrawal(ctx context.Context, id string) (*domain.Withdrawal, error)
	ListWithdrawals(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Withdrawal, error)
}

// WithdrawalHandler handles withdrawal-related HTTP requests.
type WithdrawalHandler struct {
	withdrawalUC WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalUC WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUC: withdrawalUC}
}

// SendOtp delivers a one-time password for the next withdrawal.
func (h *WithdrawalHandler) SendOtp(w http.ResponseWriter, r *http.Request) {
	var req dto.SendOtpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ownerID := ownerOrSelf(r, req.OwnerID)

	if err := authorizeWrite(r, ownerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	if err := h.withdrawalUC.SendWithdrawalOtp(r.Context(), ownerID); err != nil {
		writeDomainError(w, "failed to send otp", err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// Create requests a withdrawal. Funds are debited immediately.
func (h *WithdrawalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWithdrawalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.OwnerID = ownerOrSelf(r, req.OwnerID)

	if err := authorizeWrite(r, req.OwnerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, "invalid request", err)
		return
	}

	wd, err := h.withdrawalUC.CreateWithdrawal(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create withdrawal", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.WithdrawalFromDomain(wd))
}

// Get returns a withdrawal.
func (h *WithdrawalHandler) Get(w http.ResponseWriter, r *http.Request) {
	wd, err := h.withdrawalUC.GetWithdrawal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get withdrawal", err)
		return
	}

	if err := authorizeRead(r, wd.OwnerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(wd))
}

// ListByOwner returns the withdrawals of an owner.
func (h *WithdrawalHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if err := authorizeRead(r, ownerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	limit, offset := pagination(r)
	ws, err := h.withdrawalUC.ListWithdrawals(r.Context(), ownerID, limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list withdrawals", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.WithdrawalResponse]{
		Items:  dto.WithdrawalsFromDomain(ws),
		Limit:  limit,
		Offset: offset,
	})
}

// Approve records the admin's payout proof. Admin only.
func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req dto.ApproveWithdrawalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	wd, err := h.withdrawalUC.AdminApproveWithdrawal(r.Context(), chi.URLParam(r, "id"), req.AdminProofRef)
	if err != nil {
		writeDomainError(w, "failed to approve withdrawal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(wd))
}

// UploadProof attaches the owner's receipt proof.
func (h *WithdrawalHandler) UploadProof(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadProofRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")

	current, err := h.withdrawalUC.GetWithdrawal(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to upload proof", err)
		return
	}
	if err := authorizeWrite(r, current.OwnerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	wd, err := h.withdrawalUC.UploadWithdrawalProof(r.Context(), id, req.ProofRef)
	if err != nil {
		writeDomainError(w, "failed to upload proof", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(wd))
}

// Verify applies the reviewer's decision on the uploaded proof. Admin only.
func (h *WithdrawalHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyWithdrawalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	wd, err := h.withdrawalUC.VerifyWithdrawal(r.Context(), chi.URLParam(r, "id"), domain.VerificationOutcome(req.Outcome))
	if err != nil {
		writeDomainError(w, "failed to verify withdrawal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(wd))
}

// Reject cancels a withdrawal and restores the funds. Admin only.
func (h *WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	wd, err := h.withdrawalUC.RejectWithdrawal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to reject withdrawal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(wd))
}
