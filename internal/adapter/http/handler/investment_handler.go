package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goinvest/internal/adapter/http/dto"
	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

// InvestmentService defines the behavior needed by InvestmentHandler.
type InvestmentService interface {
	CreateInvestment(ctx context.Context, input usecase.CreateInvestmentInput) (*domain.Investment, error)
	CloseInvestment(ctx context.Context, investmentID string) (*usecase.InvestmentView, error)
	GetInvestment(ctx context.Context, id string) (*usecase.InvestmentView, error)
	ListInvestments(ctx context.Context, ownerID string, limit, offset int) ([]*usecase.InvestmentView, error)
}

// InvestmentHandler handles investment-related HTTP requests.
type InvestmentHandler struct {
	investmentUC InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentUC InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentUC: investmentUC}
}

// Create opens an investment funded from the available balance.
func (h *InvestmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvestmentRequest
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

	inv, err := h.investmentUC.CreateInvestment(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create investment", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvestmentFromDomain(inv))
}

// Get returns an investment with its current cycle.
func (h *InvestmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.investmentUC.GetInvestment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get investment", err)
		return
	}

	if err := authorizeRead(r, view.Investment.OwnerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InvestmentFromView(view))
}

// ListByOwner returns the investments of an owner.
func (h *InvestmentHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	if err := authorizeRead(r, ownerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	limit, offset := pagination(r)
	views, err := h.investmentUC.ListInvestments(r.Context(), ownerID, limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list investments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.InvestmentResponse]{
		Items:  dto.InvestmentsFromViews(views),
		Limit:  limit,
		Offset: offset,
	})
}

// Close withdraws the principal of a mature investment into the release queue.
func (h *InvestmentHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.investmentUC.GetInvestment(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to close investment", err)
		return
	}
	if err := authorizeWrite(r, view.Investment.OwnerID); err != nil {
		writeDomainError(w, "forbidden", err)
		return
	}

	closed, err := h.investmentUC.CloseInvestment(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to close investment", err)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.InvestmentFromView(closed))
}
