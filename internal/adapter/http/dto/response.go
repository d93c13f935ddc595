package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

// LedgerResponse represents an owner's balances.
type LedgerResponse struct {
	OwnerID           string          `json:"owner_id"`
	AvailableBalance  decimal.Decimal `json:"available_balance"`
	InvestedPrincipal decimal.Decimal `json:"invested_principal"`
	AccruedReturns    decimal.Decimal `json:"accrued_returns"`
	ReferralEarnings  decimal.Decimal `json:"referral_earnings"`
	WithdrawalBlocked bool            `json:"withdrawal_blocked"`
	Version           int64           `json:"version"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// LedgerFromDomain converts a domain ledger to response.
func LedgerFromDomain(l *domain.Ledger) *LedgerResponse {
	return &LedgerResponse{
		OwnerID:           l.OwnerID,
		AvailableBalance:  l.AvailableBalance,
		InvestedPrincipal: l.InvestedPrincipal,
		AccruedReturns:    l.AccruedReturns,
		ReferralEarnings:  l.ReferralEarnings,
		WithdrawalBlocked: l.WithdrawalBlocked,
		Version:           l.Version,
		UpdatedAt:         l.UpdatedAt,
	}
}

// TransactionResponse represents a transaction log entry.
type TransactionResponse struct {
	ID              string          `json:"id"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	RelatedEntityID string          `json:"related_entity_id,omitempty"`
	Description     string          `json:"description,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
}

// TransactionsFromDomain converts log entries to responses.
func TransactionsFromDomain(entries []*domain.TransactionLog) []*TransactionResponse {
	result := make([]*TransactionResponse, len(entries))
	for i, e := range entries {
		result[i] = &TransactionResponse{
			ID:              e.ID,
			Kind:            string(e.Kind),
			Amount:          e.Amount,
			Status:          string(e.Status),
			RelatedEntityID: e.RelatedEntityID,
			Description:     e.Description,
			Timestamp:       e.Timestamp,
		}
	}
	return result
}

// CycleResponse represents the current accrual cycle of an investment.
type CycleResponse struct {
	CycleStart    string `json:"cycle_start"`
	MaturityDate  string `json:"maturity_date"`
	TotalDays     int    `json:"total_days"`
	DaysElapsed   int    `json:"days_elapsed"`
	DaysRemaining int    `json:"days_remaining"`
	ProgressPct   int    `json:"progress_pct"`
}

// InvestmentResponse represents an investment in API responses.
type InvestmentResponse struct {
	ID                string           `json:"id"`
	OwnerID           string           `json:"owner_id"`
	Principal         decimal.Decimal  `json:"principal"`
	MonthlyRate       decimal.Decimal  `json:"monthly_rate"`
	Status            string           `json:"status"`
	NextCycleBoundary string           `json:"next_cycle_boundary"`
	Metadata          map[string]any   `json:"metadata,omitempty"`
	ClosedAt          *time.Time       `json:"closed_at,omitempty"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	Cycle             *CycleResponse   `json:"cycle,omitempty"`
	Release           *ReleaseResponse `json:"release,omitempty"`
}

// InvestmentFromDomain converts a domain investment to response.
func InvestmentFromDomain(inv *domain.Investment) *InvestmentResponse {
	return &InvestmentResponse{
		ID:                inv.ID,
		OwnerID:           inv.OwnerID,
		Principal:         inv.Principal,
		MonthlyRate:       inv.MonthlyRate,
		Status:            string(inv.Status),
		NextCycleBoundary: inv.NextCycleBoundary.Format(time.DateOnly),
		Metadata:          inv.Metadata,
		ClosedAt:          inv.ClosedAt,
		CompletedAt:       inv.CompletedAt,
		CreatedAt:         inv.CreatedAt,
	}
}

// InvestmentFromView converts an investment and its cycle to response.
func InvestmentFromView(v *usecase.InvestmentView) *InvestmentResponse {
	resp := InvestmentFromDomain(v.Investment)
	resp.Cycle = &CycleResponse{
		CycleStart:    v.Cycle.CycleStart.Format(time.DateOnly),
		MaturityDate:  v.Cycle.MaturityDate.Format(time.DateOnly),
		TotalDays:     v.Cycle.TotalDays,
		DaysElapsed:   v.Cycle.DaysElapsed,
		DaysRemaining: v.Cycle.DaysRemaining,
		ProgressPct:   v.Cycle.ProgressPct,
	}
	if v.Release != nil {
		resp.Release = ReleaseFromDomain(v.Release)
	}
	return resp
}

// InvestmentsFromViews converts views to responses.
func InvestmentsFromViews(views []*usecase.InvestmentView) []*InvestmentResponse {
	result := make([]*InvestmentResponse, len(views))
	for i, v := range views {
		result[i] = InvestmentFromView(v)
	}
	return result
}

// ReleaseResponse represents a queued principal release.
type ReleaseResponse struct {
	ID           string          `json:"id"`
	InvestmentID string          `json:"investment_id"`
	OwnerID      string          `json:"owner_id"`
	Amount       decimal.Decimal `json:"amount"`
	ReleaseDate  string          `json:"release_date"`
	Status       string          `json:"status"`
}

// ReleaseFromDomain converts a pending release to response.
func ReleaseFromDomain(r *domain.PendingPrincipalRelease) *ReleaseResponse {
	return &ReleaseResponse{
		ID:           r.ID,
		InvestmentID: r.InvestmentID,
		OwnerID:      r.OwnerID,
		Amount:       r.Amount,
		ReleaseDate:  r.ReleaseDate.Format(time.DateOnly),
		Status:       string(r.Status),
	}
}

// WithdrawalResponse represents a withdrawal in API responses.
type WithdrawalResponse struct {
	ID                   string          `json:"id"`
	OwnerID              string          `json:"owner_id"`
	Amount               decimal.Decimal `json:"amount"`
	SourceBucket         string          `json:"source_bucket"`
	DestinationAddress   string          `json:"destination_address"`
	Status               string          `json:"status"`
	VerificationAttempts int             `json:"verification_attempts"`
	IsBlocked            bool            `json:"is_blocked"`
	AdminProofRef        string          `json:"admin_proof_ref,omitempty"`
	ProofRef             string          `json:"proof_ref,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// WithdrawalFromDomain converts a domain withdrawal to response.
func WithdrawalFromDomain(w *domain.Withdrawal) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:                   w.ID,
		OwnerID:              w.OwnerID,
		Amount:               w.Amount,
		SourceBucket:         string(w.SourceBucket),
		DestinationAddress:   w.DestinationAddress,
		Status:               string(w.Status),
		VerificationAttempts: w.VerificationAttempts,
		IsBlocked:            w.IsBlocked,
		AdminProofRef:        w.AdminProofRef,
		ProofRef:             w.ProofRef,
		CreatedAt:            w.CreatedAt,
		UpdatedAt:            w.UpdatedAt,
	}
}

// WithdrawalsFromDomain converts domain withdrawals to responses.
func WithdrawalsFromDomain(ws []*domain.Withdrawal) []*WithdrawalResponse {
	result := make([]*WithdrawalResponse, len(ws))
	for i, w := range ws {
		result[i] = WithdrawalFromDomain(w)
	}
	return result
}

// TickResponse reports what a scheduler tick did.
type TickResponse struct {
	Date                string `json:"date"`
	InvestmentsAdvanced int    `json:"investments_advanced"`
	ReleasesCompleted   int    `json:"releases_completed"`
	Error               string `json:"error,omitempty"`
}

// TickFromResult converts a tick result to response.
func TickFromResult(res *usecase.TickResult, err error) *TickResponse {
	resp := &TickResponse{
		Date:                res.Date.Format(time.DateOnly),
		InvestmentsAdvanced: res.InvestmentsAdvanced,
		ReleasesCompleted:   res.ReleasesCompleted,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
