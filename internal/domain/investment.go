package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentStatus is the lifecycle state of an investment.
type InvestmentStatus string

const (
	InvestmentStatusPending             InvestmentStatus = "pending"
	InvestmentStatusActive              InvestmentStatus = "active"
	InvestmentStatusMature              InvestmentStatus = "mature"
	InvestmentStatusClosed              InvestmentStatus = "closed"
	InvestmentStatusPrincipalProcessing InvestmentStatus = "principal_processing"
	InvestmentStatusCompleted           InvestmentStatus = "completed"
)

// PrincipalCooldown is the delay between closing an investment and releasing its principal.
const PrincipalCooldown = 15 * 24 * time.Hour

// Investment is principal committed by an owner that earns a monthly return.
type Investment struct {
	ID                string
	OwnerID           string
	Principal         decimal.Decimal
	MonthlyRate       decimal.Decimal
	Status            InvestmentStatus
	NextCycleBoundary time.Time
	Metadata          map[string]any
	ClosedAt          *time.Time
	CompletedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewInvestment returns an active investment anchored at now.
func NewInvestment(id, ownerID string, principal, monthlyRate decimal.Decimal, metadata map[string]any, now time.Time) *Investment {
	return &Investment{
		ID:                id,
		OwnerID:           ownerID,
		Principal:         principal,
		MonthlyRate:       monthlyRate,
		Status:            InvestmentStatusActive,
		NextCycleBoundary: FirstOfNextMonth(now),
		Metadata:          metadata,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Cycle returns the investment's cycle as seen on now.
func (i *Investment) Cycle(now time.Time) Cycle {
	return ComputeCycle(i.CreatedAt, now)
}

// IsDue reports whether the investment reaches a cycle boundary on or before date.
func (i *Investment) IsDue(date time.Time) bool {
	return i.Status == InvestmentStatusActive && !StartOfDay(date).Before(StartOfDay(i.NextCycleBoundary))
}

// Mature accrues the return for the current boundary, marks the investment mature and
// moves the boundary forward one month. It returns the accrued amount.
func (i *Investment) Mature(now time.Time) decimal.Decimal {
	accrual := AccrualForBoundary(i.Principal, i.MonthlyRate, i.CreatedAt, i.NextCycleBoundary)
	i.Status = InvestmentStatusMature
	i.NextCycleBoundary = StartOfDay(i.NextCycleBoundary).AddDate(0, 1, 0)
	i.UpdatedAt = now
	return accrual
}

// CanClose checks if the investment may be closed on day today.
func (i *Investment) CanClose(today time.Time, closureDay int) error {
	if i.Status != InvestmentStatusMature {
		return ErrNotMature
	}
	if today.UTC().Day() != closureDay {
		return ErrWithdrawalWindowClosed
	}
	return nil
}

// Close marks the investment closed.
func (i *Investment) Close(now time.Time) {
	i.Status = InvestmentStatusClosed
	i.ClosedAt = &now
	i.UpdatedAt = now
}

// StartPrincipalProcessing moves a closed investment into the release queue.
func (i *Investment) StartPrincipalProcessing(now time.Time) {
	i.Status = InvestmentStatusPrincipalProcessing
	i.UpdatedAt = now
}

// Complete marks the investment completed once its principal has been released.
func (i *Investment) Complete(now time.Time) {
	i.Status = InvestmentStatusCompleted
	i.CompletedAt = &now
	i.UpdatedAt = now
}
