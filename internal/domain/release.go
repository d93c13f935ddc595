package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReleaseStatus string

const (
	ReleaseStatusPending  ReleaseStatus = "pending"
	ReleaseStatusReleased ReleaseStatus = "released"
)

// PendingPrincipalRelease is principal of a closed investment waiting out the cool-down.
type PendingPrincipalRelease struct {
	ID           string
	InvestmentID string
	OwnerID      string
	Amount       decimal.Decimal
	ReleaseDate  time.Time
	Status       ReleaseStatus
	ReleasedAt   *time.Time
	CreatedAt    time.Time
}

// NewPendingPrincipalRelease schedules the principal of inv for release after the cool-down.
func NewPendingPrincipalRelease(id string, inv *Investment, now time.Time) *PendingPrincipalRelease {
	return &PendingPrincipalRelease{
		ID:           id,
		InvestmentID: inv.ID,
		OwnerID:      inv.OwnerID,
		Amount:       inv.Principal,
		ReleaseDate:  StartOfDay(now).Add(PrincipalCooldown),
		Status:       ReleaseStatusPending,
		CreatedAt:    now,
	}
}

// IsDue reports whether the release can be paid out on date.
func (r *PendingPrincipalRelease) IsDue(date time.Time) bool {
	return r.Status == ReleaseStatusPending && !StartOfDay(date).Before(r.ReleaseDate)
}

// Release marks the release paid out.
func (r *PendingPrincipalRelease) Release(now time.Time) {
	r.Status = ReleaseStatusReleased
	r.ReleasedAt = &now
}
