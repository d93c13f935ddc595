package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const hoursPerDay = 24

// Cycle is the accrual window of an investment as seen at a given day.
type Cycle struct {
	CycleStart    time.Time
	MaturityDate  time.Time
	TotalDays     int
	DaysElapsed   int
	DaysRemaining int
	ProgressPct   int
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FirstOfNextMonth returns the first day of the month after t's month.
func FirstOfNextMonth(t time.Time) time.Time {
	return FirstOfMonth(t).AddDate(0, 1, 0)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return DaysBetween(FirstOfMonth(t), FirstOfNextMonth(t))
}

// DaysBetween counts whole calendar days from a to b. It is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / hoursPerDay)
}

func sameMonth(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// ComputeCycle returns the cycle an investment anchored at anchor is in on now.
func ComputeCycle(anchor, now time.Time) Cycle {
	anchor, now = StartOfDay(anchor), StartOfDay(now)

	var c Cycle
	if sameMonth(anchor, now) {
		c.CycleStart = anchor
		c.MaturityDate = FirstOfNextMonth(anchor)
	} else {
		c.CycleStart = FirstOfMonth(now)
		c.MaturityDate = FirstOfNextMonth(now)
	}

	c.TotalDays = max(DaysBetween(c.CycleStart, c.MaturityDate), 1)

	until := now
	if c.MaturityDate.Before(until) {
		until = c.MaturityDate
	}
	c.DaysElapsed = clamp(DaysBetween(c.CycleStart, until), 0, c.TotalDays)
	c.DaysRemaining = max(DaysBetween(now, c.MaturityDate), 0)

	pct := math.Round(100 * float64(c.DaysElapsed) / float64(c.TotalDays))
	c.ProgressPct = clamp(int(pct), 0, 100)

	return c
}

// ProratedAccrual is the return for the partial month starting at anchor:
// principal * rate * (days left in the anchor's month, anchor included) / days in that month.
func ProratedAccrual(principal, monthlyRate decimal.Decimal, anchor time.Time) decimal.Decimal {
	remaining := DaysBetween(anchor, FirstOfNextMonth(anchor))
	days := DaysInMonth(anchor)
	return principal.Mul(monthlyRate).
		Mul(decimal.NewFromInt(int64(remaining))).
		Div(decimal.NewFromInt(int64(days))).
		Round(MoneyScale)
}

// FullCycleAccrual is the return for a complete calendar month.
func FullCycleAccrual(principal, monthlyRate decimal.Decimal) decimal.Decimal {
	return principal.Mul(monthlyRate).Round(MoneyScale)
}

// AccrualForBoundary is the return credited when an investment anchored at anchor
// reaches boundary. The first boundary after the anchor is pro-rated.
func AccrualForBoundary(principal, monthlyRate decimal.Decimal, anchor, boundary time.Time) decimal.Decimal {
	if StartOfDay(boundary).Equal(FirstOfNextMonth(anchor)) {
		return ProratedAccrual(principal, monthlyRate, anchor)
	}
	return FullCycleAccrual(principal, monthlyRate)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
