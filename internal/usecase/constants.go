package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultMinimumWithdrawal is the smallest amount a withdrawal may request
	DefaultMinimumWithdrawal = "10"

	// DefaultMaxPendingUploads is how many withdrawals may wait for a proof upload at once
	DefaultMaxPendingUploads = 3

	// DefaultClosureDay is the day of month on which mature investments can be closed
	DefaultClosureDay = 2

	// DefaultMinimumPrincipal and DefaultPrincipalStep bound new investment amounts
	DefaultMinimumPrincipal = "100"
	DefaultPrincipalStep    = "10"

	// DefaultMonthlyRate is applied when an investment is created without a rate
	DefaultMonthlyRate = "0.05"

	// DefaultSchedulerConcurrency is how many owners a tick processes in parallel
	DefaultSchedulerConcurrency = 8
)
