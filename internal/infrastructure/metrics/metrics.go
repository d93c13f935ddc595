package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Investment metrics
	InvestmentsCreated prometheus.Counter
	InvestmentsMatured prometheus.Counter
	InvestmentsClosed  prometheus.Counter
	ReturnsAccrued     prometheus.Counter
	PrincipalReleased  prometheus.Counter

	// Withdrawal metrics
	WithdrawalsCreated    prometheus.Counter
	WithdrawalTransitions *prometheus.CounterVec
	WithdrawalsBlocked    prometheus.Counter
	WithdrawalErrors      *prometheus.CounterVec

	// Ledger metrics
	LedgerOperations *prometheus.CounterVec

	// Scheduler metrics
	SchedulerTicks        *prometheus.CounterVec
	SchedulerTickDuration prometheus.Histogram
	SchedulerOwnerErrors  prometheus.Counter

	// OTP metrics
	OTPRequests  *prometheus.CounterVec
	BreakerState *prometheus.GaugeVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBRetries *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates all metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all Prometheus metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		// Investment metrics
		InvestmentsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "goinvest_investments_created_total",
			Help: "Total number of investments created",
		}),
		InvestmentsMatured: f.NewCounter(prometheus.CounterOpts{
			Name: "goinvest_investments_matured_total",
			Help: "Total number of investments that reached a cycle boundary",
		}),
		InvestmentsClosed: f.NewCounter(prometheus.CounterOpts{
			Name: "goinvest_investments_closed_total",
			Help: "Total number of investments closed",
		}),
		ReturnsAccrued: f.NewCounter(prometheus.CounterOpts{
			Name: "goinvest_returns_accrued_total",
			Help: "Sum of returns credited to ledgers",
		}),
		PrincipalReleased: f.NewCounter(prometheus.CounterOpts{
			Name: "goinvest_principal_released_total",
			Help: "Total number of principal releases paid out",
		}),

		// Withdrawal metrics
		WithdrawalsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "goinvest_withdrawals_created_total",
			Help: "Total number of withdrawals created",
		}),
		WithdrawalTransitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_withdrawal_transitions_total",
				Help: "Withdrawal state transitions by target status",
			},
			[]string{"status"},
		),
		WithdrawalsBlocked: f.NewCounter(prometheus.CounterOpts{
			Name: "goinvest_withdrawals_blocked_total",
			Help: "Total number of withdrawals blocked after failed verifications",
		}),
		WithdrawalErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_withdrawal_errors_total",
				Help: "Rejected withdrawal commands by error kind",
			},
			[]string{"kind"},
		),

		// Ledger metrics
		LedgerOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_ledger_operations_total",
				Help: "Total ledger operations by type",
			},
			[]string{"operation"},
		),

		// Scheduler metrics
		SchedulerTicks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_scheduler_ticks_total",
				Help: "Total scheduler ticks by result",
			},
			[]string{"result"},
		),
		SchedulerTickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "goinvest_scheduler_tick_duration_seconds",
			Help:    "Duration of scheduler ticks",
			Buckets: prometheus.DefBuckets,
		}),
		SchedulerOwnerErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "goinvest_scheduler_owner_errors_total",
			Help: "Total owners that failed during a tick",
		}),

		// OTP metrics
		OTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_otp_requests_total",
				Help: "OTP operations by type and result",
			},
			[]string{"operation", "result"},
		),
		BreakerState: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goinvest_circuit_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),

		// API metrics
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goinvest_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBRetries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_db_retries_total",
				Help: "Transactions retried after a transient database error",
			},
			[]string{"code"},
		),

		// Redis metrics
		RedisOperations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_rate_limit_hits_total",
				Help: "Total rate limited requests",
			},
			[]string{"path"},
		),

		// Audit metrics
		AuditLogsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goinvest_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
