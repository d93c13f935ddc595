package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/goinvest/internal/adapter/http/handler"
	"github.com/iho/goinvest/internal/adapter/http/middleware"
	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/infrastructure/auth"
	"github.com/iho/goinvest/internal/infrastructure/metrics"
	"github.com/iho/goinvest/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler     *handler.LedgerHandler
	InvestmentHandler *handler.InvestmentHandler
	WithdrawalHandler *handler.WithdrawalHandler
	SchedulerHandler  *handler.SchedulerHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
	RateLimiter       *middleware.RateLimiter
	// JWTManager enables bearer authentication on /api/v1 when set.
	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
	Logger     zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager, cfg.Metrics))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			ttl := cfg.IdempotencyTTL
			if ttl <= 0 {
				ttl = 24 * time.Hour
			}
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, ttl, cfg.Logger).Wrap)
		}

		r.With(adminOnly).Post("/deposits", cfg.LedgerHandler.Deposit)
		r.With(adminOnly).Post("/referrals", cfg.LedgerHandler.CreditReferral)

		// Ledgers
		r.Route("/ledgers/{ownerID}", func(r chi.Router) {
			r.Get("/", cfg.LedgerHandler.Get)
			r.Get("/transactions", cfg.LedgerHandler.ListTransactions)
			r.Get("/investments", cfg.InvestmentHandler.ListByOwner)
			r.Get("/withdrawals", cfg.WithdrawalHandler.ListByOwner)
			r.With(adminOnly).Post("/unblock", cfg.LedgerHandler.Unblock)
		})

		// Investments
		r.Route("/investments", func(r chi.Router) {
			r.Post("/", cfg.InvestmentHandler.Create)
			r.Get("/{id}", cfg.InvestmentHandler.Get)
			r.Post("/{id}/close", cfg.InvestmentHandler.Close)
		})

		// Withdrawals
		r.Route("/withdrawals", func(r chi.Router) {
			r.Post("/", cfg.WithdrawalHandler.Create)
			r.Post("/otp", cfg.WithdrawalHandler.SendOtp)
			r.Get("/{id}", cfg.WithdrawalHandler.Get)
			r.Post("/{id}/proof", cfg.WithdrawalHandler.UploadProof)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/{id}/approve", cfg.WithdrawalHandler.Approve)
				r.Post("/{id}/verify", cfg.WithdrawalHandler.Verify)
				r.Post("/{id}/reject", cfg.WithdrawalHandler.Reject)
			})
		})

		r.With(adminOnly).Post("/scheduler/tick", cfg.SchedulerHandler.Tick)
	})

	return r
}
