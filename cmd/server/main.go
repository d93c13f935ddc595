package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/goinvest/internal/adapter/http"
	"github.com/iho/goinvest/internal/adapter/http/handler"
	"github.com/iho/goinvest/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/goinvest/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/goinvest/internal/adapter/repository/redis"
	"github.com/iho/goinvest/internal/infrastructure/auth"
	"github.com/iho/goinvest/internal/infrastructure/config"
	"github.com/iho/goinvest/internal/infrastructure/eventpublisher"
	"github.com/iho/goinvest/internal/infrastructure/lock"
	"github.com/iho/goinvest/internal/infrastructure/logger"
	"github.com/iho/goinvest/internal/infrastructure/metrics"
	"github.com/iho/goinvest/internal/infrastructure/otp"
	"github.com/iho/goinvest/internal/infrastructure/postgres"
	"github.com/iho/goinvest/internal/infrastructure/redis"
	"github.com/iho/goinvest/internal/infrastructure/scheduler"
	"github.com/iho/goinvest/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "goinvest",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	m := metrics.New()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:     cfg.DatabaseURL,
		MaxConns:        cfg.DatabaseMaxConns,
		MinConns:        cfg.DatabaseMinConns,
		ConnectTimeout:  cfg.DatabaseTimeout,
		ApplicationName: "goinvest",
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, redis.Config{
		URL:          cfg.RedisURL,
		PoolSize:     cfg.RedisPoolSize,
		DialTimeout:  cfg.RedisTimeout,
		ReadTimeout:  cfg.RedisTimeout,
		WriteTimeout: cfg.RedisTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	store := &usecase.Store{
		TxManager:   postgresRepo.NewTxManager(pool),
		Retrier:     postgresRepo.NewRetrier(log, m),
		Locker:      newLocker(cfg, redisClient),
		Ledgers:     postgresRepo.NewLedgerRepository(pool),
		Investments: postgresRepo.NewInvestmentRepository(pool),
		Releases:    postgresRepo.NewReleaseRepository(pool),
		Withdrawals: postgresRepo.NewWithdrawalRepository(pool),
		TxLog:       postgresRepo.NewTransactionLogRepository(pool),
		Outbox:      postgresRepo.NewOutboxRepository(pool),
		Audit:       postgresRepo.NewAuditRepository(pool),
		IDGen:       postgresRepo.NewULIDGenerator(),
		Clock:       usecase.SystemClock{},
	}

	otpService := otp.NewTOTPService(otpConfig(cfg), redisRepo.NewOTPSecretStore(redisClient), otp.NewLogSender(log), m, log)

	// Initialize use cases
	investmentPolicy, withdrawalPolicy := policies(cfg)
	ledgerUC := usecase.NewLedgerUseCase(store, m)
	investmentUC := usecase.NewInvestmentUseCase(store, investmentPolicy, m)
	withdrawalUC := usecase.NewWithdrawalUseCase(store, otpService, withdrawalPolicy, m, log)
	schedulerUC := usecase.NewSchedulerUseCase(store, cfg.SchedulerConcurrency, m, log)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		LedgerHandler:     handler.NewLedgerHandler(ledgerUC),
		InvestmentHandler: handler.NewInvestmentHandler(investmentUC),
		WithdrawalHandler: handler.NewWithdrawalHandler(withdrawalUC),
		SchedulerHandler:  handler.NewSchedulerHandler(schedulerUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  redisRepo.NewIdempotencyStore(redisClient),
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       rateLimiter,
		JWTManager:        jwtManager,
		Metrics:           m,
		Logger:            log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: store.Outbox,
		Publisher:  newPublisher(cfg, redisClient, log),
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	var cronScheduler *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		cronScheduler, err = scheduler.New(scheduler.Config{Spec: cfg.SchedulerCron}, schedulerUC, log)
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := publisher.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				rateLimiter.CleanupLimiters(10 * time.Minute)
			}
		}
	})

	if cronScheduler != nil {
		cronScheduler.Start()
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		if cronScheduler != nil {
			cronScheduler.Stop(shutdownCtx)
		}
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// policies turns validated configuration into use case tunables.
func policies(cfg *config.Config) (usecase.InvestmentPolicy, usecase.WithdrawalPolicy) {
	investment := usecase.InvestmentPolicy{
		Amount: usecase.StepAmountPolicy{
			Min:  config.Decimal(cfg.InvestmentMinPrincipal),
			Step: config.Decimal(cfg.InvestmentPrincipalStep),
		},
		DefaultMonthlyRate: config.Decimal(cfg.InvestmentDefaultMonthlyRate),
		ClosureDay:         cfg.InvestmentClosureDay,
	}
	withdrawal := usecase.WithdrawalPolicy{
		Minimum:           config.Decimal(cfg.WithdrawalMinimum),
		MaxPendingUploads: cfg.WithdrawalMaxPendingUploads,
	}
	return investment, withdrawal
}

func otpConfig(cfg *config.Config) otp.Config {
	return otp.Config{
		Issuer: cfg.OTPIssuer,
		Period: cfg.OTPPeriod,
		Digits: cfg.OTPDigits,
		Skew:   cfg.OTPSkew,
	}
}

func newLocker(cfg *config.Config, client goredis.Cmdable) usecase.OwnerLocker {
	if cfg.LockDriver == "redis" {
		return redisRepo.NewOwnerLocker(client, cfg.LockLease, cfg.LockMaxWait)
	}
	return lock.NewKeyedLocker()
}

func newPublisher(cfg *config.Config, client goredis.Cmdable, log zerolog.Logger) eventpublisher.Publisher {
	if cfg.OutboxPublisher == "redis" {
		return redisRepo.NewStreamPublisher(client, cfg.OutboxStream, cfg.OutboxStreamLen)
	}
	return eventpublisher.NewLogPublisher(log)
}
