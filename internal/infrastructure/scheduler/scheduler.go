package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/usecase"
)

// Ticker runs the daily maturity and release pass.
type Ticker interface {
	RunScheduledTick(ctx context.Context, date time.Time) (*usecase.TickResult, error)
}

// Config holds scheduler settings.
type Config struct {
	Spec    string        // standard five-field cron expression, evaluated in UTC
	Timeout time.Duration // upper bound of a single tick
}

// Scheduler triggers ticks on a cron schedule. Overlapping runs are skipped.
type Scheduler struct {
	cron    *cron.Cron
	ticker  Ticker
	timeout time.Duration
	logger  zerolog.Logger
	now     func() time.Time
}

// New creates a scheduler and registers the tick job.
func New(cfg Config, ticker Ticker, logger zerolog.Logger) (*Scheduler, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}

	cronLogger := zerologAdapter{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		ticker:  ticker,
		timeout: cfg.Timeout,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}

	if _, err := s.cron.AddFunc(cfg.Spec, s.run); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", cfg.Spec, err)
	}

	return s, nil
}

// Start runs the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops scheduling and waits for a running tick or ctx, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("scheduler stopped with a tick still running")
		return
	}
	s.logger.Info().Msg("scheduler stopped")
}

// RunOnce ticks for the current UTC date.
func (s *Scheduler) RunOnce(ctx context.Context) (*usecase.TickResult, error) {
	date := domain.StartOfDay(s.now())
	start := time.Now()

	res, err := s.ticker.RunScheduledTick(ctx, date)

	event := s.logger.Info()
	if err != nil {
		event = s.logger.Error().Err(err)
	}
	if res != nil {
		event = event.
			Int("investments_advanced", res.InvestmentsAdvanced).
			Int("releases_completed", res.ReleasesCompleted)
	}
	event.
		Str("date", date.Format(time.DateOnly)).
		Dur("took", time.Since(start)).
		Msg("cron tick done")

	return res, err
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	// errors are logged by RunOnce; the next run retries
	_, _ = s.RunOnce(ctx)
}

type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (a zerologAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
