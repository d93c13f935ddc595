package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/infrastructure/metrics"
)

// SecretStore keeps per-owner TOTP secrets and spent codes.
type SecretStore interface {
	Secret(ctx context.Context, ownerID string) (string, error)
	SetSecretIfAbsent(ctx context.Context, ownerID, secret string) (string, error)
	IsUsed(ctx context.Context, ownerID, code string) (bool, error)
	MarkUsed(ctx context.Context, ownerID, code string, ttl time.Duration) (bool, error)
}

// Sender delivers a freshly generated code to the owner.
type Sender interface {
	Send(ctx context.Context, ownerID, code string) error
}

// Config holds TOTP and breaker settings.
type Config struct {
	Issuer string
	Period time.Duration
	Digits int
	Skew   uint

	// BreakerFailures consecutive failures open the breaker for BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func (c *Config) setDefaults() {
	if c.Issuer == "" {
		c.Issuer = "goinvest"
	}
	if c.Period <= 0 {
		c.Period = 300 * time.Second
	}
	if c.Digits == 0 {
		c.Digits = 6
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
}

// TOTPService issues and checks time-based one-time passwords.
// Store or sender failures are reported as domain.ErrOTPUnavailable.
type TOTPService struct {
	cfg     Config
	store   SecretStore
	sender  Sender
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// NewTOTPService creates a new TOTPService.
func NewTOTPService(cfg Config, store SecretStore, sender Sender, m *metrics.Metrics, logger zerolog.Logger) *TOTPService {
	cfg.setDefaults()

	s := &TOTPService{
		cfg:     cfg,
		store:   store,
		sender:  sender,
		metrics: m,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}

	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "otp",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
			if m != nil {
				m.BreakerState.WithLabelValues(name).Set(float64(to))
			}
		},
	})

	return s
}

// Send generates the current code for ownerID and hands it to the sender.
func (s *TOTPService) Send(ctx context.Context, ownerID string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		secret, err := s.ensureSecret(ctx, ownerID)
		if err != nil {
			return nil, err
		}

		code, err := totp.GenerateCodeCustom(secret, s.now(), s.validateOpts())
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}

		return nil, s.sender.Send(ctx, ownerID, code)
	})
	if err != nil {
		s.observe("send", "error")
		return unavailable(err)
	}

	s.observe("send", "ok")
	return nil
}

// Validate reports whether code is the owner's current, unspent code. It does
// not spend the code; see Consume.
func (s *TOTPService) Validate(ctx context.Context, ownerID, code string) (bool, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		secret, err := s.store.Secret(ctx, ownerID)
		if err != nil {
			return false, err
		}
		if secret == "" {
			return false, nil
		}

		ok, err := totp.ValidateCustom(code, secret, s.now(), s.validateOpts())
		if err != nil || !ok {
			// A malformed code is a rejection, not an outage.
			return false, nil
		}

		used, err := s.store.IsUsed(ctx, ownerID, code)
		if err != nil {
			return false, err
		}
		return !used, nil
	})
	if err != nil {
		s.observe("validate", "error")
		return false, unavailable(err)
	}

	valid := res.(bool)
	if valid {
		s.observe("validate", "ok")
	} else {
		s.observe("validate", "rejected")
	}
	return valid, nil
}

// Consume spends code for the replay window. It returns false if the code was
// already spent.
func (s *TOTPService) Consume(ctx context.Context, ownerID, code string) (bool, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.store.MarkUsed(ctx, ownerID, code, s.replayWindow())
	})
	if err != nil {
		s.observe("consume", "error")
		return false, unavailable(err)
	}

	fresh := res.(bool)
	if fresh {
		s.observe("consume", "ok")
	} else {
		s.observe("consume", "replayed")
	}
	return fresh, nil
}

func (s *TOTPService) ensureSecret(ctx context.Context, ownerID string) (string, error) {
	secret, err := s.store.Secret(ctx, ownerID)
	if err != nil || secret != "" {
		return secret, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.cfg.Issuer,
		AccountName: ownerID,
		Period:      s.periodSeconds(),
		Digits:      otp.Digits(s.cfg.Digits),
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}

	return s.store.SetSecretIfAbsent(ctx, ownerID, key.Secret())
}

func (s *TOTPService) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    s.periodSeconds(),
		Skew:      s.cfg.Skew,
		Digits:    otp.Digits(s.cfg.Digits),
		Algorithm: otp.AlgorithmSHA1,
	}
}

func (s *TOTPService) periodSeconds() uint {
	return uint(s.cfg.Period / time.Second)
}

// replayWindow covers every step in which a code stays acceptable.
func (s *TOTPService) replayWindow() time.Duration {
	return s.cfg.Period * time.Duration(2*s.cfg.Skew+1)
}

func (s *TOTPService) observe(operation, result string) {
	if s.metrics != nil {
		s.metrics.OTPRequests.WithLabelValues(operation, result).Inc()
	}
}

func unavailable(err error) error {
	if errors.Is(err, domain.ErrOTPUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrOTPUnavailable, err)
}

// LogSender writes codes to the logger. Development only.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender creates a new LogSender.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, ownerID, code string) error {
	s.logger.Info().Str("owner_id", ownerID).Str("code", code).Msg("otp issued")
	return nil
}
