package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// GuardConfig configures rate limiting and circuit breaking around a Client.
// A zero RequestsPerMinute disables the limiter; BreakerEnabled false disables the breaker.
type GuardConfig struct {
	RequestsPerMinute int
	Burst             int

	BreakerEnabled   bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultGuardConfig returns limits suited to an interactive session
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		RequestsPerMinute: 30,
		Burst:             5,
		BreakerEnabled:    true,
		MaxRequests:       1,
		Interval:          time.Minute,
		Timeout:           30 * time.Second,
		MinRequests:       3,
		FailureThreshold:  0.6,
	}
}

// GuardedClient wraps a Client with a token-bucket limiter and a circuit breaker.
// Once the breaker opens, calls fail fast with gobreaker.ErrOpenState and callers
// fall back to template questions or keyword extraction.
type GuardedClient struct {
	inner   Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
	logger  *zap.Logger
}

// NewGuardedClient wraps inner according to cfg
func NewGuardedClient(inner Client, cfg GuardConfig, logger *zap.Logger) *GuardedClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &GuardedClient{inner: inner, logger: logger}

	if cfg.RequestsPerMinute > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), burst)
	}

	if cfg.BreakerEnabled {
		settings := gobreaker.Settings{
			Name:        "llm-" + inner.GetModel(TierStandard),
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests == 0 {
					return false
				}
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Info("circuit breaker state changed",
					zap.String("name", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}
		g.breaker = gobreaker.NewCircuitBreaker[string](settings)
	}

	return g
}

// GenerateContent generates text through the guard
func (g *GuardedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return g.execute(ctx, func() (string, error) {
		return g.inner.GenerateContent(ctx, prompt, tier)
	})
}

// GenerateJSON generates JSON through the guard
func (g *GuardedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return g.execute(ctx, func() (string, error) {
		return g.inner.GenerateJSON(ctx, prompt, tier)
	})
}

// GetModel returns the wrapped client's model for tier
func (g *GuardedClient) GetModel(tier ModelTier) string {
	return g.inner.GetModel(tier)
}

// Close closes the wrapped client
func (g *GuardedClient) Close() error {
	return g.inner.Close()
}

// Healthy reports whether the breaker is closed. A guard without a breaker is always healthy.
func (g *GuardedClient) Healthy() bool {
	if g.breaker == nil {
		return true
	}
	return g.breaker.State() == gobreaker.StateClosed
}

func (g *GuardedClient) execute(ctx context.Context, fn func() (string, error)) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	if g.breaker == nil {
		return fn()
	}
	return g.breaker.Execute(fn)
}

var _ Client = (*GuardedClient)(nil)
