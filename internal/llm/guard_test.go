package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	calls int
	err   error
	reply string
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, _ string, _ ModelTier) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *stubClient) GetModel(_ ModelTier) string { return "stub-model" }

func (s *stubClient) Close() error { return nil }

func TestGuardedClient_PassesThrough(t *testing.T) {
	stub := &stubClient{reply: "What is Go?"}
	guard := NewGuardedClient(stub, DefaultGuardConfig(), nil)

	out, err := guard.GenerateContent(context.Background(), "prompt", TierLite)
	require.NoError(t, err)
	assert.Equal(t, "What is Go?", out)
	assert.Equal(t, "stub-model", guard.GetModel(TierLite))
	assert.True(t, guard.Healthy())
}

func TestGuardedClient_BreakerOpensAfterFailures(t *testing.T) {
	stub := &stubClient{err: errors.New("quota exceeded")}
	cfg := GuardConfig{
		BreakerEnabled:   true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.5,
	}
	guard := NewGuardedClient(stub, cfg, nil)

	for i := 0; i < 3; i++ {
		_, err := guard.GenerateJSON(context.Background(), "prompt", TierStandard)
		require.Error(t, err)
	}
	assert.False(t, guard.Healthy())

	_, err := guard.GenerateJSON(context.Background(), "prompt", TierStandard)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, stub.calls, "open breaker must not reach the client")
}

func TestGuardedClient_LimiterHonoursContext(t *testing.T) {
	stub := &stubClient{reply: "ok"}
	guard := NewGuardedClient(stub, GuardConfig{RequestsPerMinute: 1, Burst: 1}, nil)

	_, err := guard.GenerateContent(context.Background(), "first", TierLite)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = guard.GenerateContent(ctx, "second", TierLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
	assert.Equal(t, 1, stub.calls)
}

func TestGuardedClient_DisabledGuardIsTransparent(t *testing.T) {
	stub := &stubClient{err: errors.New("boom")}
	guard := NewGuardedClient(stub, GuardConfig{}, nil)

	for i := 0; i < 5; i++ {
		_, err := guard.GenerateContent(context.Background(), "p", TierLite)
		assert.EqualError(t, err, "boom")
	}
	assert.True(t, guard.Healthy())
	assert.Equal(t, 5, stub.calls)
}
