package sharepoint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	tests := []struct {
		name string
		cfg  RateLimitConfig
	}{
		{name: "default", cfg: DefaultRateLimit},
		{name: "custom", cfg: RateLimitConfig{RequestsPerSecond: 2.0, BurstSize: 3}},
		{name: "zero values fall back", cfg: RateLimitConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.cfg)
			require.NotNil(t, rl)
			assert.NotNil(t, rl.limiter)
			assert.Greater(t, rl.limiter.Burst(), 0)
		})
	}
}

func TestRateLimiter_Wait(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimit)

	err := rl.Wait(context.Background())

	assert.NoError(t, err)
}

func TestRateLimiter_Wait_ContextCancelled(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimit)
	rl.RecordRateLimitError(30)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimit)

	// First few requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow(), "request %d should be allowed", i)
	}
}

func TestRateLimiter_RecordRateLimitError(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimit)

	rl.RecordRateLimitError(1)

	assert.False(t, rl.Allow())

	time.Sleep(1100 * time.Millisecond)

	assert.True(t, rl.Allow())
}

func TestRateLimiter_RecordRateLimitError_DefaultBackoff(t *testing.T) {
	for _, seconds := range []int{0, -5} {
		rl := NewRateLimiter(DefaultRateLimit)

		rl.RecordRateLimitError(seconds)

		rl.mu.Lock()
		retryAt := rl.retryAt
		rl.mu.Unlock()

		assert.WithinDuration(t, time.Now().Add(60*time.Second), retryAt, 2*time.Second)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		header   string
		expected int
	}{
		{header: "120", expected: 120},
		{header: " 5 ", expected: 5},
		{header: "", expected: 0},
		{header: "-1", expected: 0},
		{header: "Wed, 21 Oct 2015 07:28:00 GMT", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseRetryAfter(tt.header))
		})
	}
}
