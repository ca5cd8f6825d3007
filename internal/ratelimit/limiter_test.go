package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter("", Config{RequestsPerMin: 60, Burst: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := rl.Allow(ctx, "10.0.0.1")
		assert.True(t, res.Allowed, "request %d within burst should pass", i)
	}

	res := rl.Allow(ctx, "10.0.0.1")
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter.Seconds(), 0.0)
}

func TestFallbackLimitsPerIP(t *testing.T) {
	rl := NewRateLimiter("", Config{RequestsPerMin: 60, Burst: 1})
	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "10.0.0.1").Allowed)
	assert.False(t, rl.Allow(ctx, "10.0.0.1").Allowed)

	// A different client has its own bucket
	assert.True(t, rl.Allow(ctx, "10.0.0.2").Allowed)
}

func TestInvalidRedisURLFallsBackToMemory(t *testing.T) {
	rl := NewRateLimiter("not-a-url", Config{RequestsPerMin: 60, Burst: 2})

	assert.Nil(t, rl.redisLimiter)
	assert.True(t, rl.Allow(context.Background(), "10.0.0.1").Allowed)
}
