package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRateLimiter_AllowWithinLimit(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	cfg := RateLimitConfig{RequestsPerMinute: 3}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow("client-a", cfg)
		assert.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow("client-a", cfg)
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestMemoryRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	cfg := RateLimitConfig{RequestsPerMinute: 1}

	allowed, err := limiter.Allow("client-a", cfg)
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow("client-b", cfg)
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow("client-a", cfg)
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestMemoryRateLimiter_Reset(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	cfg := RateLimitConfig{RequestsPerMinute: 1}

	allowed, _ := limiter.Allow("client-a", cfg)
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("client-a", cfg)
	assert.False(t, allowed)

	assert.NoError(t, limiter.Reset("client-a"))

	allowed, _ = limiter.Allow("client-a", cfg)
	assert.True(t, allowed)
}

func TestMemoryRateLimiter_GetRemaining(t *testing.T) {
	limiter := NewMemoryRateLimiter()
	cfg := RateLimitConfig{RequestsPerMinute: 10}

	for i := 0; i < 4; i++ {
		_, err := limiter.Allow("client-a", cfg)
		assert.NoError(t, err)
	}

	count, err := limiter.GetRemaining("client-a", time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestMemoryRateLimiter_NoConfiguredWindowAlwaysAllows(t *testing.T) {
	limiter := NewMemoryRateLimiter()

	for i := 0; i < 100; i++ {
		allowed, err := limiter.Allow("client-a", RateLimitConfig{})
		assert.NoError(t, err)
		assert.True(t, allowed)
	}
}
