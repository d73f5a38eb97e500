package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiterBlocksFourthInWindow(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)

	assert.True(t, limiter.Allow("203.0.113.7"))
	assert.True(t, limiter.Allow("203.0.113.7"))
	assert.True(t, limiter.Allow("203.0.113.7"))
	assert.False(t, limiter.Allow("203.0.113.7"), "4th submission in the window must be rejected")
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		limiter.Allow("203.0.113.7")
	}

	assert.False(t, limiter.Allow("203.0.113.7"))
	assert.True(t, limiter.Allow("198.51.100.9"), "other IPs keep their own window")
}

func TestMemoryLimiterWindowSlides(t *testing.T) {
	limiter := NewMemoryLimiter(3, 30*time.Millisecond)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("203.0.113.7"))
	}
	assert.False(t, limiter.Allow("203.0.113.7"))

	time.Sleep(40 * time.Millisecond)

	assert.True(t, limiter.Allow("203.0.113.7"), "entries older than the window are pruned")
}

func TestMemoryLimiterRejectionDoesNotConsumeSlot(t *testing.T) {
	limiter := NewMemoryLimiter(1, 30*time.Millisecond)

	assert.True(t, limiter.Allow("203.0.113.7"))
	assert.False(t, limiter.Allow("203.0.113.7"))

	time.Sleep(40 * time.Millisecond)

	// Only the accepted submission counted against the window.
	assert.True(t, limiter.Allow("203.0.113.7"))
}
