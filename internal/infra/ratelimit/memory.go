// Package ratelimit provides the submission limiter used by the lead intake
// endpoint. The in-memory limiter is per-process; deployments with more than
// one instance should use the Redis limiter so the window is shared.
package ratelimit

import (
	"sync"
	"time"
)

// MemoryLimiter is a sliding-window counter keyed by caller IP. Entries
// older than the window are pruned lazily on each check.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string][]time.Time
	limit   int
	window  time.Duration
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
	}
}

func (l *MemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	recent := l.entries[key][:0]
	for _, t := range l.entries[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.limit {
		l.entries[key] = recent
		return false
	}

	l.entries[key] = append(recent, now)
	return true
}
