package ratelimit

import (
	"sync"
	"time"
)

// MemoryRateLimiter is a sliding-window limiter for single-instance
// deployments. Multi-instance setups need the redis backend, per-process
// counters cannot see each other.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string][]time.Time
}

func NewMemoryRateLimiter() RateLimiter {
	return &MemoryRateLimiter{
		entries: make(map[string][]time.Time),
	}
}

func (l *MemoryRateLimiter) Allow(key string, config RateLimitConfig) (bool, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	windows := []struct {
		duration time.Duration
		limit    int
	}{
		{time.Minute, config.RequestsPerMinute},
		{time.Hour, config.RequestsPerHour},
		{24 * time.Hour, config.RequestsPerDay},
	}

	// Prune against the widest configured window so the slice stays bounded.
	var widest time.Duration
	for _, w := range windows {
		if w.limit > 0 && w.duration > widest {
			widest = w.duration
		}
	}
	if widest == 0 {
		return true, nil
	}

	pruned := l.entries[key][:0]
	for _, ts := range l.entries[key] {
		if now.Sub(ts) < widest {
			pruned = append(pruned, ts)
		}
	}

	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		count := 0
		for _, ts := range pruned {
			if now.Sub(ts) < w.duration {
				count++
			}
		}
		if count >= w.limit {
			l.entries[key] = pruned
			return false, nil
		}
	}

	l.entries[key] = append(pruned, now)
	return true, nil
}

func (l *MemoryRateLimiter) GetRemaining(key string, window time.Duration) (int64, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	var count int64
	for _, ts := range l.entries[key] {
		if now.Sub(ts) < window {
			count++
		}
	}
	return count, nil
}

func (l *MemoryRateLimiter) Reset(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, key)
	return nil
}
