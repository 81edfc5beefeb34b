package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// slidingLimiter tracks per-key operation timestamps over a sliding window.
type slidingLimiter struct {
	mu      sync.Mutex
	entries map[string][]time.Time
}

func newSlidingLimiter() *slidingLimiter {
	return &slidingLimiter{entries: make(map[string][]time.Time)}
}

// Allow records an operation for the key and reports whether it stays within
// limit per window.
func (limiter *slidingLimiter) Allow(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	if len(pruned) >= limit {
		return false
	}
	limiter.entries[key] = append(pruned, now)
	return true
}

func (limiter *slidingLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.entries[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}
	if len(pruned) == 0 {
		delete(limiter.entries, key)
	}
	return pruned
}

// TaskOpAllowed throttles mutating task operations per user.
func (handler *Handler) TaskOpAllowed(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Unauthorized", "unauthorized")
	}
	key := fmt.Sprintf("task-ops:%d", user.ID)
	if !handler.taskLimiter.Allow(key, time.Now(), taskOpLimit, taskOpWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "RateLimited", "too many task operations, try again shortly")
	}
	return c.Next()
}
