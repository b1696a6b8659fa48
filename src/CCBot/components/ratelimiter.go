package components

import (
	"sync"
	"time"
)

// UserRateLimiter throttles how often a Discord user may run a
// verification; each run is a paid search plus a model call.
type UserRateLimiter struct {
	users map[string]time.Time
	mu    sync.Mutex
	limit time.Duration
}

func NewUserRateLimiter(limit time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		users: make(map[string]time.Time),
		limit: limit,
	}
}

func (rl *UserRateLimiter) CanUse(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lastUse, exists := rl.users[userID]
	if !exists || time.Since(lastUse) >= rl.limit {
		rl.users[userID] = time.Now()
		return true
	}
	return false
}

func (rl *UserRateLimiter) TimeUntilNext(userID string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lastUse, exists := rl.users[userID]
	if !exists {
		return 0
	}

	elapsed := time.Since(lastUse)
	if elapsed >= rl.limit {
		return 0
	}
	return rl.limit - elapsed
}
