package auth

import (
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	defaultMaxFailedLogins = 5
	defaultLockoutMinutes  = 15
)

// LoginThrottle tracks consecutive failed logins per username and locks
// the account out for a window once the limit is hit. The state has no
// durability requirement; the in-memory implementation below is enough
// for a single-instance deployment, a multi-instance one would back this
// interface with a shared store.
type LoginThrottle interface {
	RegisterFailure(username string)
	Clear(username string)
	IsLocked(username string) bool
}

type attemptState struct {
	failures    int
	lockedUntil time.Time
}

type MemoryThrottle struct {
	mu          sync.Mutex
	maxFailures int
	lockout     time.Duration
	now         func() time.Time
	attempts    map[string]*attemptState
}

func NewMemoryThrottle(maxFailures int, lockout time.Duration) *MemoryThrottle {
	return &MemoryThrottle{
		maxFailures: maxFailures,
		lockout:     lockout,
		now:         time.Now,
		attempts:    make(map[string]*attemptState),
	}
}

// NewMemoryThrottleFromEnv reads MAX_FAILED_LOGINS and LOCKOUT_MINUTES,
// falling back to the defaults when unset or invalid.
func NewMemoryThrottleFromEnv() *MemoryThrottle {
	maxFailures := defaultMaxFailedLogins
	if raw := os.Getenv("MAX_FAILED_LOGINS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxFailures = parsed
		}
	}

	lockoutMinutes := defaultLockoutMinutes
	if raw := os.Getenv("LOCKOUT_MINUTES"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			lockoutMinutes = parsed
		}
	}

	return NewMemoryThrottle(maxFailures, time.Duration(lockoutMinutes)*time.Minute)
}

func (t *MemoryThrottle) RegisterFailure(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.attempts[username]
	if !ok {
		state = &attemptState{}
		t.attempts[username] = state
	}

	state.failures++

	// Hitting the limit arms the lockout and resets the counter, so the
	// next window starts counting from zero once the lock expires.
	if state.failures >= t.maxFailures {
		state.lockedUntil = t.now().Add(t.lockout)
		state.failures = 0
	}
}

func (t *MemoryThrottle) Clear(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.attempts, username)
}

func (t *MemoryThrottle) IsLocked(username string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.attempts[username]
	if !ok {
		return false
	}

	if state.lockedUntil.IsZero() {
		return false
	}

	if t.now().Before(state.lockedUntil) {
		return true
	}

	state.lockedUntil = time.Time{}
	return false
}
