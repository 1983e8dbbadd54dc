// Package throttle tracks failed login attempts per account identifier and
// blocks further attempts once a threshold is reached.
package throttle

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyAttempts is returned by Allow once an identifier has reached the
// failure threshold.
var ErrTooManyAttempts = errors.New("too many failed login attempts")

const (
	// DefaultThreshold is the number of failures after which an identifier
	// is blocked.
	DefaultThreshold = 5

	// DefaultTTL is how long a zeroed entry is kept around after a
	// successful login before the sweep removes it.
	DefaultTTL = 30 * time.Minute
)

type entry struct {
	failures  int
	expiresAt time.Time // zero means no expiry scheduled
}

// Limiter is an in-memory per-identifier failure counter. State is
// process-local and lost on restart. All methods are safe for concurrent
// use; the counter is guarded so overlapping attempts for the same
// identifier cannot lose an increment.
type Limiter struct {
	mu        sync.Mutex
	entries   map[string]*entry
	threshold int
	ttl       time.Duration
	now       func() time.Time
}

// NewLimiter creates a Limiter that blocks an identifier after threshold
// failures and expires entries ttl after a successful login.
func NewLimiter(threshold int, ttl time.Duration) *Limiter {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Limiter{
		entries:   make(map[string]*entry),
		threshold: threshold,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Allow reports whether a login attempt for identifier may proceed. It
// returns ErrTooManyAttempts once the recorded failure count has reached the
// threshold. Expired entries are dropped on access.
func (l *Limiter) Allow(identifier string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok {
		return nil
	}

	if l.expired(e) {
		delete(l.entries, identifier)
		return nil
	}

	if e.failures >= l.threshold {
		return ErrTooManyAttempts
	}

	return nil
}

// RecordFailure increments the failure counter for identifier, creating the
// entry on the first failure. A wrong password and an unknown email are
// recorded the same way.
func (l *Limiter) RecordFailure(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok || l.expired(e) {
		l.entries[identifier] = &entry{failures: 1}
		return
	}

	e.failures++
	e.expiresAt = time.Time{}
}

// RecordSuccess resets the failure counter for identifier to zero and stamps
// the entry for removal after the TTL. The entry is unblocked immediately;
// the later removal only reclaims memory. Recording success for an unknown
// identifier is a no-op.
func (l *Limiter) RecordSuccess(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok {
		return
	}

	e.failures = 0
	e.expiresAt = l.now().Add(l.ttl)
}

// Sweep removes expired entries and returns how many were dropped. Removing
// an entry that has already gone is a no-op.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for identifier, e := range l.entries {
		if l.expired(e) {
			delete(l.entries, identifier)
			removed++
		}
	}

	return removed
}

// Run sweeps expired entries at the given interval until ctx is cancelled.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

func (l *Limiter) expired(e *entry) bool {
	return !e.expiresAt.IsZero() && !l.now().Before(e.expiresAt)
}
