package ratelimit

import (
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// Store counts calls per key inside fixed windows. Implementations
// may be process-local (advisory) or shared; call sites only depend
// on this interface.
type Store interface {
	// Increment bumps the counter for key, starting a new window when
	// the previous one has expired, and returns the updated count and
	// the time the current window resets.
	Increment(key string, now time.Time) (count int, resetAt time.Time)
	// Reset clears the counter for key.
	Reset(key string)
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore is an in-process Store over a concurrent map. Counts
// are best effort under concurrency; this is abuse mitigation, not a
// billing-grade quota.
type MemoryStore struct {
	windowLen time.Duration
	entries   *xsync.MapOf[string, window]
}

// NewMemoryStore creates a MemoryStore with the given window length.
func NewMemoryStore(windowLen time.Duration) *MemoryStore {
	return &MemoryStore{
		windowLen: windowLen,
		entries:   xsync.NewMapOf[string, window](),
	}
}

// Increment implements Store
func (s *MemoryStore) Increment(key string, now time.Time) (int, time.Time) {
	updated, _ := s.entries.Compute(key, func(old window, loaded bool) (window, bool) {
		if !loaded || now.After(old.resetAt) {
			return window{count: 1, resetAt: now.Add(s.windowLen)}, false
		}
		return window{count: old.count + 1, resetAt: old.resetAt}, false
	})
	return updated.count, updated.resetAt
}

// Reset implements Store
func (s *MemoryStore) Reset(key string) {
	s.entries.Delete(key)
}

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter applies a fixed-window limit on top of a Store.
type Limiter struct {
	store Store
	limit int
}

// NewLimiter creates a Limiter allowing limit calls per window.
func NewLimiter(store Store, limit int) *Limiter {
	return &Limiter{store: store, limit: limit}
}

// Allow records one call for key and reports whether it fits in the
// current window.
func (l *Limiter) Allow(key string) Decision {
	now := time.Now()
	count, resetAt := l.store.Increment(key, now)

	if count > l.limit {
		retryAfter := resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return Decision{RetryAfter: retryAfter}
	}

	return Decision{Allowed: true, Remaining: l.limit - count}
}
