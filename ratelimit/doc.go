// Package ratelimit provides a fixed-window rate limiter keyed by
// caller identity.
//
// The counter lives behind the Store interface so the in-memory map
// used here can be swapped for a shared external counter without
// changing call sites. The in-memory store is advisory: concurrent
// increments from the same caller in the same instant are a
// best-effort approximation, not an exact limit.
//
// Usage:
//
//	store := ratelimit.NewMemoryStore(time.Minute)
//	limiter := ratelimit.NewLimiter(store, 5)
//	if d := limiter.Allow(callerID); !d.Allowed {
//	    // respond 429, suggest d.RetryAfter
//	}
package ratelimit
