// Package throttle tracks failed login attempts per originating address and
// locks an address out after too many failures in a row.
//
// State lives in process memory only: a restart clears every record, and two
// server processes behind a load balancer each keep an independent count.
// Accepted for this low-traffic internal tool.
package throttle

import (
	"sync"
	"time"
)

const (
	// AttemptLimit is the number of consecutive failures before lockout.
	AttemptLimit = 5
	// LockoutWindow is how long an address stays locked after the last
	// failed attempt.
	LockoutWindow = 300 * time.Second
)

type record struct {
	attempts    int
	lastAttempt time.Time
}

// Tracker owns the address → failure record map. A single mutex guards the
// whole map; contention is negligible at this traffic level and it keeps the
// increment path free of lost updates.
type Tracker struct {
	mu      sync.Mutex
	records map[string]record
	now     func() time.Time
}

func New() *Tracker {
	return &Tracker{
		records: make(map[string]record),
		now:     time.Now,
	}
}

// NewWithClock builds a Tracker with an injected clock.
func NewWithClock(now func() time.Time) *Tracker {
	t := New()
	t.now = now
	return t
}

// RegisterFailure records one failed attempt for the address and returns the
// remaining attempts before lockout, floored at zero.
func (t *Tracker) RegisterFailure(addr string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.records[addr]
	rec.attempts++
	rec.lastAttempt = t.now()
	t.records[addr] = rec

	remaining := AttemptLimit - rec.attempts
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// IsLocked reports whether the address is currently locked out and, if so,
// how much of the lockout window remains. A record whose window has elapsed
// is purged before the check, so a stale lockout never blocks a retry.
func (t *Tracker) IsLocked(addr string) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[addr]
	if !ok {
		return false, 0
	}

	elapsed := t.now().Sub(rec.lastAttempt)
	if elapsed >= LockoutWindow {
		delete(t.records, addr)
		return false, 0
	}
	if rec.attempts >= AttemptLimit {
		return true, LockoutWindow - elapsed
	}
	return false, 0
}

// Clear removes the failure record unconditionally. Called after a
// successful authentication.
func (t *Tracker) Clear(addr string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, addr)
}
