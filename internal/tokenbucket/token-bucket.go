// Package tokenbucket implements the token bucket admission algorithm as a
// GCRA-style timestamp reformulation. Instead of keeping a token counter that
// is periodically replenished, each bucket tracks the single point in virtual
// time up to which all previously admitted weight has been paid for. This
// keeps the arithmetic in integer nanoseconds (no fractional-refill drift) and
// makes weighted requests atomic: a rejection changes no state at all.
package tokenbucket

import (
	"sync"
	"time"

	"learn.admission/types"
)

// TokenBucket is one admission engine: it enforces a single rate policy of
// capacity tokens per interval. It is safe for concurrent use; the only
// mutable field is the schedule mark, guarded by one mutex.
type TokenBucket struct {
	timePerToken time.Duration // virtual time one token costs; 0 marks a permanently blocked policy
	interval     time.Duration
	clock        types.Clock

	mu   sync.Mutex
	mark time.Time // virtual time paid for so far; zero until the first admission
}

// New creates a bucket admitting up to capacity tokens per interval, reading
// time from the system clock.
func New(capacity int, interval time.Duration) *TokenBucket {
	return NewWithClock(capacity, interval, types.SystemClock())
}

// NewWithClock creates a bucket reading time from the given clock.
// Construction never fails: a capacity or interval of zero degrades to a
// permanently blocked bucket, so misconfiguration surfaces uniformly through
// Consume rather than at construction time.
func NewWithClock(capacity int, interval time.Duration, clock types.Clock) *TokenBucket {
	b := &TokenBucket{
		interval: interval,
		clock:    clock,
	}
	if capacity > 0 && interval > 0 {
		b.timePerToken = interval / time.Duration(capacity)
	}
	return b
}

// Consume requests admission for weight tokens. The request is granted in
// full or not at all; a rejected call leaves the bucket exactly as it was.
//
// A nil return admits the request. types.ErrBlocked reports a permanently
// blocked policy. A *types.RetryAfterError reports the minimum wait before
// the same request can succeed; a weight above capacity is never rejected
// outright, it just needs a wait longer than one interval.
func (b *TokenBucket) Consume(weight int) error {
	if b.timePerToken == 0 {
		return types.ErrBlocked
	}

	now := b.clock.Now()
	windowStart := now.Add(-b.interval)
	debt := time.Duration(weight) * b.timePerToken

	b.mu.Lock()
	defer b.mu.Unlock()

	// The baseline is the schedule mark if one exists, but never earlier
	// than the start of the current interval: credit older than one full
	// interval is forfeited, which is what bounds the burst to capacity.
	baseline := b.mark
	if baseline.IsZero() || windowStart.After(baseline) {
		baseline = windowStart
	}

	required := baseline.Add(debt)
	if required.After(now) {
		return &types.RetryAfterError{Delay: required.Sub(now)}
	}
	b.mark = required
	return nil
}
