package api

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"learn.admission/internal/tokenbucket"
	"learn.admission/types"
)

// Limiter multiplexes independent token buckets over keys of type K. Each key
// carries its own rate policy and its own timing state; different keys never
// contend. The key set is frozen at Build time.
type Limiter[K comparable] struct {
	buckets map[K]*tokenbucket.TokenBucket
}

type limit struct {
	capacity int
	interval time.Duration
}

// Builder accumulates per-key rate policies for a Limiter.
type Builder[K comparable] struct {
	limits map[K]limit
	clock  types.Clock
}

// Configure starts building a Limiter. Policies are added with Limit and the
// mapping is frozen by Build.
func Configure[K comparable]() *Builder[K] {
	return &Builder[K]{
		limits: make(map[K]limit),
		clock:  types.SystemClock(),
	}
}

// Limit registers a policy of capacity tokens per interval for key. It may be
// called repeatedly; registering the same key again overwrites the earlier
// policy (last registration wins).
func (b *Builder[K]) Limit(key K, capacity int, interval time.Duration) *Builder[K] {
	b.limits[key] = limit{capacity: capacity, interval: interval}
	return b
}

// WithClock makes all buckets built by this builder read time from clock
// instead of the system clock.
func (b *Builder[K]) WithClock(clock types.Clock) *Builder[K] {
	b.clock = clock
	return b
}

// Build materializes one token bucket per registered key, all sharing the
// builder's clock, and returns the frozen Limiter. Keys cannot be added,
// removed, or reconfigured afterwards.
func (b *Builder[K]) Build() *Limiter[K] {
	buckets := make(map[K]*tokenbucket.TokenBucket, len(b.limits))
	for key, l := range b.limits {
		buckets[key] = tokenbucket.NewWithClock(l.capacity, l.interval, b.clock)
		log.Info().Str("limiter_key", fmt.Sprint(key)).Int("capacity", l.capacity).Dur("interval", l.interval).Msg("Limiter: Initialized")
	}
	return &Limiter[K]{buckets: buckets}
}

// Consume requests admission of weight tokens for key. A key with no
// registered policy is admitted unconditionally, without consulting any clock
// (fail-open). Otherwise the decision of the key's bucket is returned
// verbatim: nil, types.ErrBlocked, or a *types.RetryAfterError.
func (l *Limiter[K]) Consume(key K, weight int) error {
	bucket, ok := l.buckets[key]
	if !ok {
		return nil
	}
	return bucket.Consume(weight)
}
