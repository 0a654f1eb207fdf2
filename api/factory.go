package api

import (
	"time"

	"learn.admission/internal/tokenbucket"
	"learn.admission/types"
)

// NewTokenBucket creates a standalone admission engine enforcing capacity
// tokens per interval against the system clock. Construction never fails: a
// zero capacity or interval yields an engine whose Consume always returns
// types.ErrBlocked.
func NewTokenBucket(capacity int, interval time.Duration) types.Limiter {
	return tokenbucket.New(capacity, interval)
}

// NewTokenBucketWithClock is NewTokenBucket with an injected clock, for
// callers that control time (simulations, tests).
func NewTokenBucketWithClock(capacity int, interval time.Duration, clock types.Clock) types.Limiter {
	return tokenbucket.NewWithClock(capacity, interval, clock)
}
