// Package types defines the shared contracts of the admission limiter: the
// clock capability, the per-engine Limiter interface, and the outcome taxonomy.
package types

import (
	"errors"
	"fmt"
	"time"
)

// Clock supplies the current instant. Implementations must be safe for
// concurrent use. The limiter assumes the clock never moves backwards between
// calls; that assumption is not enforced.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock Clock used when none is injected.
func SystemClock() Clock { return systemClock{} }

// Limiter is the contract of a single admission engine.
type Limiter interface {
	// Consume requests admission for the given weight. A nil return admits
	// the request. The only other outcomes are ErrBlocked and RetryAfterError.
	Consume(weight int) error
}

// ErrBlocked reports a permanently inadmissible policy, caused only by a zero
// capacity or zero interval at construction. Retrying never helps.
var ErrBlocked = errors.New("admission permanently blocked")

// RetryAfterError reports that the requested weight is not admissible yet.
// The request may succeed once Delay has elapsed; nothing was consumed.
type RetryAfterError struct {
	Delay time.Duration
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("retry after %.1f seconds", e.Delay.Seconds())
}
