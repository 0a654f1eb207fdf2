package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"learn.admission/api"
	"learn.admission/metrics"
	"learn.admission/types"
)

// RateLimitMiddleware applies a keyed admission limiter to HTTP handlers.
type RateLimitMiddleware struct {
	limiter *api.Limiter[string]
	metrics *metrics.AdmissionMetrics
}

// NewRateLimitMiddleware creates a new RateLimitMiddleware.
func NewRateLimitMiddleware(limiter *api.Limiter[string], metrics *metrics.AdmissionMetrics) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		metrics: metrics,
	}
}

// Handle wraps an http.HandlerFunc with admission control. keyFunc extracts
// the admission key from the request; each request consumes weight 1. A
// RetryAfterError maps to 429 with a Retry-After header (ceiling seconds), a
// blocked policy to a bare 429.
func (m *RateLimitMiddleware) Handle(next http.HandlerFunc, keyFunc func(*http.Request) string) http.HandlerFunc {
	return m.HandleWeighted(next, keyFunc, func(*http.Request) int { return 1 })
}

// HandleWeighted is Handle with a per-request weight: weightFunc maps each
// request to the number of tokens it consumes, so heavier operations can be
// charged more than one token. The admission stays all-or-nothing.
func (m *RateLimitMiddleware) HandleWeighted(next http.HandlerFunc, keyFunc func(*http.Request) string, weightFunc func(*http.Request) int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := keyFunc(r)
		if key == "" {
			log.Warn().Str("remote_addr", r.RemoteAddr).Msg("Middleware: Could not extract admission key, denying request")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		err := m.limiter.Consume(key, weightFunc(r))
		m.metrics.Record(key, err)

		switch {
		case err == nil:
			next.ServeHTTP(w, r)
		case errors.Is(err, types.ErrBlocked):
			log.Debug().Str("limiter_key", key).Msg("Middleware: Request denied by blocked policy")
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			var retry *types.RetryAfterError
			if errors.As(err, &retry) {
				secs := int64(math.Ceil(retry.Delay.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
				log.Debug().Str("limiter_key", key).Dur("retry_after", retry.Delay).Msg("Middleware: Request rate limited")
			}
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}
}
