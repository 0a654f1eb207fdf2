package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"learn.admission/types"
)

// AdmissionMetrics counts admission outcomes per limiter key.
type AdmissionMetrics struct {
	Admitted *prometheus.CounterVec
	Retried  *prometheus.CounterVec
	Blocked  *prometheus.CounterVec
}

// NewAdmissionMetrics creates the outcome counters and registers them with reg.
func NewAdmissionMetrics(reg prometheus.Registerer) *AdmissionMetrics {
	m := &AdmissionMetrics{
		Admitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admission_admitted_total",
				Help: "Requests admitted by the rate limiter",
			},
			[]string{"key"},
		),
		Retried: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admission_retry_total",
				Help: "Requests rejected with a retry-after delay",
			},
			[]string{"key"},
		),
		Blocked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admission_blocked_total",
				Help: "Requests rejected by a permanently blocked policy",
			},
			[]string{"key"},
		),
	}

	reg.MustRegister(m.Admitted, m.Retried, m.Blocked)
	return m
}

// Record counts one Consume outcome for key.
func (m *AdmissionMetrics) Record(key string, err error) {
	switch {
	case err == nil:
		m.Admitted.WithLabelValues(key).Inc()
	case errors.Is(err, types.ErrBlocked):
		m.Blocked.WithLabelValues(key).Inc()
	default:
		m.Retried.WithLabelValues(key).Inc()
	}
}
