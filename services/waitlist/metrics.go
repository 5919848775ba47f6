package waitlist

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes recorded by Metrics
const (
	OutcomeSuccess       = "success"
	OutcomeRejectedLocal = "rejected_local"
	OutcomeInFlight      = "in_flight"
)

// Metrics counts waitlist submissions by outcome. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics registers the waitlist collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_submissions_total",
				Help: "Total number of waitlist submit attempts by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waitlist_submission_duration_seconds",
				Help:    "Time spent waiting on the signup API.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.submissions, m.duration)
	return m
}

func (m *Metrics) count(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
