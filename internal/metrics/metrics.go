package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Hire outcomes
const (
	HireOutcomeHired     = "hired"
	HireOutcomeConflict  = "conflict"
	HireOutcomeForbidden = "forbidden"
	HireOutcomeNotFound  = "not_found"
	HireOutcomeError     = "error"
)

// Notification outcomes
const (
	NotifyOutcomeSent   = "sent"
	NotifyOutcomeFailed = "failed"
)

// Metrics holds the marketplace collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	hireAttempts  *prometheus.CounterVec
	hireDuration  prometheus.Histogram
	notifications *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. connections, when
// set, backs a gauge of live notification connections.
func New(reg prometheus.Registerer, connections func() int) *Metrics {
	m := &Metrics{
		hireAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gig_hire_attempts_total",
			Help: "Hire attempts by outcome.",
		}, []string{"outcome"}),
		hireDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gig_hire_duration_seconds",
			Help:    "Duration of hire transactions.",
			Buckets: prometheus.DefBuckets,
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gig_notifications_total",
			Help: "Hire notifications handed to the notifier by outcome.",
		}, []string{"outcome"}),
	}

	if reg == nil {
		return m
	}

	reg.MustRegister(m.hireAttempts, m.hireDuration, m.notifications)
	if connections != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "gig_notify_connections",
			Help: "Live notification connections held by this instance.",
		}, func() float64 {
			return float64(connections())
		}))
	}

	return m
}

// ObserveHire records a hire attempt.
func (m *Metrics) ObserveHire(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.hireAttempts.WithLabelValues(outcome).Inc()
	m.hireDuration.Observe(seconds)
}

// ObserveNotification records a notification hand-off.
func (m *Metrics) ObserveNotification(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(outcome).Inc()
}
