package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the enrollment engine.
type Metrics struct {
	// Committed enrollments by stage ("institution", "course")
	Enrollments *prometheus.CounterVec

	// Rejected enrollments by stage and failure code
	Rejections *prometheus.CounterVec

	// End-to-end enrollment latency by stage
	EnrollLatency *prometheus.HistogramVec

	// Completions marked on the ledger
	Completions prometheus.Counter
}

// New creates a new Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		Enrollments: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_enrollments_total",
			Help: "Total committed enrollments by stage",
		}, []string{"stage"}),

		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_enrollment_rejections_total",
			Help: "Total rejected enrollment attempts by stage and failure code",
		}, []string{"stage", "code"}),

		EnrollLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "academy_enrollment_duration_seconds",
			Help:    "Duration of enrollment operations including precondition checks and commit",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"stage"}),

		Completions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "academy_enrollment_completions_total",
			Help: "Total enrollments marked completed",
		}),
	}
}

// IncrementEnrollments records a committed enrollment.
func (m *Metrics) IncrementEnrollments(stage string) {
	if m != nil {
		m.Enrollments.WithLabelValues(stage).Inc()
	}
}

// IncrementRejections records a rejected enrollment attempt.
func (m *Metrics) IncrementRejections(stage, code string) {
	if m != nil {
		m.Rejections.WithLabelValues(stage, code).Inc()
	}
}

// ObserveEnrollLatency records the duration of an enrollment operation.
func (m *Metrics) ObserveEnrollLatency(stage string, d time.Duration) {
	if m != nil {
		m.EnrollLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncrementCompletions records a completion mark.
func (m *Metrics) IncrementCompletions() {
	if m != nil {
		m.Completions.Inc()
	}
}
