package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the catalog module.
type Metrics struct {
	CoursesCreated prometheus.Counter
}

// New creates a new Metrics instance with all catalog module metrics registered.
func New() *Metrics {
	return &Metrics{
		CoursesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "academy_courses_created_total",
			Help: "Total number of courses registered",
		}),
	}
}

// IncrementCoursesCreated records a successful course registration.
func (m *Metrics) IncrementCoursesCreated() {
	if m != nil {
		m.CoursesCreated.Inc()
	}
}
