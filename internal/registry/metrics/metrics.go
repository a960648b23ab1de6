package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry module.
type Metrics struct {
	InstitutionsCreated prometheus.Counter
}

// New creates a new Metrics instance with all registry module metrics registered.
func New() *Metrics {
	return &Metrics{
		InstitutionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "academy_institutions_created_total",
			Help: "Total number of institutions initialized",
		}),
	}
}

// IncrementInstitutionsCreated records a successful institution initialization.
func (m *Metrics) IncrementInstitutionsCreated() {
	if m != nil {
		m.InstitutionsCreated.Inc()
	}
}
