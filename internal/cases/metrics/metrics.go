package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the case lifecycle.
type Metrics struct {
	CasesSubmitted     *prometheus.CounterVec
	Transitions        *prometheus.CounterVec
	VolunteerAssigned  prometheus.Counter
	TransitionDuration *prometheus.HistogramVec
}

// New registers case metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CasesSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medhope_cases_submitted_total",
			Help: "Total number of cases submitted, by classified priority",
		}, []string{"priority"}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medhope_case_transitions_total",
			Help: "Lifecycle transitions applied, by resulting state",
		}, []string{"state"}),
		VolunteerAssigned: factory.NewCounter(prometheus.CounterOpts{
			Name: "medhope_volunteer_assignments_total",
			Help: "Total number of volunteer assignments, including reassignments",
		}),
		TransitionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medhope_case_transition_duration_seconds",
			Help:    "Duration of lifecycle operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementSubmitted(priority string) {
	if m == nil {
		return
	}
	m.CasesSubmitted.WithLabelValues(priority).Inc()
}

func (m *Metrics) IncrementTransition(state string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(state).Inc()
}

func (m *Metrics) IncrementAssigned() {
	if m == nil {
		return
	}
	m.VolunteerAssigned.Inc()
}

// ObserveOperation records the duration of a lifecycle operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.TransitionDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
