package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CoursesTotal  *prometheus.CounterVec
	RunsTotal     *prometheus.CounterVec
	RequestsTotal *prometheus.CounterVec
}

// NewMetrics registers the metrics with reg. A nil reg uses the default
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		CoursesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "syllabank_courses_processed_total",
			Help: "The total number of listing rows processed, by outcome",
		}, []string{"outcome"}), // e.g., 'imported', 'unchanged', 'failed'
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "syllabank_sync_runs_total",
			Help: "The total number of listing syncs, by result",
		}, []string{"result"}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "syllabank_http_requests_total",
			Help: "The total number of API requests",
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) IncCourses(outcome string) {
	m.CoursesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRuns(result string) {
	m.RunsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncRequests(route, status string) {
	m.RequestsTotal.WithLabelValues(route, status).Inc()
}
