package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DiscoveryMetrics collects counters for one or more discovery runs.
type DiscoveryMetrics struct {
	projectsObserved *prometheus.CounterVec
	sourcesAdded     *prometheus.CounterVec
	completeDuration *prometheus.HistogramVec
	completeFailures *prometheus.CounterVec
}

func NewDiscoveryMetrics(registerer prometheus.Registerer) *DiscoveryMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &DiscoveryMetrics{
		projectsObserved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scmkit_projects_observed_total",
				Help: "Total number of projects reported to the observer",
			},
			[]string{"owner"},
		),
		sourcesAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scmkit_sources_added_total",
				Help: "Total number of candidate sources registered",
			},
			[]string{"owner"},
		),
		completeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scmkit_project_complete_seconds",
				Help:    "Duration of project completion in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"owner", "status"},
		),
		completeFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scmkit_project_complete_failures_total",
				Help: "Total number of project completions that returned an error",
			},
			[]string{"owner"},
		),
	}
}

func (m *DiscoveryMetrics) ObserveProject(owner string) {
	m.projectsObserved.WithLabelValues(owner).Inc()
}

func (m *DiscoveryMetrics) ObserveSource(owner string) {
	m.sourcesAdded.WithLabelValues(owner).Inc()
}

func (m *DiscoveryMetrics) ObserveComplete(owner string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		m.completeFailures.WithLabelValues(owner).Inc()
	}
	m.completeDuration.WithLabelValues(owner, status).Observe(duration.Seconds())
}
