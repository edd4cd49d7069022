package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects the counters and histograms the tool server exposes.
type Metrics struct {
	toolInvocations  *prometheus.CounterVec
	toolDuration     *prometheus.HistogramVec
	cacheRequests    *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		toolInvocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopmcp_tool_invocations_total",
				Help: "Total number of tool invocations",
			},
			[]string{"tool", "status"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shopmcp_tool_duration_seconds",
				Help:    "Duration of tool invocations in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"tool"},
		),
		cacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopmcp_cache_requests_total",
				Help: "Product listing cache lookups by result",
			},
			[]string{"result"},
		),
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopmcp_upstream_requests_total",
				Help: "Outbound vendor API requests by API flavor and status",
			},
			[]string{"api", "status"},
		),
	}
}

func (m *Metrics) ObserveTool(tool string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.toolInvocations.WithLabelValues(tool, status).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveUpstream(api string, status string) {
	m.upstreamRequests.WithLabelValues(api, status).Inc()
}
