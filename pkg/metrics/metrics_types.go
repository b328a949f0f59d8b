package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Graph Metrics
	GraphNodes          prometheus.Gauge
	GraphEdges          prometheus.Gauge
	PairsScoredTotal    prometheus.Counter
	EdgesCreatedTotal   prometheus.Counter
	BuildDuration       *prometheus.HistogramVec
	BuildWorkersCurrent prometheus.Gauge

	// Analysis Metrics
	AnalysisTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	Clusters         prometheus.Gauge
	LargestCluster   prometheus.Gauge

	// System Metrics
	UptimeSeconds prometheus.GaugeFunc

	started  time.Time
	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		started:  time.Now(),
	}

	r.initGraphMetrics()
	r.initAnalysisMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
