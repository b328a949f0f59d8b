package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.AnalysisTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "simgraph_analysis_total",
			Help: "Total number of analyses run",
		},
		[]string{"analysis", "status"}, // degree|closeness|clusters|sensitivity, success|error
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simgraph_analysis_duration_seconds",
			Help:    "Duration of a single analysis in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 9),
		},
		[]string{"analysis"},
	)

	r.Clusters = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_clusters",
			Help: "Number of clusters found by the most recent cluster analysis",
		},
	)

	r.LargestCluster = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_largest_cluster_size",
			Help: "Size of the largest cluster found by the most recent cluster analysis",
		},
	)
}
