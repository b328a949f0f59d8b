package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_graph_nodes",
			Help: "Number of nodes in the most recently built graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_graph_edges",
			Help: "Number of undirected edges in the most recently built graph",
		},
	)

	r.PairsScoredTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "simgraph_pairs_scored_total",
			Help: "Total number of record pairs passed through the similarity scorer",
		},
	)

	r.EdgesCreatedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "simgraph_edges_created_total",
			Help: "Total number of edges inserted by the builder",
		},
	)

	r.BuildDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simgraph_build_duration_seconds",
			Help:    "Duration of the pairwise connect pass in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms .. ~16s
		},
		[]string{"mode"}, // sequential, parallel
	)

	r.BuildWorkersCurrent = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "simgraph_build_workers",
			Help: "Worker goroutines used by the most recent build",
		},
	)
}
