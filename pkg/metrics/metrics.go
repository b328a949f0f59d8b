package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordBuild records a finished connect pass
func (r *Registry) RecordBuild(mode string, workers, pairs, edges int, duration time.Duration) {
	r.PairsScoredTotal.Add(float64(pairs))
	r.EdgesCreatedTotal.Add(float64(edges))
	r.BuildDuration.WithLabelValues(mode).Observe(duration.Seconds())
	r.BuildWorkersCurrent.Set(float64(workers))
}

// SetGraphSize updates the node and edge gauges
func (r *Registry) SetGraphSize(nodes, edges int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// RecordAnalysis records one analysis run; err selects the status label
func (r *Registry) RecordAnalysis(analysis string, duration time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	r.AnalysisTotal.WithLabelValues(analysis, status).Inc()
	r.AnalysisDuration.WithLabelValues(analysis).Observe(duration.Seconds())
}

// SetClusters updates the cluster gauges
func (r *Registry) SetClusters(count, largest int) {
	r.Clusters.Set(float64(count))
	r.LargestCluster.Set(float64(largest))
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
