// Package analysis runs the centrality and cluster engines over a finished
// graph and condenses their output into a report.
package analysis

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-simgraph/pkg/algorithms"
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/dd0wney/cluso-simgraph/pkg/stats"
)

// Run computes degree, closeness and clusters concurrently. The graph must
// not be mutated until Run returns.
func Run(g *graph.Graph, opts Options) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		Nodes:     g.NodeCount(),
		Edges:     g.EdgeCount(),
		Durations: make(map[string]time.Duration, 3),
	}
	logger := logging.OrDefault(opts.Logger).With(
		logging.Component("analysis"),
		logging.RunID(report.RunID),
	)

	if opts.Validate {
		if err := g.Validate(); err != nil {
			logger.Error("graph failed validation", logging.Error(err))
			return nil, fmt.Errorf("analysis: %w", err)
		}
	}

	var mu sync.Mutex
	timed := func(name string, fn func()) func() error {
		return func() error {
			timer := logging.StartTimer(logger, name+" computed", logging.Analysis(name))
			fn()
			elapsed := timer.EndWithLevel(logging.DebugLevel, name+" computed")

			mu.Lock()
			report.Durations[name] = elapsed
			mu.Unlock()
			if opts.Metrics != nil {
				opts.Metrics.RecordAnalysis(name, elapsed, nil)
			}
			return nil
		}
	}

	var eg errgroup.Group
	eg.Go(timed(AnalysisDegree, func() {
		report.Degree = algorithms.DegreeCentrality(g)
	}))
	eg.Go(timed(AnalysisCloseness, func() {
		report.Closeness = algorithms.ClosenessCentrality(g)
	}))
	eg.Go(timed(AnalysisClusters, func() {
		report.Clusters = algorithms.Clusters(g, opts.Clusters)
	}))
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	summarize(report, opts.TopN)

	if opts.Metrics != nil {
		largest := 0
		if c := report.Clusters.Largest(); c != nil {
			largest = c.Size
		}
		opts.Metrics.SetClusters(len(report.Clusters.Clusters), largest)
		opts.Metrics.SetGraphSize(report.Nodes, report.Edges)
	}

	logger.Info("analysis complete",
		logging.Int("nodes", report.Nodes),
		logging.Int("edges", report.Edges),
		logging.Float64("mean_degree", report.DegreeSummary.Mean),
		logging.Float64("mean_closeness", report.ClosenessSummary.Mean),
		logging.Int("clusters", len(report.Clusters.Clusters)),
		logging.Float64("percent_connected", report.PercentConnected),
	)
	return report, nil
}

func summarize(report *Report, topN int) {
	degree := stats.FromInts(report.Degree)
	report.DegreeSummary = stats.Summarize(stats.FromMap(degree))
	report.ClosenessSummary = stats.Summarize(stats.FromMap(report.Closeness))

	sizes := make([]float64, len(report.Clusters.Clusters))
	for i, c := range report.Clusters.Clusters {
		sizes[i] = float64(c.Size)
	}
	report.ClusterSizes = stats.Summarize(sizes)

	if report.Nodes > 0 {
		report.PercentConnected = report.DegreeSummary.Mean / float64(report.Nodes) * 100
	}

	report.TopDegree = algorithms.TopNodes(degree, topN)
	report.TopCloseness = algorithms.TopNodes(report.Closeness, topN)
	report.ClosenessDeviation, report.HasDeviation = stats.MaxDeviation(report.Closeness)
}
