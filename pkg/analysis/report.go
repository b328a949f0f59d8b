package analysis

import (
	"time"

	"github.com/dd0wney/cluso-simgraph/pkg/algorithms"
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/dd0wney/cluso-simgraph/pkg/metrics"
	"github.com/dd0wney/cluso-simgraph/pkg/stats"
)

// Analysis names, used as log fields and metric labels
const (
	AnalysisDegree      = "degree"
	AnalysisCloseness   = "closeness"
	AnalysisClusters    = "clusters"
	AnalysisSensitivity = "sensitivity"
)

// Options configures Run
type Options struct {
	// TopN bounds the ranked lists; 0 disables them
	TopN     int
	Clusters algorithms.ClusterOptions
	// Validate checks the store invariants before analysing
	Validate bool
	// Workers is used when Sensitivity reconnects altered graphs
	Workers int
	Logger  logging.Logger
	Metrics  *metrics.Registry
}

// Report is the outcome of one analysis run over a finished graph
type Report struct {
	RunID string
	Nodes int
	Edges int

	Degree    map[graph.NodeID]int
	Closeness map[graph.NodeID]float64
	Clusters  *algorithms.ClusterResult

	DegreeSummary    stats.Summary
	ClosenessSummary stats.Summary
	ClusterSizes     stats.Summary

	// PercentConnected is the mean degree as a share of the node count
	PercentConnected float64

	TopDegree    []algorithms.RankedNode
	TopCloseness []algorithms.RankedNode

	// ClosenessDeviation is the node furthest from the mean closeness;
	// HasDeviation is false for an empty graph
	ClosenessDeviation stats.Deviation
	HasDeviation       bool

	Durations map[string]time.Duration
}
