package analysis

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dd0wney/cluso-simgraph/pkg/builder"
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

// ErrNoNeutral is returned when an attribute has no neutral value to
// override with
var ErrNoNeutral = errors.New("no neutral value for attribute")

// Override replaces one attribute on every record
type Override struct {
	Key   record.Key
	Value record.Value
}

// Impact compares a graph rebuilt under one override against the baseline
type Impact struct {
	Attribute string
	Value     record.Value

	Edges     int
	EdgeDelta int

	MeanDegree      float64
	MeanDegreeDelta float64

	Clusters     int
	ClusterDelta int

	MeanCloseness      float64
	MeanClosenessDelta float64
}

// NeutralOverrides builds one override per name from a table of neutral
// values. With no names every neutral known to the schema is used, in schema
// order.
func NeutralOverrides(schema *record.Schema, neutrals map[string]record.Value, names ...string) ([]Override, error) {
	if len(names) == 0 {
		for _, name := range schema.Names() {
			if _, ok := neutrals[name]; ok {
				names = append(names, name)
			}
		}
	}

	overrides := make([]Override, 0, len(names))
	for _, name := range names {
		key, err := schema.Key(name)
		if err != nil {
			return nil, err
		}
		value, ok := neutrals[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoNeutral, name)
		}
		overrides = append(overrides, Override{Key: key, Value: value})
	}
	return overrides, nil
}

// Sensitivity measures how much each attribute shapes the graph. For every
// override it copies g with the attribute replaced on all records, reconnects
// the copy with scorer and analyses it. baseline may be nil, in which case g
// is analysed first. Impacts come back in override order.
func Sensitivity(baseline *Report, g *graph.Graph, scorer builder.Scorer, overrides []Override, opts Options) ([]Impact, error) {
	logger := logging.OrDefault(opts.Logger).With(logging.Component("analysis"), logging.Analysis(AnalysisSensitivity))

	if baseline == nil {
		var err error
		if baseline, err = Run(g, opts); err != nil {
			return nil, err
		}
	}

	inner := opts
	inner.TopN = 0
	inner.Metrics = nil
	inner.Logger = logging.NewNopLogger()

	impacts := make([]Impact, 0, len(overrides))
	for _, o := range overrides {
		rec, err := sensitivityFor(g, scorer, o, inner)
		if opts.Metrics != nil {
			opts.Metrics.RecordAnalysis(AnalysisSensitivity, rec.elapsed, err)
		}
		if err != nil {
			logger.Error("override failed", logging.Error(err))
			return nil, err
		}

		report := rec.report
		impact := Impact{
			Attribute:          attributeName(g, o.Key),
			Value:              o.Value,
			Edges:              report.Edges,
			EdgeDelta:          report.Edges - baseline.Edges,
			MeanDegree:         report.DegreeSummary.Mean,
			MeanDegreeDelta:    report.DegreeSummary.Mean - baseline.DegreeSummary.Mean,
			Clusters:           len(report.Clusters.Clusters),
			ClusterDelta:       len(report.Clusters.Clusters) - len(baseline.Clusters.Clusters),
			MeanCloseness:      report.ClosenessSummary.Mean,
			MeanClosenessDelta: report.ClosenessSummary.Mean - baseline.ClosenessSummary.Mean,
		}
		impacts = append(impacts, impact)

		logger.Info("override analysed",
			logging.String("attribute", impact.Attribute),
			logging.String("value", impact.Value.String()),
			logging.Int("edge_delta", impact.EdgeDelta),
			logging.Float64("mean_degree_delta", impact.MeanDegreeDelta),
			logging.Int("cluster_delta", impact.ClusterDelta),
			logging.Latency(rec.elapsed),
		)
	}
	return impacts, nil
}

type overrideRun struct {
	report  *Report
	elapsed time.Duration
}

func sensitivityFor(g *graph.Graph, scorer builder.Scorer, o Override, opts Options) (overrideRun, error) {
	start := time.Now()

	altered, err := g.Altered(o.Key, o.Value)
	if err != nil {
		return overrideRun{elapsed: time.Since(start)}, fmt.Errorf("sensitivity: %w", err)
	}
	err = builder.Connect(altered, scorer, builder.Options{Workers: opts.Workers, Logger: opts.Logger})
	if err != nil {
		return overrideRun{elapsed: time.Since(start)}, fmt.Errorf("sensitivity: %w", err)
	}
	report, err := Run(altered, opts)
	if err != nil {
		return overrideRun{elapsed: time.Since(start)}, fmt.Errorf("sensitivity: %w", err)
	}
	return overrideRun{report: report, elapsed: time.Since(start)}, nil
}

func attributeName(g *graph.Graph, key record.Key) string {
	ids := g.NodeIDs()
	if len(ids) == 0 {
		return fmt.Sprintf("attribute %d", key)
	}
	rec, _ := g.Record(ids[0])
	return rec.Schema().Name(key)
}

// Ranked orders impacts by the magnitude of their mean degree change, largest
// first, ties by attribute name.
func Ranked(impacts []Impact) []Impact {
	out := slices.Clone(impacts)
	slices.SortStableFunc(out, func(a, b Impact) int {
		if c := cmp.Compare(math.Abs(b.MeanDegreeDelta), math.Abs(a.MeanDegreeDelta)); c != 0 {
			return c
		}
		return cmp.Compare(a.Attribute, b.Attribute)
	})
	return out
}
