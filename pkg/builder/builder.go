// Package builder turns attribute records into a similarity graph: every
// record becomes a node and every pair with a positive score becomes an edge.
package builder

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/dd0wney/cluso-simgraph/pkg/metrics"
	"github.com/dd0wney/cluso-simgraph/pkg/parallel"
	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

var (
	// ErrDuplicateID is returned when two entries share a node id
	ErrDuplicateID = errors.New("duplicate node id")
	// ErrAlreadyConnected is returned by Connect on a graph that has edges
	ErrAlreadyConnected = errors.New("graph already has edges")
)

// Scorer assigns a similarity weight to a pair of records. Zero means the
// pair is not connected.
type Scorer interface {
	Score(a, b record.Record) uint32
}

// Entry is a record with the node id it will be stored under
type Entry struct {
	ID     graph.NodeID
	Record record.Record
}

// Options configures a build
type Options struct {
	// Workers > 1 scores rows concurrently
	Workers int
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// AssignIDs numbers records from 1 in order.
func AssignIDs(records []record.Record) []Entry {
	entries := make([]Entry, len(records))
	for i, rec := range records {
		entries[i] = Entry{ID: graph.NodeID(i + 1), Record: rec}
	}
	return entries
}

// Build inserts every entry as a node, then connects all pairs.
func Build(entries []Entry, scorer Scorer, opts Options) (*graph.Graph, error) {
	g := graph.New()
	for _, e := range entries {
		if g.HasNode(e.ID) {
			return nil, fmt.Errorf("build: %w: %d", ErrDuplicateID, e.ID)
		}
		g.AddNode(e.ID, e.Record)
	}

	if err := Connect(g, scorer, opts); err != nil {
		return nil, err
	}
	return g, nil
}

// pending is one edge found while scoring a row
type pending struct {
	to     graph.NodeID
	weight uint32
}

// Connect scores every unordered pair of nodes in g and adds an edge for each
// positive score. Pairs are visited as (i, j), i < j, in node insertion order.
// With Workers > 1 rows are scored on a worker pool but edges are still
// inserted by the caller in row order, so the resulting adjacency lists are
// identical to a sequential pass.
func Connect(g *graph.Graph, scorer Scorer, opts Options) error {
	if g.EdgeCount() > 0 {
		return fmt.Errorf("connect: %w", ErrAlreadyConnected)
	}

	logger := logging.OrDefault(opts.Logger).With(logging.Component("builder"))

	ids := g.NodeIDs()
	records := make([]record.Record, len(ids))
	for i, id := range ids {
		records[i], _ = g.Record(id)
	}

	n := len(ids)
	pairs := n * (n - 1) / 2
	mode := "sequential"
	workers := 1
	if opts.Workers > 1 && n > 1 {
		mode = "parallel"
		workers = opts.Workers
	}

	timer := logging.StartTimer(logger, "graph connected",
		logging.Count(n), logging.Workers(workers), logging.String("mode", mode))

	row := func(i int) []pending {
		var out []pending
		for j := i + 1; j < n; j++ {
			if w := scorer.Score(records[i], records[j]); w > 0 {
				out = append(out, pending{to: ids[j], weight: w})
			}
		}
		return out
	}

	edges := 0
	if workers == 1 {
		for i := 0; i < n; i++ {
			for _, p := range row(i) {
				g.AddEdge(ids[i], p.to, p.weight)
				edges++
			}
		}
	} else {
		rows := make([][]pending, n)
		err := parallel.ForEach(n, workers, func(i int) {
			rows[i] = row(i)
		}, parallel.WithLogger(logger))
		if err != nil {
			timer.EndError(err)
			return fmt.Errorf("connect: %w", err)
		}
		for i, found := range rows {
			for _, p := range found {
				g.AddEdge(ids[i], p.to, p.weight)
				edges++
			}
		}
	}

	elapsed := timer.End(logging.Int("edges", edges), logging.Int("pairs", pairs))

	if opts.Metrics != nil {
		opts.Metrics.RecordBuild(mode, workers, pairs, edges, elapsed)
		opts.Metrics.SetGraphSize(g.NodeCount(), g.EdgeCount())
	}
	return nil
}
