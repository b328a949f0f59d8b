package algorithms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

var testSchema = record.MustSchema(
	record.Field{Name: "school", Kind: record.KindCategory},
	record.Field{Name: "income", Kind: record.KindCategory},
)

func testRecord(t testing.TB, school, income string) record.Record {
	t.Helper()
	rec, err := record.NewBuilder(testSchema).
		Category("school", school).
		Category("income", income).
		Build()
	require.NoError(t, err)
	return rec
}

func key(t testing.TB, name string) record.Key {
	t.Helper()
	k, err := testSchema.Key(name)
	require.NoError(t, err)
	return k
}

// pathGraph builds 1 - 2 - 3 with unit weights.
func pathGraph(t testing.TB) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.AddNode(1, testRecord(t, "Public", "High"))
	g.AddNode(2, testRecord(t, "Private", "Medium"))
	g.AddNode(3, testRecord(t, "Public", "Low"))
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	return g
}

// twoComponents builds {1,2,3} as a path and {4,5} joined by one edge.
func twoComponents(t testing.TB) *graph.Graph {
	t.Helper()
	g := pathGraph(t)
	g.AddNode(4, testRecord(t, "Public", "High"))
	g.AddNode(5, testRecord(t, "Public", "High"))
	g.AddEdge(4, 5, 2)
	return g
}

// membershipSets turns a cluster result into a set of sorted-insensitive
// groups keyed by their smallest member.
func membershipSets(r *ClusterResult) map[graph.NodeID]map[graph.NodeID]bool {
	out := make(map[graph.NodeID]map[graph.NodeID]bool)
	for _, c := range r.Clusters {
		min := c.Nodes[0]
		set := make(map[graph.NodeID]bool, len(c.Nodes))
		for _, id := range c.Nodes {
			set[id] = true
			if id < min {
				min = id
			}
		}
		out[min] = set
	}
	return out
}
