package graph

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

var testSchema = record.MustSchema(
	record.Field{Name: "school", Kind: record.KindCategory},
	record.Field{Name: "income", Kind: record.KindCategory},
)

func testRecord(t *testing.T, school, income string) record.Record {
	t.Helper()
	rec, err := record.NewBuilder(testSchema).
		Category("school", school).
		Category("income", income).
		Build()
	require.NoError(t, err)
	return rec
}

func pathGraph(t *testing.T) *Graph {
	t.Helper()
	g := New()
	g.AddNode(1, testRecord(t, "Public", "High"))
	g.AddNode(2, testRecord(t, "Private", "Medium"))
	g.AddNode(3, testRecord(t, "Public", "Low"))
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 3, 1)
	return g
}

func TestNewGraphIsEmpty(t *testing.T) {
	g := New()
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.NodeIDs())
}

func TestAddNodeCreatesEmptyAdjacency(t *testing.T) {
	g := New()
	g.AddNode(7, testRecord(t, "Public", "High"))

	adj, err := g.Neighbors(7)
	require.NoError(t, err)
	assert.Empty(t, adj)
	assert.True(t, g.HasNode(7))
}

func TestAddNodeOverwritesRecord(t *testing.T) {
	g := New()
	g.AddNode(1, testRecord(t, "Public", "High"))
	g.AddNode(2, testRecord(t, "Public", "High"))
	g.AddEdge(1, 2, 2)
	g.AddNode(1, testRecord(t, "Private", "Low"))

	rec, ok := g.Record(1)
	require.True(t, ok)
	v, _ := rec.Lookup("school")
	assert.Equal(t, "Private", v.String())
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, []NodeID{1, 2}, g.NodeIDs())

	deg, err := g.Degree(1)
	require.NoError(t, err)
	assert.Equal(t, 1, deg, "overwrite must keep existing edges")
}

func TestAddEdgeIsSymmetric(t *testing.T) {
	g := pathGraph(t)

	adj1, err := g.Neighbors(1)
	require.NoError(t, err)
	adj2, err := g.Neighbors(2)
	require.NoError(t, err)

	assert.Equal(t, []Neighbor{{ID: 2, Weight: 1}}, adj1)
	assert.Equal(t, []Neighbor{{ID: 1, Weight: 1}, {ID: 3, Weight: 1}}, adj2)
	assert.NoError(t, g.Validate())
}

func TestSelfLoopIsNoop(t *testing.T) {
	g := pathGraph(t)
	before, _ := g.Neighbors(3)
	before = append([]Neighbor(nil), before...)

	for _, w := range []uint32{0, 1, 2, 100} {
		g.AddEdge(3, 3, w)
	}

	after, err := g.Neighbors(3)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestParallelEdgesAccumulate(t *testing.T) {
	g := New()
	g.AddNode(1, testRecord(t, "Public", "High"))
	g.AddNode(2, testRecord(t, "Public", "High"))
	g.AddEdge(1, 2, 1)
	g.AddEdge(1, 2, 1)

	d1, _ := g.Degree(1)
	d2, _ := g.Degree(2)
	assert.Equal(t, 2, d1)
	assert.Equal(t, 2, d2)
	assert.Equal(t, 2, g.EdgeCount())
	assert.NoError(t, g.Validate())
}

func TestNeighborsUnknownNode(t *testing.T) {
	g := pathGraph(t)

	_, err := g.Neighbors(99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var ge *GraphError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, NodeID(99), ge.ID)
	assert.Equal(t, "neighbors node 99: node not found", err.Error())

	_, err = g.Degree(99)
	assert.True(t, IsNotFound(err))
}

func TestStatistics(t *testing.T) {
	g := pathGraph(t)
	g.AddNode(4, testRecord(t, "Public", "High"))

	stats := g.Statistics()
	assert.Equal(t, Statistics{NodeCount: 4, EdgeCount: 2, AdjacencyEntries: 4, IsolatedNodes: 1}, stats)
}

func TestOverride(t *testing.T) {
	g := pathGraph(t)
	k, _ := testSchema.Key("school")

	require.NoError(t, g.Override(1, k, record.CategoryValue("Unknown")))
	rec, _ := g.Record(1)
	assert.Equal(t, "Unknown", rec.Get(k).String())

	err := g.Override(42, k, record.CategoryValue("Unknown"))
	assert.True(t, IsNotFound(err))

	err = g.Override(1, k, record.IntValue(3))
	assert.True(t, errors.Is(err, record.ErrKindMismatch))
	assert.True(t, strings.Contains(err.Error(), "field school"))
}

func TestAlteredDropsEdgesAndKeepsOriginal(t *testing.T) {
	g := pathGraph(t)
	k, _ := testSchema.Key("income")

	alt, err := g.Altered(k, record.CategoryValue("Medium"))
	require.NoError(t, err)

	assert.Equal(t, g.NodeIDs(), alt.NodeIDs())
	assert.Equal(t, 0, alt.EdgeCount())
	for _, id := range alt.NodeIDs() {
		rec, _ := alt.Record(id)
		assert.Equal(t, "Medium", rec.Get(k).String())
	}

	orig, _ := g.Record(1)
	assert.Equal(t, "High", orig.Get(k).String())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestCloneIsIndependent(t *testing.T) {
	g := pathGraph(t)
	cp := g.Clone()
	cp.AddEdge(1, 3, 5)

	d, _ := g.Degree(1)
	assert.Equal(t, 1, d)
	d, _ = cp.Degree(1)
	assert.Equal(t, 2, d)
	assert.NoError(t, cp.Validate())
}

func TestValidateDetectsEdgeToUnknownNode(t *testing.T) {
	g := New()
	g.AddNode(1, testRecord(t, "Public", "High"))
	g.AddEdge(1, 2, 1)

	err := g.Validate()
	assert.True(t, errors.Is(err, ErrInvariant))
}

func TestGraphErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *GraphError
		expected string
	}{
		{"node and field", &GraphError{Op: "override", ID: 3, Field: "school", Cause: ErrNodeNotFound}, "override node 3 (field school): node not found"},
		{"field only", &GraphError{Op: "alter", Field: "income", Cause: ErrInvariant}, "alter (field income): graph invariant violated"},
		{"context", &GraphError{Op: "validate", Context: "x", Cause: ErrInvariant}, "validate (x): graph invariant violated"},
		{"minimal", &GraphError{Op: "get", Cause: ErrNodeNotFound}, "get: node not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
