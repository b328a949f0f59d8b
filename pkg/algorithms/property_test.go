package algorithms

import (
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

const propNodes = 10

type edgeSpec struct {
	From, To uint8
	Weight   uint32
}

func genEdges() gopter.Gen {
	return gen.SliceOf(gen.Struct(reflect.TypeOf(edgeSpec{}), map[string]gopter.Gen{
		"From":   gen.UInt8Range(1, propNodes),
		"To":     gen.UInt8Range(1, propNodes),
		"Weight": gen.UInt32Range(1, 5),
	}))
}

// buildFrom alternates the school attribute so the filter has something to cut.
func buildFrom(edges []edgeSpec) *graph.Graph {
	g := graph.New()
	schools := []string{"Public", "Private"}
	for id := graph.NodeID(1); id <= propNodes; id++ {
		rec, _ := record.NewBuilder(testSchema).
			Category("school", schools[int(id)%2]).
			Category("income", "High").
			Build()
		g.AddNode(id, rec)
	}
	for _, e := range edges {
		g.AddEdge(graph.NodeID(e.From), graph.NodeID(e.To), e.Weight)
	}
	return g
}

// refines reports whether every cluster of fine lies inside one cluster of coarse.
func refines(fine, coarse *ClusterResult) bool {
	for _, c := range fine.Clusters {
		want := coarse.Membership[c.Nodes[0]]
		for _, id := range c.Nodes {
			if coarse.Membership[id] != want {
				return false
			}
		}
	}
	return true
}

func TestAlgorithmProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	schoolKey, _ := testSchema.Key("school")

	properties.Property("clusters partition the node set", prop.ForAll(
		func(edges []edgeSpec, minWeight uint32) bool {
			g := buildFrom(edges)
			result := Clusters(g, ClusterOptions{MinWeight: minWeight})
			seen := make(map[graph.NodeID]bool)
			total := 0
			for _, c := range result.Clusters {
				for _, id := range c.Nodes {
					if seen[id] {
						return false
					}
					seen[id] = true
				}
				total += c.Size
			}
			return total == g.NodeCount() && len(result.Membership) == g.NodeCount()
		},
		genEdges(),
		gen.UInt32Range(0, 6),
	))

	properties.Property("raising the weight threshold only splits clusters", prop.ForAll(
		func(edges []edgeSpec, minWeight uint32) bool {
			g := buildFrom(edges)
			low := Clusters(g, ClusterOptions{MinWeight: minWeight})
			high := Clusters(g, ClusterOptions{MinWeight: minWeight + 1})
			return refines(high, low) && len(high.Clusters) >= len(low.Clusters)
		},
		genEdges(),
		gen.UInt32Range(0, 5),
	))

	properties.Property("adding an attribute filter only splits clusters", prop.ForAll(
		func(edges []edgeSpec, minWeight uint32) bool {
			g := buildFrom(edges)
			plain := Clusters(g, ClusterOptions{MinWeight: minWeight})
			filtered := Clusters(g, ClusterOptions{MinWeight: minWeight, Attributes: []record.Key{schoolKey}})
			return refines(filtered, plain)
		},
		genEdges(),
		gen.UInt32Range(0, 5),
	))

	properties.Property("distances are symmetric", prop.ForAll(
		func(edges []edgeSpec) bool {
			g := buildFrom(edges)
			all := make(map[graph.NodeID]map[graph.NodeID]Distance)
			for _, id := range g.NodeIDs() {
				d, err := ShortestPaths(g, id)
				if err != nil || d[id] != 0 {
					return false
				}
				all[id] = d
			}
			for a, row := range all {
				for b, d := range row {
					if all[b][a] != d {
						return false
					}
				}
			}
			return true
		},
		genEdges(),
	))

	properties.Property("closeness is finite and non-negative", prop.ForAll(
		func(edges []edgeSpec) bool {
			for _, c := range ClosenessCentrality(buildFrom(edges)) {
				if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
					return false
				}
			}
			return true
		},
		genEdges(),
	))

	properties.Property("degree sum is twice the edge count", prop.ForAll(
		func(edges []edgeSpec) bool {
			g := buildFrom(edges)
			sum := 0
			for _, d := range DegreeCentrality(g) {
				sum += d
			}
			return sum == 2*g.EdgeCount()
		},
		genEdges(),
	))

	properties.TestingRun(t)
}
