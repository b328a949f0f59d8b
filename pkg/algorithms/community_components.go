package algorithms

import (
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

// Clusters partitions the graph into weighted connected components. Two
// adjacent nodes are linked when the edge weight is at least opts.MinWeight
// and, for every key in opts.Attributes, both records hold the same value.
//
// The traversal is an iterative depth-first search with an explicit stack so
// dense graphs cannot exhaust the goroutine stack. Nodes are visited in
// insertion order; a node without qualifying edges forms its own cluster.
func Clusters(g *graph.Graph, opts ClusterOptions) *ClusterResult {
	ids := g.NodeIDs()

	visited := make(map[graph.NodeID]bool, len(ids))
	membership := make(map[graph.NodeID]int, len(ids))
	clusters := make([]*Cluster, 0)

	for _, start := range ids {
		if visited[start] {
			continue
		}

		cluster := &Cluster{
			ID:    len(clusters),
			Nodes: make([]graph.NodeID, 0),
		}

		stack := []graph.NodeID{start}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			// A node can be pushed more than once before it is popped
			if visited[current] {
				continue
			}
			visited[current] = true
			cluster.Nodes = append(cluster.Nodes, current)
			membership[current] = cluster.ID

			neighbors, err := g.Neighbors(current)
			if err != nil {
				continue
			}
			currentRec, _ := g.Record(current)

			for _, n := range neighbors {
				if n.Weight < opts.MinWeight || visited[n.ID] {
					continue
				}
				if len(opts.Attributes) > 0 {
					neighborRec, ok := g.Record(n.ID)
					if !ok || !sameAttributes(currentRec, neighborRec, opts.Attributes) {
						continue
					}
				}
				stack = append(stack, n.ID)
			}
		}

		cluster.Size = len(cluster.Nodes)
		clusters = append(clusters, cluster)
	}

	return &ClusterResult{
		Clusters:   clusters,
		Membership: membership,
	}
}

func sameAttributes(a, b record.Record, keys []record.Key) bool {
	for _, k := range keys {
		if !a.Get(k).Equal(b.Get(k)) {
			return false
		}
	}
	return true
}
