package algorithms

import (
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

// Cluster is one weighted connected component
type Cluster struct {
	ID    int
	Nodes []graph.NodeID
	Size  int
}

// ClusterResult contains the partition of the node set into clusters
type ClusterResult struct {
	Clusters   []*Cluster
	Membership map[graph.NodeID]int // Node ID -> Cluster ID
}

// Groups returns the node ids of each cluster.
func (r *ClusterResult) Groups() [][]graph.NodeID {
	groups := make([][]graph.NodeID, len(r.Clusters))
	for i, c := range r.Clusters {
		groups[i] = c.Nodes
	}
	return groups
}

// Largest returns the biggest cluster, or nil for an empty result.
func (r *ClusterResult) Largest() *Cluster {
	var best *Cluster
	for _, c := range r.Clusters {
		if best == nil || c.Size > best.Size {
			best = c
		}
	}
	return best
}

// Singletons counts clusters with exactly one node.
func (r *ClusterResult) Singletons() int {
	n := 0
	for _, c := range r.Clusters {
		if c.Size == 1 {
			n++
		}
	}
	return n
}

// ClusterOptions configures Clusters.
type ClusterOptions struct {
	// MinWeight is the smallest edge weight that links two nodes
	MinWeight uint32
	// Attributes must hold identical values on both ends of a linking edge.
	// Empty means no filter.
	Attributes []record.Key
}

// ClusterKeys resolves attribute names into filter keys.
func ClusterKeys(schema *record.Schema, names ...string) ([]record.Key, error) {
	return schema.Keys(names...)
}
