package algorithms

import (
	"container/heap"
	"sort"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
)

// DegreeCentrality returns the length of every node's adjacency list, counted
// exactly as stored: parallel edges count separately.
func DegreeCentrality(g *graph.Graph) map[graph.NodeID]int {
	degree := make(map[graph.NodeID]int, g.NodeCount())
	for _, id := range g.NodeIDs() {
		neighbors, _ := g.Neighbors(id)
		degree[id] = len(neighbors)
	}
	return degree
}

// ClosenessCentrality scores every node as the reciprocal of the sum of its
// finite shortest-path distances to all other nodes. Unreachable nodes are
// left out of the sum. A sum of zero (isolated node, single-node graph) scores
// 0. Larger is more central.
//
// This is not the textbook definition, which also multiplies by the number of
// reachable nodes; see NormalizedClosenessCentrality for that one.
func ClosenessCentrality(g *graph.Graph) map[graph.NodeID]float64 {
	return closeness(g, func(sum Distance, _ int) float64 {
		return 1.0 / float64(sum)
	})
}

// NormalizedClosenessCentrality scores every node as reachable/sum, where
// reachable counts the other nodes with a finite distance.
func NormalizedClosenessCentrality(g *graph.Graph) map[graph.NodeID]float64 {
	return closeness(g, func(sum Distance, reachable int) float64 {
		return float64(reachable) / float64(sum)
	})
}

func closeness(g *graph.Graph, score func(sum Distance, reachable int) float64) map[graph.NodeID]float64 {
	ids := g.NodeIDs()
	result := make(map[graph.NodeID]float64, len(ids))

	for _, source := range ids {
		distances, err := ShortestPaths(g, source)
		if err != nil {
			result[source] = 0.0
			continue
		}

		var sum Distance
		reachable := 0
		for id, d := range distances {
			if id == source || !d.IsFinite() {
				continue
			}
			sum += d
			reachable++
		}

		if sum > 0 {
			result[source] = score(sum, reachable)
		} else {
			result[source] = 0.0
		}
	}

	return result
}

// RankedNode represents a node with its score
type RankedNode struct {
	NodeID graph.NodeID
	Score  float64
}

// rankedNodeHeap implements a min-heap for RankedNode by score, ties broken so
// that the larger id sits at the root and is evicted first.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].NodeID > h[j].NodeID
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopNodes returns the n highest-scoring nodes, highest first, ties by
// ascending id.
// Time complexity: O(m log n) for m scores
func TopNodes(scores map[graph.NodeID]float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for nodeID, score := range scores {
		rn := RankedNode{NodeID: nodeID, Score: score}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if rankedAbove(rn, h[0]) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	result := make([]RankedNode, len(h))
	copy(result, h)
	sort.Slice(result, func(i, j int) bool {
		return rankedAbove(result[i], result[j])
	})
	return result
}

// rankedAbove reports whether a ranks strictly before b.
func rankedAbove(a, b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.NodeID < b.NodeID
}
