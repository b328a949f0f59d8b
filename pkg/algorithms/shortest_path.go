package algorithms

import (
	"container/heap"
	"errors"
	"math"

	"github.com/dd0wney/cluso-simgraph/pkg/graph"
)

// Distance is a cumulative path weight.
type Distance uint64

// Infinity marks a node that cannot be reached from the source.
const Infinity Distance = math.MaxUint64

// ErrNoPath is returned when the target cannot be reached from the source.
var ErrNoPath = errors.New("no path between nodes")

// IsFinite reports whether d is a real distance rather than the sentinel.
func (d Distance) IsFinite() bool {
	return d != Infinity
}

// distItem is a tentative distance in the priority queue.
type distItem struct {
	id       graph.NodeID
	distance Distance
}

// distHeap implements a min-heap of tentative distances.
type distHeap []distItem

func (h distHeap) Len() int           { return len(h) }
func (h distHeap) Less(i, j int) bool { return h[i].distance < h[j].distance }
func (h distHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *distHeap) Push(x any) {
	*h = append(*h, x.(distItem))
}

func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// dijkstra runs the shortest-path search from source. When parent is non-nil
// it records the predecessor of every settled node.
func dijkstra(g *graph.Graph, source graph.NodeID, parent map[graph.NodeID]graph.NodeID) (map[graph.NodeID]Distance, error) {
	if !g.HasNode(source) {
		return nil, graph.NodeNotFoundError("shortest paths", source)
	}

	distances := make(map[graph.NodeID]Distance, g.NodeCount())
	for _, id := range g.NodeIDs() {
		distances[id] = Infinity
	}
	distances[source] = 0

	pq := &distHeap{{id: source, distance: 0}}

	for pq.Len() > 0 {
		current := heap.Pop(pq).(distItem)

		// Stale entry: a shorter distance was recorded after this push
		if current.distance > distances[current.id] {
			continue
		}

		neighbors, err := g.Neighbors(current.id)
		if err != nil {
			continue
		}

		for _, n := range neighbors {
			newDist := current.distance + Distance(n.Weight)
			old, known := distances[n.ID]
			if !known {
				old = Infinity
			}
			if newDist < old {
				distances[n.ID] = newDist
				if parent != nil {
					parent[n.ID] = current.id
				}
				heap.Push(pq, distItem{id: n.ID, distance: newDist})
			}
		}
	}

	return distances, nil
}

// ShortestPaths computes the minimal cumulative weight from source to every
// node using Dijkstra's algorithm. Every node of the graph appears in the
// result; unreachable nodes map to Infinity. An unknown source yields
// graph.ErrNodeNotFound.
func ShortestPaths(g *graph.Graph, source graph.NodeID) (map[graph.NodeID]Distance, error) {
	return dijkstra(g, source, nil)
}

// ShortestPath returns one minimal-weight path from start to end, both
// included, and its total weight.
func ShortestPath(g *graph.Graph, startID, endID graph.NodeID) ([]graph.NodeID, Distance, error) {
	if !g.HasNode(endID) {
		return nil, Infinity, graph.NodeNotFoundError("shortest path", endID)
	}

	parent := make(map[graph.NodeID]graph.NodeID)
	distances, err := dijkstra(g, startID, parent)
	if err != nil {
		return nil, Infinity, err
	}

	total := distances[endID]
	if !total.IsFinite() {
		return nil, Infinity, ErrNoPath
	}

	path := []graph.NodeID{endID}
	for node := endID; node != startID; {
		node = parent[node]
		path = append(path, node)
	}

	// Reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, total, nil
}

// FiniteDistances drops unreachable entries from a distance map.
func FiniteDistances(distances map[graph.NodeID]Distance) map[graph.NodeID]Distance {
	out := make(map[graph.NodeID]Distance, len(distances))
	for id, d := range distances {
		if d.IsFinite() {
			out[id] = d
		}
	}
	return out
}
