package graph

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dd0wney/cluso-simgraph/pkg/record"
)

// NodeID is a caller-assigned node identifier
type NodeID uint64

// Neighbor is one adjacency entry: the node on the other end of an edge and
// the edge weight.
type Neighbor struct {
	ID     NodeID
	Weight uint32
}

// Graph is an undirected weighted graph over attribute records.
//
// The node table keeps insertion order so every traversal over it is
// deterministic. Adjacency lists keep parallel entries: adding the same pair
// twice yields two entries on each side.
//
// A Graph is not safe for concurrent writers. It is built once through
// AddNode/AddEdge and then read, possibly from several goroutines.
type Graph struct {
	nodes     *orderedmap.OrderedMap[NodeID, record.Record]
	adjacency map[NodeID][]Neighbor
	edges     int
}

// Statistics tracks graph size
type Statistics struct {
	NodeCount        int
	EdgeCount        int
	AdjacencyEntries int
	IsolatedNodes    int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		nodes:     orderedmap.New[NodeID, record.Record](),
		adjacency: make(map[NodeID][]Neighbor),
	}
}

// AddNode inserts or overwrites the record at id and makes sure id has an
// adjacency entry. Overwriting keeps the node's original position and edges.
func (g *Graph) AddNode(id NodeID, rec record.Record) {
	g.nodes.Set(id, rec)
	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = nil
	}
}

// AddEdge appends (id2, weight) to id1's adjacency and (id1, weight) to id2's.
// Self-loops are ignored. Neither id is checked against the node table;
// callers insert nodes first.
func (g *Graph) AddEdge(id1, id2 NodeID, weight uint32) {
	if id1 == id2 {
		return
	}
	g.adjacency[id1] = append(g.adjacency[id1], Neighbor{ID: id2, Weight: weight})
	g.adjacency[id2] = append(g.adjacency[id2], Neighbor{ID: id1, Weight: weight})
	g.edges++
}

// Neighbors returns the adjacency list of id in insertion order. A node with
// no edges yields an empty list; an id with no adjacency entry at all yields
// ErrNodeNotFound. The returned slice must not be modified.
func (g *Graph) Neighbors(id NodeID) ([]Neighbor, error) {
	adj, ok := g.adjacency[id]
	if !ok {
		return nil, NodeNotFoundError("neighbors", id)
	}
	return adj, nil
}

// Degree returns the number of adjacency entries of id, parallel edges
// included.
func (g *Graph) Degree(id NodeID) (int, error) {
	adj, err := g.Neighbors(id)
	if err != nil {
		return 0, err
	}
	return len(adj), nil
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return g.nodes.Len()
}

// EdgeCount returns the number of accepted AddEdge calls
func (g *Graph) EdgeCount() int {
	return g.edges
}

// HasNode reports whether id is in the node table
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.nodes.Get(id)
	return ok
}

// Record returns the record stored at id
func (g *Graph) Record(id NodeID) (record.Record, bool) {
	return g.nodes.Get(id)
}

// NodeIDs returns every node id in insertion order.
func (g *Graph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, g.nodes.Len())
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// Statistics returns size counters for the graph
func (g *Graph) Statistics() Statistics {
	stats := Statistics{
		NodeCount: g.nodes.Len(),
		EdgeCount: g.edges,
	}
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		n := len(g.adjacency[pair.Key])
		stats.AdjacencyEntries += n
		if n == 0 {
			stats.IsolatedNodes++
		}
	}
	return stats
}

// Override replaces one attribute of one node's record. Edges are left as
// they are; rebuild them if the scorer depends on the attribute.
func (g *Graph) Override(id NodeID, key record.Key, value record.Value) error {
	rec, ok := g.nodes.Get(id)
	if !ok {
		return NodeNotFoundError("override", id)
	}
	altered, err := rec.With(key, value)
	if err != nil {
		return NewError("override").Node(id).Field(rec.Schema().Name(key)).Cause(err).Err()
	}
	g.nodes.Set(id, altered)
	return nil
}

// Altered returns a node-only copy of g in which every record has key set to
// value. The copy has no edges; connect it again with the scorer.
func (g *Graph) Altered(key record.Key, value record.Value) (*Graph, error) {
	out := New()
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		altered, err := pair.Value.With(key, value)
		if err != nil {
			return nil, NewError("alter").Node(pair.Key).Field(pair.Value.Schema().Name(key)).Cause(err).Err()
		}
		out.AddNode(pair.Key, altered)
	}
	return out, nil
}

// Clone returns a deep copy of the graph
func (g *Graph) Clone() *Graph {
	out := New()
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		out.nodes.Set(pair.Key, pair.Value)
	}
	for id, adj := range g.adjacency {
		cp := make([]Neighbor, len(adj))
		copy(cp, adj)
		out.adjacency[id] = cp
	}
	out.edges = g.edges
	return out
}

// Validate checks the store invariants: every id in the adjacency table exists
// in the node table, and every entry (a, b, w) under a is mirrored by (b, a, w)
// under b the same number of times.
func (g *Graph) Validate() error {
	type directed struct {
		from, to NodeID
		weight   uint32
	}
	counts := make(map[directed]int)

	for id, adj := range g.adjacency {
		if !g.HasNode(id) {
			return NewError("validate").Node(id).Context("adjacency without node").Cause(ErrInvariant).Err()
		}
		for _, n := range adj {
			counts[directed{id, n.ID, n.Weight}]++
		}
	}

	for e, c := range counts {
		if mirror := counts[directed{e.to, e.from, e.weight}]; mirror != c {
			return NewError("validate").Node(e.from).
				Context(fmt.Sprintf("edge to %d weight %d seen %d times, mirrored %d", e.to, e.weight, c, mirror)).
				Cause(ErrInvariant).Err()
		}
	}
	return nil
}
