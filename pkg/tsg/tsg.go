package tsg

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node id is
	// not a positive integer. Ids encode spatial and time coordinates, so
	// zero and negative values have no meaning.
	ErrInvalidNodeID = errors.New("node id must be positive")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with
	// the same id already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when an edge with the
	// same ordered endpoint pair already exists. Pair uniqueness is the
	// identity invariant the restrict package relies on for removal and
	// restoration.
	ErrDuplicateEdge = errors.New("duplicate edge endpoint pair")
)

// Node is a vertex of the time-expanded graph.
//
// Base nodes are created by the graph-building collaborator before any
// restriction is applied. Artificial nodes exist only while a restriction
// batch is live: they are created by the escape topology builder and removed
// by cleanup.
type Node struct {
	ID         int    // 1-based id encoding (spatial, time)
	Label      string // optional display label
	Artificial bool   // true for synthetic escape-mechanism nodes
	Demand     int    // signed flow balance, non-zero only for supply/sink nodes
}

// Edge is a directed time-expanded arc with min-cost-flow attributes.
// LowerBound is always zero in this subsystem but is carried so persisted
// problems keep the full arc-list convention.
type Edge struct {
	From       int
	To         int
	LowerBound int
	Capacity   int
	Cost       int
}

// Key returns the edge's identity pair.
func (e Edge) Key() EdgeKey { return EdgeKey{e.From, e.To} }

func (e Edge) String() string {
	return fmt.Sprintf("(%d→%d lb=%d cap=%d cost=%d)", e.From, e.To, e.LowerBound, e.Capacity, e.Cost)
}

// EdgeKey is the ordered endpoint pair identifying an edge within a graph.
type EdgeKey struct {
	From int
	To   int
}

// Graph is the mutable working set of time-expanded nodes and edges.
//
// Edges keep insertion order for deterministic iteration and persistence;
// lookup and removal by endpoint pair are O(1) through the pair index.
// The zero value is not usable - use [New].
type Graph struct {
	m     int
	nodes map[int]*Node
	order []EdgeKey
	index map[EdgeKey]Edge
	maxID int
}

// New creates an empty time-space graph over m spatial nodes.
// m determines the id arithmetic of [Graph.TimeOf] and [Graph.SpatialOf]
// and must be at least 1; New panics otherwise, since every derived
// coordinate would be meaningless.
func New(m int) *Graph {
	if m < 1 {
		panic(fmt.Sprintf("tsg: spatial node count must be >= 1, got %d", m))
	}
	return &Graph{
		m:     m,
		nodes: make(map[int]*Node),
		index: make(map[EdgeKey]Edge),
	}
}

// M returns the spatial node count the graph was created with.
func (g *Graph) M() int { return g.m }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID for non-positive ids or ErrDuplicateNodeID if
// the id is already taken.
func (g *Graph) AddNode(n Node) error {
	if n.ID < 1 {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := n
	g.nodes[node.ID] = &node
	if node.ID > g.maxID {
		g.maxID = node.ID
	}
	return nil
}

// RemoveNode removes the node with the given id and reports whether it
// existed. Edges referencing the node are not touched; callers removing
// nodes are expected to remove their edges explicitly, which is what the
// cleanup path does.
func (g *Graph) RemoveNode(id int) bool {
	if _, ok := g.nodes[id]; !ok {
		return false
	}
	delete(g.nodes, id)
	if id == g.maxID {
		g.maxID = 0
		for nid := range g.nodes {
			if nid > g.maxID {
				g.maxID = nid
			}
		}
	}
	return true
}

// Node returns the node with the given id and true, or nil and false.
// The pointer refers to the stored node, so field updates (label, demand)
// are visible through the graph.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by id.
// Sorting keeps iteration and persisted output deterministic.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return a.ID - b.ID })
	return nodes
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// SetDemand sets the flow balance of the node with the given id and
// reports whether the node existed.
func (g *Graph) SetDemand(id, demand int) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	n.Demand = demand
	return true
}

// MaxID returns the largest node id currently in the graph, or 0 for an
// empty graph. The restriction applier seeds its id allocator from this
// once per batch.
func (g *Graph) MaxID() int { return g.maxID }

// AddEdge adds a directed edge.
// Returns ErrDuplicateEdge if an edge with the same endpoint pair exists.
// Endpoints not yet present are registered as plain nodes, matching the
// arc-list convention where the node set is implied by the arcs.
func (g *Graph) AddEdge(e Edge) error {
	key := e.Key()
	if _, exists := g.index[key]; exists {
		return fmt.Errorf("%w: (%d, %d)", ErrDuplicateEdge, e.From, e.To)
	}
	g.ensureNode(e.From)
	g.ensureNode(e.To)
	g.index[key] = e
	g.order = append(g.order, key)
	return nil
}

// RemoveEdge removes the edge from→to and reports whether it existed.
func (g *Graph) RemoveEdge(from, to int) bool {
	key := EdgeKey{from, to}
	if _, ok := g.index[key]; !ok {
		return false
	}
	delete(g.index, key)
	g.order = slices.DeleteFunc(g.order, func(k EdgeKey) bool { return k == key })
	return true
}

// HasEdge reports whether an edge from→to exists.
func (g *Graph) HasEdge(from, to int) bool {
	_, ok := g.index[EdgeKey{from, to}]
	return ok
}

// Edge returns the edge from→to and true, or a zero edge and false.
func (g *Graph) Edge(from, to int) (Edge, bool) {
	e, ok := g.index[EdgeKey{from, to}]
	return e, ok
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.order))
	for i, key := range g.order {
		edges[i] = g.index[key]
	}
	return edges
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.order) }

func (g *Graph) ensureNode(id int) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &Node{ID: id}
	if id > g.maxID {
		g.maxID = id
	}
}
