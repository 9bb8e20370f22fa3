package restrict

import (
	"github.com/agvflow/corridor/pkg/tsg"
)

// ExtractOmega returns the time-expanded edges matched by a restriction:
// edges whose spatial projection is one of the restricted corridors and
// whose time interval strictly overlaps the open window (Start, End), i.e.
// TimeOf(from) < End and TimeOf(to) > Start. An edge that only abuts a
// boundary (for example an edge ending exactly at Start) is excluded.
//
// An empty result is a valid outcome meaning the restriction currently
// affects nothing. Omega is recomputed fresh per apply cycle.
func ExtractOmega(g *tsg.Graph, s Spec) []tsg.Edge {
	restricted := make(map[[2]int]struct{}, len(s.Edges))
	for _, e := range s.Edges {
		restricted[e] = struct{}{}
	}

	var omega []tsg.Edge
	for _, e := range g.Edges() {
		base := [2]int{g.SpatialOf(e.From), g.SpatialOf(e.To)}
		if _, ok := restricted[base]; !ok {
			continue
		}
		if g.TimeOf(e.From) < s.End && g.TimeOf(e.To) > s.Start {
			omega = append(omega, tsg.Edge{
				From:     e.From,
				To:       e.To,
				Capacity: e.Capacity,
				Cost:     e.Cost,
			})
		}
	}
	return omega
}

// RestrictedNodes returns the union of endpoints across omega.
func RestrictedNodes(omega []tsg.Edge) map[int]struct{} {
	nodes := make(map[int]struct{}, len(omega)*2)
	for _, e := range omega {
		nodes[e.From] = struct{}{}
		nodes[e.To] = struct{}{}
	}
	return nodes
}

// TotalCapacity sums the capacity of the omega edges.
func TotalCapacity(omega []tsg.Edge) int {
	total := 0
	for _, e := range omega {
		total += e.Capacity
	}
	return total
}

// OmegaComponents groups omega edges into weakly connected components.
// Each component is one physically contiguous stretch of restricted
// corridor; inspection tooling reports them separately.
func OmegaComponents(omega []tsg.Edge) [][]tsg.Edge {
	parent := make(map[int]int)

	var find func(u int) int
	find = func(u int) int {
		if parent[u] != u {
			parent[u] = find(parent[u])
		}
		return parent[u]
	}
	union := func(u, v int) {
		pu, pv := find(u), find(v)
		if pu != pv {
			parent[pu] = pv
		}
	}

	for _, e := range omega {
		if _, ok := parent[e.From]; !ok {
			parent[e.From] = e.From
		}
		if _, ok := parent[e.To]; !ok {
			parent[e.To] = e.To
		}
		union(e.From, e.To)
	}

	groups := make(map[int][]tsg.Edge)
	var roots []int
	for _, e := range omega {
		root := find(e.From)
		if _, seen := groups[root]; !seen {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], e)
	}

	components := make([][]tsg.Edge, 0, len(roots))
	for _, root := range roots {
		components = append(components, groups[root])
	}
	return components
}
