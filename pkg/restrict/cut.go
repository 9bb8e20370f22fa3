package restrict

import (
	"github.com/agvflow/corridor/pkg/tsg"
)

// BoundaryCapacity computes the capacity crossing the boundary of a
// restricted corridor from the rest of the network.
//
// incoming[v] sums the capacity of edges (u, v) where v is restricted and
// u is not; outgoing[u] is symmetric for edges leaving the corridor. Edges
// internal to the corridor contribute to neither map. The maps size the
// virtual source and sink arcs of the max-flow probe.
func BoundaryCapacity(g *tsg.Graph, restricted map[int]struct{}) (incoming, outgoing map[int]int) {
	incoming = make(map[int]int)
	outgoing = make(map[int]int)

	for _, e := range g.Edges() {
		_, fromIn := restricted[e.From]
		_, toIn := restricted[e.To]
		switch {
		case toIn && !fromIn:
			incoming[e.To] += e.Capacity
		case fromIn && !toIn:
			outgoing[e.From] += e.Capacity
		}
	}
	return incoming, outgoing
}
