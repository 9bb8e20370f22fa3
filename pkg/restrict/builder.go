package restrict

import (
	"fmt"

	"github.com/agvflow/corridor/pkg/tsg"
)

// buildEscape performs the graph surgery for one restriction, entirely
// within a staged sub-ledger. The live graph is not touched here; the
// applier commits all sub-ledgers at once after the whole batch has been
// processed, so every restriction's omega extraction sees the pre-batch
// topology.
//
// The construction, per restriction with virtualFlow = F - U > 0:
//
//   - A global virtual pair vS/vD with demands +virtualFlow/-virtualFlow.
//   - For every omega edge (u, v, cap, cost), two intermediate nodes i1, i2
//     and five replacement edges
//
//     u → i1           (cap, cost)    legitimate entry, original price
//     i1 → i2          (cap, 0)
//     i2 → v           (cap, 0)      legitimate exit
//     vS → i1          (cap, 0)      siphon in
//     i2 → vD          (cap, 0)      siphon out
//
//     preserving the legitimate path's original cost while offering a
//     zero-cost detour into the global pair.
//   - One escape edge vS → vD with capacity virtualFlow and cost gamma:
//     the only priced arc in the construction, and the bound on how much
//     flow may legally escape.
//
// The consumed omega edges are recorded for removal at commit and
// restoration at cleanup.
func buildEscape(alloc Allocator, restriction int, omega []tsg.Edge, virtualFlow, gamma int) *subLedger {
	sub := &subLedger{demand: make(map[int]int)}

	vs := alloc.Next()
	vd := alloc.Next()
	sub.nodes = append(sub.nodes,
		tsg.Node{ID: vs, Label: fmt.Sprintf("Global_vS_R%d", restriction), Artificial: true, Demand: virtualFlow},
		tsg.Node{ID: vd, Label: fmt.Sprintf("Global_vD_R%d", restriction), Artificial: true, Demand: -virtualFlow},
	)
	sub.demand[vs] = virtualFlow
	sub.demand[vd] = -virtualFlow

	for _, e := range omega {
		i1 := alloc.Next()
		i2 := alloc.Next()
		sub.nodes = append(sub.nodes,
			tsg.Node{ID: i1, Label: fmt.Sprintf("v_i1_%d_%d", e.From, e.To), Artificial: true},
			tsg.Node{ID: i2, Label: fmt.Sprintf("v_i2_%d_%d", e.From, e.To), Artificial: true},
		)

		sub.edges = append(sub.edges,
			tsg.Edge{From: e.From, To: i1, LowerBound: e.LowerBound, Capacity: e.Capacity, Cost: e.Cost},
			tsg.Edge{From: i1, To: i2, LowerBound: e.LowerBound, Capacity: e.Capacity},
			tsg.Edge{From: i2, To: e.To, LowerBound: e.LowerBound, Capacity: e.Capacity},
			tsg.Edge{From: vs, To: i1, Capacity: e.Capacity},
			tsg.Edge{From: i2, To: vd, Capacity: e.Capacity},
		)
		sub.omega = append(sub.omega, e)
	}

	sub.edges = append(sub.edges, tsg.Edge{From: vs, To: vd, Capacity: virtualFlow, Cost: gamma})
	sub.escapes = append(sub.escapes, EscapeEdge{
		From:        vs,
		To:          vd,
		Capacity:    virtualFlow,
		Gamma:       gamma,
		Restriction: restriction,
	})
	return sub
}
