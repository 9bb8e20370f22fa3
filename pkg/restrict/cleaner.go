package restrict

import (
	"github.com/agvflow/corridor/pkg/tsg"
)

// Cleanup is the exact inverse of an apply cycle: it removes every
// synthetic edge and node recorded in the ledger and re-inserts the
// original omega edges, then clears the ledger.
//
// Cleanup never fails. A nil or empty ledger is a no-op, and artifacts the
// graph no longer holds (or omega edges it already holds) are skipped
// silently, so a stale ledger cannot make rollback worse than the state it
// found.
func Cleanup(g *tsg.Graph, ledger *Ledger) {
	if ledger.Empty() {
		return
	}

	for _, e := range ledger.AdditionalEdges {
		g.RemoveEdge(e.From, e.To)
	}
	for _, id := range ledger.AdditionalNodes {
		g.RemoveNode(id)
	}
	for _, e := range ledger.AggregateOmega {
		if !g.HasEdge(e.From, e.To) {
			_ = g.AddEdge(e)
		}
	}

	ledger.clear()
}
