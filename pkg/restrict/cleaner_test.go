package restrict

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCleanup_RestoresPreApplyGraph(t *testing.T) {
	g := floorGraph(t)
	preNodes, preEdges := graphSnapshot(g)

	a := NewApplier(g, WithProbe(&stubProbe{value: 3}))
	ledger, err := a.Apply(context.Background(), []Spec{{
		Edges: [][2]int{{1, 2}}, Start: 0, End: 3, MaxConcurrent: 1, Gamma: 200,
	}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if ledger.Empty() {
		t.Fatal("expected a non-empty ledger before cleanup")
	}

	Cleanup(g, ledger)

	postNodes, postEdges := graphSnapshot(g)
	if diff := cmp.Diff(preNodes, postNodes); diff != "" {
		t.Errorf("nodes not restored (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(preEdges, postEdges); diff != "" {
		t.Errorf("edges not restored (-want +got):\n%s", diff)
	}
	if !ledger.Empty() {
		t.Error("ledger not cleared after cleanup")
	}
}

func TestCleanup_DoubleCleanupNoOp(t *testing.T) {
	g := floorGraph(t)
	a := NewApplier(g, WithProbe(&stubProbe{value: 3}))
	ledger, err := a.Apply(context.Background(), []Spec{{
		Edges: [][2]int{{1, 2}}, Start: 0, End: 3, MaxConcurrent: 1, Gamma: 200,
	}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	Cleanup(g, ledger)
	nodes, edges := graphSnapshot(g)

	Cleanup(g, ledger)
	nodes2, edges2 := graphSnapshot(g)

	if diff := cmp.Diff(nodes, nodes2); diff != "" {
		t.Errorf("second cleanup changed nodes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(edges, edges2); diff != "" {
		t.Errorf("second cleanup changed edges (-want +got):\n%s", diff)
	}
}

func TestCleanup_NilAndEmptyLedger(t *testing.T) {
	g := floorGraph(t)
	pre := g.EdgeCount()

	Cleanup(g, nil)
	Cleanup(g, NewLedger())

	if g.EdgeCount() != pre {
		t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), pre)
	}
}

func TestCleanup_ToleratesPartiallyRestoredOmega(t *testing.T) {
	g := floorGraph(t)
	a := NewApplier(g, WithProbe(&stubProbe{value: 3}))
	ledger, err := a.Apply(context.Background(), []Spec{{
		Edges: [][2]int{{1, 2}}, Start: 0, End: 3, MaxConcurrent: 1, Gamma: 200,
	}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// Simulate an out-of-band restore of one consumed corridor edge.
	if err := g.AddEdge(ledger.AggregateOmega[0]); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}

	Cleanup(g, ledger)

	for _, e := range []struct{ from, to int }{{4, 5}, {7, 8}} {
		if !g.HasEdge(e.from, e.to) {
			t.Errorf("edge (%d, %d) missing after cleanup", e.from, e.to)
		}
	}
}
