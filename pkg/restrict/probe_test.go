package restrict

import (
	"context"
	"testing"

	"github.com/agvflow/corridor/pkg/tsg"
)

func TestDinicProbe_BoundedByEscapeRoutes(t *testing.T) {
	p := DinicProbe{}
	cut := CutProblem{
		Omega:    []tsg.Edge{{From: 1, To: 2, Capacity: 2}},
		Incoming: map[int]int{1: 3},
		Outgoing: map[int]int{2: 2},
	}

	got, err := p.MaxFlow(context.Background(), cut)
	if err != nil {
		t.Fatalf("MaxFlow() error = %v", err)
	}
	if got != 2 {
		t.Errorf("MaxFlow() = %d, want 2 (min of inflow 3, corridor 2, outflow 2)", got)
	}
}

func TestDinicProbe_ParallelCorridor(t *testing.T) {
	p := DinicProbe{}
	cut := CutProblem{
		Omega: []tsg.Edge{
			{From: 1, To: 2, Capacity: 1},
			{From: 3, To: 4, Capacity: 1},
		},
		Incoming: map[int]int{1: 5, 3: 5},
		Outgoing: map[int]int{2: 5, 4: 5},
	}

	got, err := p.MaxFlow(context.Background(), cut)
	if err != nil {
		t.Fatalf("MaxFlow() error = %v", err)
	}
	if got != 2 {
		t.Errorf("MaxFlow() = %d, want 2 (two unit corridors)", got)
	}
}

func TestDinicProbe_NoBoundary(t *testing.T) {
	p := DinicProbe{}
	cut := CutProblem{
		Omega:    []tsg.Edge{{From: 1, To: 2, Capacity: 4}},
		Incoming: map[int]int{1: 4},
		// No outgoing boundary: the corridor is a dead end, nothing can
		// flow through it.
	}

	got, err := p.MaxFlow(context.Background(), cut)
	if err != nil {
		t.Fatalf("MaxFlow() error = %v", err)
	}
	if got != 0 {
		t.Errorf("MaxFlow() = %d, want 0", got)
	}
}

func TestDinicProbe_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := DinicProbe{}
	cut := CutProblem{
		Omega:    []tsg.Edge{{From: 1, To: 2, Capacity: 1}},
		Incoming: map[int]int{1: 1},
		Outgoing: map[int]int{2: 1},
	}

	if _, err := p.MaxFlow(ctx, cut); err == nil {
		t.Error("MaxFlow() with canceled context = nil error, want cancellation")
	}
}
