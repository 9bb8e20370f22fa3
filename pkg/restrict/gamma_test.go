package restrict

import (
	"testing"

	"github.com/agvflow/corridor/pkg/tsg"
)

func TestVirtualFlow(t *testing.T) {
	tests := []struct {
		maxFlow, u, want int
	}{
		{5, 3, 2},
		{3, 5, 0},
		{10, 10, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := VirtualFlow(tt.maxFlow, tt.u); got != tt.want {
			t.Errorf("VirtualFlow(%d, %d) = %d, want %d", tt.maxFlow, tt.u, got, tt.want)
		}
	}
}

func TestGammaResolver_Explicit(t *testing.T) {
	r := GammaResolver{}
	spec := Spec{Gamma: 250.4}.withDefaults()

	if got := r.Resolve(nil, spec); got != 250 {
		t.Errorf("Resolve() = %d, want 250 (explicit gamma rounded)", got)
	}
}

func TestGammaResolver_DerivedFloor(t *testing.T) {
	r := GammaResolver{}
	edges := []tsg.Edge{{Cost: 5}, {Cost: 10}, {Cost: 15}} // mean 10
	spec := Spec{}.withDefaults()                          // k=2, priority=1

	// 2 * 10 * 1 = 20, floored at 200.
	if got := r.Resolve(edges, spec); got != DefaultMinGamma {
		t.Errorf("Resolve() = %d, want %d", got, DefaultMinGamma)
	}
}

func TestGammaResolver_DerivedAboveFloor(t *testing.T) {
	r := GammaResolver{}
	edges := []tsg.Edge{{Cost: 100}, {Cost: 200}} // mean 150
	spec := Spec{Priority: 2.0}.withDefaults()

	// 2 * 150 * 2 = 600.
	if got := r.Resolve(edges, spec); got != 600 {
		t.Errorf("Resolve() = %d, want 600", got)
	}
}

func TestGammaResolver_LowPriorityNeutralized(t *testing.T) {
	r := GammaResolver{MinGamma: 1}
	edges := []tsg.Edge{{Cost: 100}}
	spec := Spec{Priority: 0.5, KFactor: 1.0}.withDefaults()

	// max(1, 0.5) = 1, so priority below one never discounts the penalty.
	if got := r.Resolve(edges, spec); got != 100 {
		t.Errorf("Resolve() = %d, want 100", got)
	}
}

func TestGammaResolver_CostlessGraphFallback(t *testing.T) {
	r := GammaResolver{MinGamma: 1}
	spec := Spec{KFactor: 3.0}.withDefaults()

	// No edges: mean falls back to 10; 3 * 10 * 1 = 30.
	if got := r.Resolve(nil, spec); got != 30 {
		t.Errorf("Resolve() = %d, want 30", got)
	}
}
