package restrict

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agvflow/corridor/pkg/tsg"
)

func TestLedger_JSONRoundTrip(t *testing.T) {
	l := NewLedger()
	l.AdditionalNodes = []int{9, 10, 11, 12}
	l.AdditionalEdges = []tsg.Edge{
		{From: 9, To: 11, Capacity: 1},
		{From: 11, To: 12, Capacity: 1, Cost: 10},
	}
	l.AggregateOmega = []tsg.Edge{{From: 4, To: 5, Capacity: 1, Cost: 10}}
	l.VirtualDemand = map[int]int{9: 2, 10: -2}
	l.EscapeEdges = []EscapeEdge{{From: 9, To: 10, Capacity: 2, Gamma: 200, Restriction: 0}}

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Ledger
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if diff := cmp.Diff(*l, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLedger_Empty(t *testing.T) {
	var nilLedger *Ledger
	if !nilLedger.Empty() {
		t.Error("nil ledger should be empty")
	}
	if !NewLedger().Empty() {
		t.Error("fresh ledger should be empty")
	}

	l := NewLedger()
	l.AdditionalEdges = []tsg.Edge{{From: 1, To: 2}}
	if l.Empty() {
		t.Error("ledger with edges should not be empty")
	}
}

func TestNewLedger_DistinctIDs(t *testing.T) {
	a, b := NewLedger(), NewLedger()
	if a.ID == "" || b.ID == "" {
		t.Fatal("ledger id must be populated")
	}
	if a.ID == b.ID {
		t.Errorf("ledger ids collide: %q", a.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}
