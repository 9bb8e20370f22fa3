package tsgio

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agvflow/corridor/pkg/restrict"
	"github.com/agvflow/corridor/pkg/tsg"
)

func TestLedger_FileRoundTrip(t *testing.T) {
	l := restrict.NewLedger()
	l.AdditionalNodes = []int{9, 10}
	l.AdditionalEdges = []tsg.Edge{{From: 9, To: 10, Capacity: 2, Cost: 200}}
	l.AggregateOmega = []tsg.Edge{{From: 4, To: 5, Capacity: 1, Cost: 10}}
	l.VirtualDemand = map[int]int{9: 2, 10: -2}
	l.EscapeEdges = []restrict.EscapeEdge{{From: 9, To: 10, Capacity: 2, Gamma: 200}}

	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := ExportLedger(l, path); err != nil {
		t.Fatalf("ExportLedger() error = %v", err)
	}

	got, err := ImportLedger(path)
	if err != nil {
		t.Fatalf("ImportLedger() error = %v", err)
	}
	if diff := cmp.Diff(l, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportLedger_MissingFile(t *testing.T) {
	if _, err := ImportLedger(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("ImportLedger() = nil error, want failure")
	}
}
