package tsgio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/agvflow/corridor/pkg/restrict"
)

// WriteLedger encodes a compilation ledger as indented JSON and writes
// it to w. The output round-trips through [ReadLedger], so a compile run
// can be rolled back by a later process.
func WriteLedger(l *restrict.Ledger, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return nil
}

// ExportLedger writes a ledger to a JSON file at path.
func ExportLedger(l *restrict.Ledger, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLedger(l, f)
}

// ReadLedger decodes a JSON ledger from r. ReadLedger does not close r.
func ReadLedger(r io.Reader) (*restrict.Ledger, error) {
	var l restrict.Ledger
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	return &l, nil
}

// ImportLedger reads a JSON file at path and returns the decoded ledger.
func ImportLedger(path string) (*restrict.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLedger(f)
}
