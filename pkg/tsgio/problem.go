package tsgio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/agvflow/corridor/pkg/restrict"
	"github.com/agvflow/corridor/pkg/tsg"
)

// Problem bundles a time-expanded graph with the escape edges the
// compiler priced into it. The escape list is empty for uncompiled
// graphs.
type Problem struct {
	Graph   *tsg.Graph
	Escapes []restrict.EscapeEdge
}

// WriteProblem encodes a problem in DIMACS minimum-cost flow format and
// writes it to w. Metadata that DIMACS cannot express natively travels
// in structured comment records, so [ReadProblem] can reconstruct the
// full problem. The node count in the header is the highest node id, so
// id-based solvers can size their arrays directly.
func WriteProblem(p Problem, w io.Writer) error {
	g := p.Graph
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "c SpatialNodes %d\n", g.M())
	for _, n := range g.Nodes() {
		if n.Artificial {
			fmt.Fprintf(bw, "c ArtificialNode %d\n", n.ID)
		}
	}
	for _, e := range p.Escapes {
		fmt.Fprintf(bw, "c EscapeEdge %d %d %d %d\n", e.From, e.To, e.Gamma, e.Restriction)
	}

	fmt.Fprintf(bw, "p min %d %d\n", g.MaxID(), g.EdgeCount())
	for _, n := range g.Nodes() {
		if n.Demand != 0 {
			fmt.Fprintf(bw, "n %d %d\n", n.ID, n.Demand)
		}
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "a %d %d %d %d %d\n", e.From, e.To, e.LowerBound, e.Capacity, e.Cost)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write problem: %w", err)
	}
	return nil
}

// ExportProblem writes a problem to a DIMACS file at path.
// This is a convenience wrapper around [WriteProblem] for file-based output.
func ExportProblem(p Problem, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteProblem(p, f)
}

// ReadProblem decodes a DIMACS minimum-cost flow problem from r.
//
// The input must contain exactly one "p min" line and a "c SpatialNodes"
// record; without the spatial width the time-expanded structure of the
// node ids cannot be recovered. Node demands come from "n" lines, arcs
// from "a" lines, and artificial nodes and escape edges from their
// comment records. Unrecognized comment lines are skipped.
//
// ReadProblem returns an error if the header is missing or malformed, a
// record has the wrong field count, or an arc duplicates an endpoint
// pair. ReadProblem does not close r.
func ReadProblem(r io.Reader) (Problem, error) {
	var (
		p          Problem
		m          int
		artificial []int
		demands    = map[int]int{}
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "c":
			if len(fields) < 2 {
				continue
			}
			switch fields[1] {
			case "SpatialNodes":
				v, err := intFields(fields[2:], 1, line)
				if err != nil {
					return Problem{}, err
				}
				m = v[0]
			case "ArtificialNode":
				v, err := intFields(fields[2:], 1, line)
				if err != nil {
					return Problem{}, err
				}
				artificial = append(artificial, v[0])
			case "EscapeEdge":
				v, err := intFields(fields[2:], 3, line)
				if err != nil {
					return Problem{}, err
				}
				esc := restrict.EscapeEdge{From: v[0], To: v[1], Gamma: v[2]}
				if len(v) > 3 {
					esc.Restriction = v[3]
				}
				p.Escapes = append(p.Escapes, esc)
			}
		case "p":
			if p.Graph != nil {
				return Problem{}, fmt.Errorf("line %d: duplicate problem header", line)
			}
			if len(fields) != 4 || fields[1] != "min" {
				return Problem{}, fmt.Errorf("line %d: malformed problem header %q", line, sc.Text())
			}
			if m < 1 {
				return Problem{}, fmt.Errorf("line %d: problem header before SpatialNodes record", line)
			}
			p.Graph = tsg.New(m)
		case "n":
			v, err := intFields(fields[1:], 2, line)
			if err != nil {
				return Problem{}, err
			}
			demands[v[0]] = v[1]
		case "a":
			if p.Graph == nil {
				return Problem{}, fmt.Errorf("line %d: arc before problem header", line)
			}
			v, err := intFields(fields[1:], 5, line)
			if err != nil {
				return Problem{}, err
			}
			e := tsg.Edge{From: v[0], To: v[1], LowerBound: v[2], Capacity: v[3], Cost: v[4]}
			if err := p.Graph.AddEdge(e); err != nil {
				return Problem{}, fmt.Errorf("line %d: arc %d->%d: %w", line, e.From, e.To, err)
			}
		default:
			return Problem{}, fmt.Errorf("line %d: unknown record %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return Problem{}, fmt.Errorf("read problem: %w", err)
	}
	if p.Graph == nil {
		return Problem{}, fmt.Errorf("missing problem header")
	}

	for _, id := range artificial {
		if n, ok := p.Graph.Node(id); ok {
			n.Artificial = true
			continue
		}
		if err := p.Graph.AddNode(tsg.Node{ID: id, Artificial: true}); err != nil {
			return Problem{}, fmt.Errorf("artificial node %d: %w", id, err)
		}
	}
	for id, d := range demands {
		if !p.Graph.SetDemand(id, d) {
			return Problem{}, fmt.Errorf("demand on unknown node %d", id)
		}
	}
	return p, nil
}

// ImportProblem reads a DIMACS file at path and returns the decoded
// problem. The error wraps the underlying cause with the file path for
// context.
func ImportProblem(path string) (Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return Problem{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadProblem(f)
}

func intFields(fields []string, min, line int) ([]int, error) {
	if len(fields) < min {
		return nil, fmt.Errorf("line %d: want at least %d fields, got %d", line, min, len(fields))
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("line %d: field %q: %w", line, f, err)
		}
		out[i] = v
	}
	return out, nil
}
