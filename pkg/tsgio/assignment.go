package tsgio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agvflow/corridor/pkg/restrict"
	"github.com/agvflow/corridor/pkg/tsg"
)

// ReadAssignment decodes solver output from r into a flow assignment.
//
// Flow values arrive as "f <from> <to> <flow>" lines. Comment lines,
// blank lines, and "s" objective lines are skipped. A repeated endpoint
// pair accumulates, matching how solvers report parallel augmentations.
//
// ReadAssignment does not close r.
func ReadAssignment(r io.Reader) (restrict.Assignment, error) {
	out := restrict.Assignment{}

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
		case "c", "s":
			continue
		case "f":
			v, err := intFields(fields[1:], 3, line)
			if err != nil {
				return nil, err
			}
			out[tsg.EdgeKey{From: v[0], To: v[1]}] += v[2]
		default:
			return nil, fmt.Errorf("line %d: unknown record %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read assignment: %w", err)
	}
	return out, nil
}

// ImportAssignment reads a solver output file at path and returns the
// decoded flow assignment.
func ImportAssignment(path string) (restrict.Assignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadAssignment(f)
}
