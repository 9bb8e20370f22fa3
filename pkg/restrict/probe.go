package restrict

import (
	"context"
	"math"
	"strconv"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/flow"

	"github.com/agvflow/corridor/pkg/tsg"
)

// Virtual endpoint names in the probe's auxiliary network. Time-expanded
// node ids render as decimal strings, so these can never collide.
const (
	probeSource = "vS"
	probeSink   = "vT"
)

// CutProblem is the auxiliary network a probe measures: the omega edges at
// their original capacities, fed by a virtual source sized to the boundary
// inflow and drained by a virtual sink sized to the boundary outflow.
type CutProblem struct {
	Omega    []tsg.Edge
	Incoming map[int]int
	Outgoing map[int]int
}

// MaxFlowProbe computes the maximum flow achievable across a restricted
// corridor. The result is the worst-case concurrent corridor usage under
// current boundary capacities, not the usage of any particular simulated
// schedule; sizing the escape mechanism from it lets the penalty absorb any
// feasible demand pattern.
//
// The probe is an external capability. Implementations may block; callers
// needing bounded latency wrap the context. Errors must be propagated, not
// reported as zero flow.
type MaxFlowProbe interface {
	MaxFlow(ctx context.Context, p CutProblem) (int, error)
}

// DinicProbe computes cut flows with Dinic's algorithm from
// github.com/katalvlaran/lvlath. The zero value is ready to use.
type DinicProbe struct {
	// Options tunes the underlying algorithm. The context passed to
	// MaxFlow always takes precedence over Options.Ctx.
	Options flow.Options
}

// MaxFlow builds the vS/vT auxiliary graph and returns its max-flow value.
// A corridor with no boundary inflow or no boundary outflow carries no
// through-traffic, so the flow is 0 without running the algorithm.
func (p DinicProbe) MaxFlow(ctx context.Context, cut CutProblem) (int, error) {
	if len(cut.Incoming) == 0 || len(cut.Outgoing) == 0 {
		return 0, nil
	}

	g, err := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	if err != nil {
		return 0, err
	}
	for _, e := range cut.Omega {
		if _, err := g.AddEdge(vertex(e.From), vertex(e.To), float64(e.Capacity)); err != nil {
			return 0, err
		}
	}
	for id, capacity := range cut.Incoming {
		if _, err := g.AddEdge(probeSource, vertex(id), float64(capacity)); err != nil {
			return 0, err
		}
	}
	for id, capacity := range cut.Outgoing {
		if _, err := g.AddEdge(vertex(id), probeSink, float64(capacity)); err != nil {
			return 0, err
		}
	}

	opts := p.Options
	opts.Ctx = ctx
	value, _, err := flow.Dinic(g, probeSource, probeSink, opts)
	if err != nil {
		return 0, err
	}
	return int(math.Round(value)), nil
}

func vertex(id int) string { return strconv.Itoa(id) }
