package restrict

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	apperrors "github.com/agvflow/corridor/pkg/errors"
	"github.com/agvflow/corridor/pkg/tsg"
)

// Applier sequences restriction compilation over one time-space graph and
// owns the artifact ledger of the current cycle.
//
// An Applier is single-threaded: it assumes exclusive ownership of the
// graph and ledger for the duration of one apply/cleanup cycle, and callers
// must serialize access externally if they need concurrency.
type Applier struct {
	graph   *tsg.Graph
	probe   MaxFlowProbe
	gamma   GammaResolver
	alloc   func(seed int) Allocator
	logger  *log.Logger
	current *Ledger
}

// Option configures an Applier.
type Option func(*Applier)

// WithProbe replaces the default Dinic max-flow probe.
func WithProbe(p MaxFlowProbe) Option {
	return func(a *Applier) { a.probe = p }
}

// WithMinGamma overrides the floor for derived penalty costs.
func WithMinGamma(minGamma int) Option {
	return func(a *Applier) { a.gamma = GammaResolver{MinGamma: minGamma} }
}

// WithAllocator replaces the id allocator factory. The factory is invoked
// once per apply cycle with the graph's pre-batch maximum id.
func WithAllocator(factory func(seed int) Allocator) Option {
	return func(a *Applier) { a.alloc = factory }
}

// WithLogger sets the logger used for per-restriction narration.
func WithLogger(l *log.Logger) Option {
	return func(a *Applier) { a.logger = l }
}

// NewApplier creates an Applier over g. By default it probes with
// [DinicProbe], derives gammas with the standard floor, allocates ids with
// a monotonic counter, and logs nowhere.
func NewApplier(g *tsg.Graph, opts ...Option) *Applier {
	a := &Applier{
		graph:  g,
		probe:  DinicProbe{},
		alloc:  NewCounter,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ledger returns the ledger of the most recent apply cycle, or nil if no
// batch has been applied.
func (a *Applier) Ledger() *Ledger { return a.current }

// Apply compiles a batch of restrictions into the graph and returns the
// artifact ledger of the cycle.
//
// If a previous cycle's artifacts are still live, they are rolled back
// first, so re-applying is idempotent. Specs that fail validation, match no
// edges, are naturally satisfied, or claim omega edges already claimed by
// an earlier restriction in the same batch are skipped with a logged
// reason; they contribute nothing to the ledger. A max-flow probe failure
// aborts the whole batch with a FLOW_COMPUTATION error and leaves the
// graph untouched, since no mutation happens before commit.
func (a *Applier) Apply(ctx context.Context, batch []Spec) (*Ledger, error) {
	if !a.current.Empty() {
		a.logger.Debug("live artifacts from previous cycle, rolling back first", "ledger", a.current.ID)
		Cleanup(a.graph, a.current)
	}

	ledger := NewLedger()
	alloc := a.alloc(a.graph.MaxID())
	claimed := make(map[tsg.EdgeKey]int)
	var staged []*subLedger

	a.logger.Info("applying restriction batch", "restrictions", len(batch), "ledger", ledger.ID)

	for i, spec := range batch {
		spec = spec.withDefaults()
		if err := Validate(spec); err != nil {
			a.logger.Warn("skipping invalid restriction",
				"index", i, "timeframe", fmt.Sprintf("[%d, %d]", spec.Start, spec.End),
				"max_concurrent", spec.MaxConcurrent, "err", err)
			continue
		}

		omega := ExtractOmega(a.graph, spec)
		if len(omega) == 0 {
			a.logger.Debug("restriction matches no edges", "index", i)
			continue
		}
		if conflict, prev, ok := overlap(omega, claimed); ok {
			a.logger.Warn("skipping overlapping restriction",
				"index", i, "conflicts_with", prev,
				"edge", fmt.Sprintf("(%d, %d)", conflict.From, conflict.To),
				"err", apperrors.New(apperrors.ErrCodeOverlappingRestriction,
					"omega edge (%d, %d) already claimed by restriction %d", conflict.From, conflict.To, prev))
			continue
		}

		nodes := RestrictedNodes(omega)
		incoming, outgoing := BoundaryCapacity(a.graph, nodes)
		maxFlow, err := a.probe.MaxFlow(ctx, CutProblem{Omega: omega, Incoming: incoming, Outgoing: outgoing})
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeFlowComputation, err,
				"restriction %d (timeframe [%d, %d], U=%d): max-flow probe",
				i, spec.Start, spec.End, spec.MaxConcurrent)
		}

		virtualFlow := VirtualFlow(maxFlow, spec.MaxConcurrent)
		a.logger.Debug("probed restriction",
			"index", i, "omega_edges", len(omega), "max_flow", maxFlow,
			"max_concurrent", spec.MaxConcurrent, "virtual_flow", virtualFlow)
		if virtualFlow == 0 {
			a.logger.Debug("restriction naturally satisfied", "index", i)
			continue
		}

		gamma := a.gamma.Resolve(a.graph.Edges(), spec)
		sub := buildEscape(alloc, i, omega, virtualFlow, gamma)
		for _, key := range sub.claims() {
			claimed[key] = i
		}
		staged = append(staged, sub)
		a.logger.Info("compiled restriction",
			"index", i, "omega_edges", len(omega), "virtual_flow", virtualFlow, "gamma", gamma)
	}

	for _, sub := range staged {
		ledger.merge(sub)
	}
	a.commit(ledger, staged)
	a.current = ledger

	a.logger.Info("batch committed",
		"ledger", ledger.ID,
		"additional_nodes", len(ledger.AdditionalNodes),
		"additional_edges", len(ledger.AdditionalEdges),
		"removed_omega_edges", len(ledger.AggregateOmega))
	return ledger, nil
}

// Cleanup rolls back the most recent apply cycle, if any.
func (a *Applier) Cleanup() {
	Cleanup(a.graph, a.current)
}

// commit applies the staged batch to the live graph in one pass: remove
// every consumed omega edge by endpoint-pair identity, then add the
// synthetic nodes and edges. Commit-time failures indicate a broken
// allocator or claim set and panic, as they would leave the graph
// half-mutated.
func (a *Applier) commit(ledger *Ledger, staged []*subLedger) {
	for _, e := range ledger.AggregateOmega {
		a.graph.RemoveEdge(e.From, e.To)
	}
	for _, sub := range staged {
		for _, n := range sub.nodes {
			if err := a.graph.AddNode(n); err != nil {
				panic(fmt.Sprintf("restrict: commit node %d: %v", n.ID, err))
			}
		}
	}
	for _, e := range ledger.AdditionalEdges {
		if err := a.graph.AddEdge(e); err != nil {
			panic(fmt.Sprintf("restrict: commit edge (%d, %d): %v", e.From, e.To, err))
		}
	}
}

// overlap reports the first omega edge already claimed by an earlier
// restriction of the same batch.
func overlap(omega []tsg.Edge, claimed map[tsg.EdgeKey]int) (tsg.Edge, int, bool) {
	for _, e := range omega {
		if prev, ok := claimed[e.Key()]; ok {
			return e, prev, true
		}
	}
	return tsg.Edge{}, 0, false
}
