package restrict

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/agvflow/corridor/pkg/tsg"
)

// EscapeEdge records one synthetic escape arc and its pricing. Escape edges
// are identified by these explicit records, carried through the ledger and
// into persisted problems; downstream consumers never infer them from cost
// or id magnitude.
type EscapeEdge struct {
	From        int `json:"from"`
	To          int `json:"to"`
	Capacity    int `json:"capacity"` // F - U at compile time
	Gamma       int `json:"gamma"`    // per-unit penalty cost
	Restriction int `json:"restriction"` // index of the spec within its batch
}

// Ledger is the artifact record of one apply cycle. It lists every
// synthetic node and edge added to the graph, every original omega edge
// removed at commit, and the virtual flow demands of the global escape
// pairs. [Cleanup] consumes it to restore the pre-restriction topology
// exactly.
//
// The ledger round-trips through JSON so violation analysis can run in a
// separate process from compilation.
type Ledger struct {
	// ID correlates log lines and persisted artifacts of one cycle.
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// AdditionalNodes are the ids of all synthetic nodes, sorted.
	AdditionalNodes []int `json:"additional_nodes"`

	// AdditionalEdges are all synthetic edges in creation order.
	AdditionalEdges []tsg.Edge `json:"additional_edges"`

	// AggregateOmega are the original edges removed from the live graph at
	// commit, across the whole batch.
	AggregateOmega []tsg.Edge `json:"aggregate_omega"`

	// VirtualDemand maps global escape node ids to their signed flow
	// balance (+virtualFlow on the source, -virtualFlow on the sink).
	VirtualDemand map[int]int `json:"virtual_demand"`

	// EscapeEdges identify the penalty-priced arcs for violation analysis.
	EscapeEdges []EscapeEdge `json:"escape_edges"`
}

// NewLedger returns an empty ledger for a fresh apply cycle.
func NewLedger() *Ledger {
	return &Ledger{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		VirtualDemand: make(map[int]int),
	}
}

// Empty reports whether the ledger records no artifacts.
func (l *Ledger) Empty() bool {
	return l == nil ||
		(len(l.AdditionalNodes) == 0 && len(l.AdditionalEdges) == 0 && len(l.AggregateOmega) == 0)
}

// merge folds one restriction's staged sub-ledger into the batch ledger.
func (l *Ledger) merge(sub *subLedger) {
	for _, n := range sub.nodes {
		l.AdditionalNodes = append(l.AdditionalNodes, n.ID)
	}
	l.AdditionalEdges = append(l.AdditionalEdges, sub.edges...)
	l.AggregateOmega = append(l.AggregateOmega, sub.omega...)
	for id, demand := range sub.demand {
		l.VirtualDemand[id] = demand
	}
	l.EscapeEdges = append(l.EscapeEdges, sub.escapes...)
	slices.Sort(l.AdditionalNodes)
}

// clear resets the ledger after a successful cleanup.
func (l *Ledger) clear() {
	l.AdditionalNodes = nil
	l.AdditionalEdges = nil
	l.AggregateOmega = nil
	l.VirtualDemand = make(map[int]int)
	l.EscapeEdges = nil
}

// subLedger stages one restriction's mutations before batch commit.
// Discarding it on failure leaves the live graph untouched.
type subLedger struct {
	nodes   []tsg.Node // synthetic nodes with labels and demands
	edges   []tsg.Edge // synthetic edges in creation order
	omega   []tsg.Edge // original edges this restriction consumes
	demand  map[int]int
	escapes []EscapeEdge
}

// claims returns the endpoint pairs of the omega edges this sub-ledger
// consumes, for overlap detection between restrictions in one batch.
func (s *subLedger) claims() []tsg.EdgeKey {
	keys := make([]tsg.EdgeKey, len(s.omega))
	for i, e := range s.omega {
		keys[i] = e.Key()
	}
	return keys
}
