package restrict

import (
	"github.com/agvflow/corridor/pkg/tsg"
)

// Assignment maps solved arc flows by endpoint pair. Arcs absent from the
// map carry zero flow.
type Assignment map[tsg.EdgeKey]int

// Violation is one escape edge that carried flow in a solved assignment:
// Flow units of traffic exceeded the restriction's occupancy bound and paid
// Penalty = Flow * Gamma for it.
type Violation struct {
	From        int `json:"from"`
	To          int `json:"to"`
	Restriction int `json:"restriction"`
	Flow        int `json:"flow"`
	Gamma       int `json:"gamma"`
	Penalty     int `json:"penalty"`
}

// Report aggregates the violations of one solved assignment.
type Report struct {
	Violations   []Violation `json:"violations"`
	TotalFlow    int         `json:"total_flow"`
	TotalPenalty int         `json:"total_penalty"`
}

// Count returns the number of violations.
func (r Report) Count() int { return len(r.Violations) }

// Pairs returns the violated endpoint pairs in report order.
func (r Report) Pairs() []tsg.EdgeKey {
	pairs := make([]tsg.EdgeKey, len(r.Violations))
	for i, v := range r.Violations {
		pairs[i] = tsg.EdgeKey{From: v.From, To: v.To}
	}
	return pairs
}

// DetectViolations checks every known escape edge against a solved flow
// assignment. Escape edges come from the apply cycle's ledger or from a
// persisted problem's explicit tags; detection never infers them from cost
// or id heuristics.
func DetectViolations(assignment Assignment, escapes []EscapeEdge) Report {
	var report Report
	for _, esc := range escapes {
		flow := assignment[tsg.EdgeKey{From: esc.From, To: esc.To}]
		if flow <= 0 {
			continue
		}
		report.Violations = append(report.Violations, Violation{
			From:        esc.From,
			To:          esc.To,
			Restriction: esc.Restriction,
			Flow:        flow,
			Gamma:       esc.Gamma,
			Penalty:     flow * esc.Gamma,
		})
		report.TotalFlow += flow
		report.TotalPenalty += flow * esc.Gamma
	}
	return report
}
