// Package restrict compiles corridor capacity restrictions into
// penalty-priced escape topology on a time-space graph.
//
// A restriction bounds how many vehicles may traverse a set of physical
// corridors during a time window. Instead of making the min-cost-flow
// problem infeasible when demand exceeds that bound, the compiler rewrites
// the matching time-expanded edges so that excess flow can escape through a
// synthetic edge priced at a penalty cost (gamma). A solver then quantifies
// violations as paid escape flow rather than rejecting the instance.
//
// # Compilation steps
//
// For each restriction in a batch, [Applier.Apply] runs:
//
//  1. Omega extraction: find the time-expanded edges matching the
//     restriction's spatial footprint and time window ([ExtractOmega]).
//  2. Cut analysis: total capacity entering and leaving the restricted
//     corridor from the rest of the network ([BoundaryCapacity]).
//  3. Max-flow probe: worst-case concurrent corridor usage F across an
//     auxiliary source/sink network ([MaxFlowProbe], consumed as an
//     external capability).
//  4. Gamma resolution: explicit penalty or a derived default
//     ([GammaResolver]).
//  5. Escape topology construction: for virtualFlow = max(0, F-U), a
//     global virtual source/sink pair, per-edge siphon detours, and one
//     escape edge of capacity F-U priced at gamma.
//
// All mutations are staged in per-restriction sub-ledgers and committed to
// the live graph once, after every restriction has been processed, so omega
// extraction always observes the pre-batch topology and a failed probe
// leaves the graph untouched. The merged [Ledger] records every artifact
// and supports exact rollback via [Cleanup].
//
// After an external min-cost-flow solve, [DetectViolations] reports which
// escape edges carried flow and the penalty paid.
//
// The package is single-threaded by design: one Applier owns its graph and
// ledger for the duration of an apply/cleanup cycle.
package restrict
