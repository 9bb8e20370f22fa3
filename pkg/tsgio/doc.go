// Package tsgio reads and writes time-expanded graphs, flow assignments,
// and compilation ledgers.
//
// Graphs travel as DIMACS-style minimum-cost flow problems: a single
// "p min" header, "n" lines for nodes with nonzero demand, and "a" lines
// for arcs. Structured comment records carry the metadata plain DIMACS
// has no place for, so a compiled problem survives a round trip through
// an external solver:
//
//	c SpatialNodes 12
//	c ArtificialNode 145
//	c EscapeEdge 145 146 200 0
//
// Solver output is consumed as "f <from> <to> <flow>" lines via
// [ReadAssignment]. Ledgers persist as JSON through [WriteLedger] and
// [ReadLedger].
package tsgio
