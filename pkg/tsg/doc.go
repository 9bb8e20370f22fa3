// Package tsg provides the time-space graph container used by the corridor
// restriction compiler.
//
// A time-space (time-expanded) graph replicates each of M physical floor
// nodes once per discrete time step. Node ids are 1-based and encode both
// coordinates: id 1..M is the floor at time 0, id M+1..2M the floor at
// time 1, and so on. [SpatialOf] and [TimeOf] recover the coordinates.
//
// An edge represents occupying a physical corridor during a specific time
// interval. Edge identity is the ordered endpoint pair: within one graph no
// two edges share the same (From, To), and removal is by pair.
//
// The graph is a mutable working set. The simulation collaborator builds the
// base topology once; the restrict package then adds artificial nodes and
// replacement edges, and restores the original topology on cleanup. Graph is
// not safe for concurrent use without external synchronization.
package tsg
