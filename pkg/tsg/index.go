package tsg

// TimeOf returns the discrete time step encoded by a node id on a floor of
// m spatial nodes: (id-1) div m. Ids 1..m map to time 0, m+1..2m to time 1,
// and so on.
func TimeOf(id, m int) int { return (id - 1) / m }

// SpatialOf returns the 1-based spatial coordinate encoded by a node id on
// a floor of m spatial nodes: ((id-1) mod m) + 1.
func SpatialOf(id, m int) int { return (id-1)%m + 1 }

// TimeOf returns the time step of a node id in this graph.
func (g *Graph) TimeOf(id int) int { return TimeOf(id, g.m) }

// SpatialOf returns the spatial coordinate of a node id in this graph.
func (g *Graph) SpatialOf(id int) int { return SpatialOf(id, g.m) }
