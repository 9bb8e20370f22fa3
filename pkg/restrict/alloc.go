package restrict

// Allocator hands out fresh node ids for synthetic topology.
//
// One allocator instance is seeded from the graph's pre-batch maximum id
// and shared across every restriction in a batch, so no synthetic id can
// collide with a pre-existing node or with another allocation from the same
// cycle. The allocator is injected (see [WithAllocator]) so tests can
// observe and control id assignment deterministically.
type Allocator interface {
	// Next returns an id never returned before and greater than the seed.
	Next() int
}

// NewCounter returns an Allocator that yields seed+1, seed+2, ...
func NewCounter(seed int) Allocator {
	return &counter{last: seed}
}

type counter struct {
	last int
}

func (c *counter) Next() int {
	c.last++
	return c.last
}
