package restrict

import (
	"math"

	"github.com/agvflow/corridor/pkg/tsg"
)

// DefaultMinGamma is the floor applied to derived penalty costs. A penalty
// below the typical routing cost scale would make violations cheaper than
// legitimate detours and defeat the restriction.
const DefaultMinGamma = 200

// fallbackMeanCost stands in for the network's mean edge cost when the
// graph has no costed edges to average over.
const fallbackMeanCost = 10

// GammaResolver derives the per-unit escape penalty for a restriction.
//
// An explicit spec gamma is used as-is (rounded to an integer cost).
// Otherwise the default is kFactor * mean(edge cost) * max(1, priority),
// floored at MinGamma.
type GammaResolver struct {
	// MinGamma floors derived penalties; zero means [DefaultMinGamma].
	MinGamma int
}

// Resolve returns the integer penalty cost for one restriction given the
// full edge set of the working graph.
func (r GammaResolver) Resolve(edges []tsg.Edge, s Spec) int {
	if s.Gamma > 0 {
		return int(math.Round(s.Gamma))
	}

	minGamma := r.MinGamma
	if minGamma == 0 {
		minGamma = DefaultMinGamma
	}

	mean := float64(fallbackMeanCost)
	if len(edges) > 0 {
		total := 0
		for _, e := range edges {
			total += e.Cost
		}
		mean = float64(total) / float64(len(edges))
	}

	derived := int(math.Round(s.KFactor * mean * math.Max(1.0, s.Priority)))
	if derived < minGamma {
		return minGamma
	}
	return derived
}

// VirtualFlow returns the escape capacity a restriction needs: the amount
// by which worst-case corridor usage exceeds the permitted occupancy U.
// Zero means the restriction is naturally satisfied and no topology change
// is required.
func VirtualFlow(maxFlow, u int) int {
	return max(0, maxFlow-u)
}
