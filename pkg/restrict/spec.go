package restrict

import (
	apperrors "github.com/agvflow/corridor/pkg/errors"
)

// Default parameter values applied by [Spec] normalization.
const (
	// DefaultPriority is the restriction priority used when none is set.
	DefaultPriority = 1.0

	// DefaultKFactor scales the derived gamma when none is given explicitly.
	DefaultKFactor = 2.0
)

// Spec is one declarative capacity restriction: at most MaxConcurrent
// vehicles may occupy the listed spatial corridors during [Start, End].
//
// A Spec is immutable once validated; batches are ordered slices of Specs.
// Gamma is the explicit per-unit penalty cost; zero means "derive a default"
// (see [GammaResolver]). KFactor and Priority only influence the derived
// gamma.
type Spec struct {
	// Edges lists the restricted physical corridors as ordered spatial
	// endpoint pairs.
	Edges [][2]int

	// Start and End bound the restricted time window, Start <= End.
	Start int
	End   int

	// MaxConcurrent is the corridor occupancy bound U, >= 0.
	MaxConcurrent int

	// Priority weighs the derived gamma, >= 0. Zero means unset (1.0).
	Priority float64

	// Gamma is the explicit penalty cost; zero means auto-derive.
	Gamma float64

	// KFactor scales the derived gamma. Zero means unset (2.0).
	KFactor float64
}

// withDefaults returns a copy with unset tuning parameters filled in.
func (s Spec) withDefaults() Spec {
	if s.Priority == 0 {
		s.Priority = DefaultPriority
	}
	if s.KFactor == 0 {
		s.KFactor = DefaultKFactor
	}
	return s
}

// Validate checks a restriction spec for structural soundness.
// It returns a structured error with code INVALID_RESTRICTION or
// INVALID_TIMEFRAME describing the first problem found, or nil.
//
// Validation failures are non-fatal at the batch level: the applier skips
// the offending spec and continues with the rest.
func Validate(s Spec) error {
	if len(s.Edges) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRestriction, "empty restricted edge list")
	}
	for i, e := range s.Edges {
		if e[0] < 1 || e[1] < 1 {
			return apperrors.New(apperrors.ErrCodeInvalidRestriction,
				"edge %d: spatial coordinates must be positive, got (%d, %d)", i, e[0], e[1])
		}
	}
	if s.Start > s.End {
		return apperrors.New(apperrors.ErrCodeInvalidTimeframe,
			"timeframe start %d after end %d", s.Start, s.End)
	}
	if s.MaxConcurrent < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRestriction,
			"max concurrent vehicles must be >= 0, got %d", s.MaxConcurrent)
	}
	if s.Priority < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRestriction,
			"priority must be >= 0, got %g", s.Priority)
	}
	if s.Gamma < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRestriction,
			"gamma must be >= 0, got %g", s.Gamma)
	}
	return nil
}
