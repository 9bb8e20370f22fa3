// Package config loads restriction batches from TOML files.
//
// A batch file holds compiler-wide settings at the top level and one
// [[restriction]] table per corridor restriction:
//
//	min_gamma = 200
//
//	[[restriction]]
//	edges = [[1, 2], [4, 5]]
//	timeframe = [0, 3]
//	max_concurrent = 1
//	priority = 2.0
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agvflow/corridor/pkg/errors"
	"github.com/agvflow/corridor/pkg/restrict"
)

// Batch is a decoded restriction batch ready to hand to the applier.
type Batch struct {
	MinGamma     int
	Restrictions []restrict.Spec
}

type batchFile struct {
	MinGamma     int               `toml:"min_gamma"`
	Restrictions []restrictionFile `toml:"restriction"`
}

type restrictionFile struct {
	Edges         [][]int `toml:"edges"`
	Timeframe     []int   `toml:"timeframe"`
	MaxConcurrent int     `toml:"max_concurrent"`
	Priority      float64 `toml:"priority"`
	Gamma         float64 `toml:"gamma"`
	KFactor       float64 `toml:"k_factor"`
}

// Load reads and decodes a batch file at path. Structural problems
// (malformed TOML, a corridor that is not an endpoint pair, a timeframe
// that is not a two-element interval) fail here; semantic validation of
// each restriction happens when the batch is applied.
func Load(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Batch{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "batch file %s", path)
		}
		return Batch{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes a TOML batch from raw bytes. See [Load].
func Parse(data []byte) (Batch, error) {
	var bf batchFile
	if err := toml.Unmarshal(data, &bf); err != nil {
		return Batch{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode batch")
	}

	out := Batch{MinGamma: bf.MinGamma}
	for i, r := range bf.Restrictions {
		spec, err := toSpec(r)
		if err != nil {
			return Batch{}, fmt.Errorf("restriction %d: %w", i, err)
		}
		out.Restrictions = append(out.Restrictions, spec)
	}
	return out, nil
}

func toSpec(r restrictionFile) (restrict.Spec, error) {
	if len(r.Edges) == 0 {
		return restrict.Spec{}, apperrors.New(apperrors.ErrCodeInvalidFormat, "no edges")
	}
	edges := make([][2]int, len(r.Edges))
	for i, pair := range r.Edges {
		if len(pair) != 2 {
			return restrict.Spec{}, apperrors.New(apperrors.ErrCodeInvalidFormat,
				"edge %d has %d endpoints, want 2", i, len(pair))
		}
		edges[i] = [2]int{pair[0], pair[1]}
	}
	if len(r.Timeframe) != 2 {
		return restrict.Spec{}, apperrors.New(apperrors.ErrCodeInvalidFormat,
			"timeframe has %d bounds, want 2", len(r.Timeframe))
	}

	gamma := r.Gamma
	if gamma > 0 && gamma < 1 {
		gamma = 1
	}
	return restrict.Spec{
		Edges:         edges,
		Start:         r.Timeframe[0],
		End:           r.Timeframe[1],
		MaxConcurrent: r.MaxConcurrent,
		Priority:      r.Priority,
		Gamma:         gamma,
		KFactor:       r.KFactor,
	}, nil
}
