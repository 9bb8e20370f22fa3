package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agvflow/corridor/pkg/errors"
	"github.com/agvflow/corridor/pkg/restrict"
)

func TestParse(t *testing.T) {
	input := []byte(`
min_gamma = 250

[[restriction]]
edges = [[1, 2], [4, 5]]
timeframe = [0, 3]
max_concurrent = 1
priority = 2.0

[[restriction]]
edges = [[7, 8]]
timeframe = [2, 6]
max_concurrent = 0
gamma = 300.0
k_factor = 1.5
`)

	got, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := Batch{
		MinGamma: 250,
		Restrictions: []restrict.Spec{
			{Edges: [][2]int{{1, 2}, {4, 5}}, Start: 0, End: 3, MaxConcurrent: 1, Priority: 2.0},
			{Edges: [][2]int{{7, 8}}, Start: 2, End: 6, MaxConcurrent: 0, Gamma: 300, KFactor: 1.5},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ClampsSubunitGamma(t *testing.T) {
	input := []byte(`
[[restriction]]
edges = [[1, 2]]
timeframe = [0, 3]
max_concurrent = 1
gamma = 0.4
`)

	got, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if g := got.Restrictions[0].Gamma; g != 1 {
		t.Errorf("Gamma = %v, want 1 (clamped)", g)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  apperrors.Code
	}{
		{
			"malformed toml",
			"min_gamma = [broken",
			apperrors.ErrCodeInvalidFormat,
		},
		{
			"no edges",
			"[[restriction]]\ntimeframe = [0, 3]\nmax_concurrent = 1\n",
			apperrors.ErrCodeInvalidFormat,
		},
		{
			"triple endpoint",
			"[[restriction]]\nedges = [[1, 2, 3]]\ntimeframe = [0, 3]\nmax_concurrent = 1\n",
			apperrors.ErrCodeInvalidFormat,
		},
		{
			"one-sided timeframe",
			"[[restriction]]\nedges = [[1, 2]]\ntimeframe = [0]\nmax_concurrent = 1\n",
			apperrors.ErrCodeInvalidFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() = nil error, want failure")
			}
			if !apperrors.Is(err, tt.code) {
				t.Errorf("error code = %q, want %q", apperrors.GetCode(err), tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.toml")
	content := "[[restriction]]\nedges = [[1, 2]]\ntimeframe = [0, 3]\nmax_concurrent = 1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Restrictions) != 1 {
		t.Errorf("len(Restrictions) = %d, want 1", len(got.Restrictions))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("Load() = nil error, want failure")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", apperrors.GetCode(err))
	}
}
