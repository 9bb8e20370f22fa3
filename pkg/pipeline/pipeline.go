// Package pipeline wires file IO, batch loading, and the restriction
// compiler into end-to-end runs. Both the CLI and embedding programs use
// the Runner so they share option handling and logging.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/agvflow/corridor/pkg/config"
	apperrors "github.com/agvflow/corridor/pkg/errors"
	"github.com/agvflow/corridor/pkg/restrict"
	"github.com/agvflow/corridor/pkg/tsgio"
)

// Runner executes compile, rollback, and violation runs. It is stateless
// except for the logger; each run reads its inputs fresh from disk.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// CompileOptions configure a compile run.
type CompileOptions struct {
	// ProblemPath is the uncompiled time-expanded graph in DIMACS format.
	ProblemPath string
	// BatchPath is the TOML restriction batch.
	BatchPath string
	// OutputPath receives the compiled problem. Empty skips the write.
	OutputPath string
	// LedgerPath receives the ledger JSON. Empty skips the write.
	LedgerPath string
	// MinGamma overrides the penalty floor. Zero keeps the batch file's
	// value, or the compiler default if the batch has none.
	MinGamma int
}

// CompileStats summarize a compile run.
type CompileStats struct {
	Restrictions int
	EscapeEdges  int
	NodeCount    int
	EdgeCount    int
	Duration     time.Duration
}

// CompileResult is the outcome of a compile run.
type CompileResult struct {
	RunID  string
	Ledger *restrict.Ledger
	Stats  CompileStats
}

// Compile reads a problem and a restriction batch, applies the batch,
// and writes the compiled problem and ledger to the configured outputs.
func (r *Runner) Compile(ctx context.Context, opts CompileOptions) (*CompileResult, error) {
	runID := uuid.NewString()
	logger := r.Logger.With("run", runID)
	start := time.Now()

	problem, err := tsgio.ImportProblem(opts.ProblemPath)
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}
	logger.Info("loaded problem",
		"spatial", problem.Graph.M(),
		"nodes", problem.Graph.NodeCount(),
		"edges", problem.Graph.EdgeCount())

	batch, err := config.Load(opts.BatchPath)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	logger.Info("loaded batch", "restrictions", len(batch.Restrictions))

	applierOpts := []restrict.Option{restrict.WithLogger(logger)}
	switch {
	case opts.MinGamma > 0:
		applierOpts = append(applierOpts, restrict.WithMinGamma(opts.MinGamma))
	case batch.MinGamma > 0:
		applierOpts = append(applierOpts, restrict.WithMinGamma(batch.MinGamma))
	}

	applier := restrict.NewApplier(problem.Graph, applierOpts...)
	ledger, err := applier.Apply(ctx, batch.Restrictions)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	logger.Info("compiled restrictions",
		"escapes", len(ledger.EscapeEdges),
		"added_nodes", len(ledger.AdditionalNodes),
		"added_edges", len(ledger.AdditionalEdges),
		"duration", time.Since(start))

	if opts.OutputPath != "" {
		out := tsgio.Problem{Graph: problem.Graph, Escapes: ledger.EscapeEdges}
		if err := tsgio.ExportProblem(out, opts.OutputPath); err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
	}
	if opts.LedgerPath != "" {
		if err := tsgio.ExportLedger(ledger, opts.LedgerPath); err != nil {
			return nil, fmt.Errorf("ledger: %w", err)
		}
	}

	return &CompileResult{
		RunID:  runID,
		Ledger: ledger,
		Stats: CompileStats{
			Restrictions: len(batch.Restrictions),
			EscapeEdges:  len(ledger.EscapeEdges),
			NodeCount:    problem.Graph.NodeCount(),
			EdgeCount:    problem.Graph.EdgeCount(),
			Duration:     time.Since(start),
		},
	}, nil
}

// RollbackOptions configure a rollback run.
type RollbackOptions struct {
	// ProblemPath is the compiled problem to restore.
	ProblemPath string
	// LedgerPath is the ledger JSON from the compile run.
	LedgerPath string
	// OutputPath receives the restored problem. Empty skips the write.
	OutputPath string
}

// Rollback reads a compiled problem and its ledger, undoes the
// compilation, and writes the restored problem.
func (r *Runner) Rollback(opts RollbackOptions) error {
	problem, err := tsgio.ImportProblem(opts.ProblemPath)
	if err != nil {
		return fmt.Errorf("problem: %w", err)
	}
	ledger, err := tsgio.ImportLedger(opts.LedgerPath)
	if err != nil {
		return fmt.Errorf("ledger: %w", err)
	}

	restrict.Cleanup(problem.Graph, ledger)
	r.Logger.Info("rolled back compilation",
		"ledger", ledger.ID,
		"nodes", problem.Graph.NodeCount(),
		"edges", problem.Graph.EdgeCount())

	if opts.OutputPath != "" {
		out := tsgio.Problem{Graph: problem.Graph}
		if err := tsgio.ExportProblem(out, opts.OutputPath); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	return nil
}

// ViolationsOptions configure a violation detection run. Escape edge
// metadata comes from the ledger when LedgerPath is set, otherwise from
// the compiled problem's comment records.
type ViolationsOptions struct {
	SolutionPath string
	LedgerPath   string
	ProblemPath  string
}

// Violations reads a solver assignment and reports escape edges that
// carry flow.
func (r *Runner) Violations(opts ViolationsOptions) (restrict.Report, error) {
	assignment, err := tsgio.ImportAssignment(opts.SolutionPath)
	if err != nil {
		return restrict.Report{}, fmt.Errorf("solution: %w", err)
	}

	var escapes []restrict.EscapeEdge
	switch {
	case opts.LedgerPath != "":
		ledger, err := tsgio.ImportLedger(opts.LedgerPath)
		if err != nil {
			return restrict.Report{}, fmt.Errorf("ledger: %w", err)
		}
		escapes = ledger.EscapeEdges
	case opts.ProblemPath != "":
		problem, err := tsgio.ImportProblem(opts.ProblemPath)
		if err != nil {
			return restrict.Report{}, fmt.Errorf("problem: %w", err)
		}
		escapes = problem.Escapes
	default:
		return restrict.Report{}, apperrors.New(apperrors.ErrCodeInvalidConfig,
			"either a ledger or a compiled problem is required")
	}

	report := restrict.DetectViolations(assignment, escapes)
	r.Logger.Info("checked assignment",
		"escapes", len(escapes),
		"violations", report.Count(),
		"penalty", report.TotalPenalty)
	return report, nil
}

// InspectStats summarize a problem file for display.
type InspectStats struct {
	SpatialNodes    int
	NodeCount       int
	EdgeCount       int
	ArtificialNodes int
	EscapeEdges     int
	TotalDemand     int
	TotalCapacity   int
}

// RestrictionSummary describes what one restriction of a batch would
// match in a problem, without mutating anything.
type RestrictionSummary struct {
	Index         int
	OmegaEdges    int
	Components    int
	TotalCapacity int
}

// InspectBatch matches every restriction of a batch against a problem
// and summarizes the omegas: matched edge count, contiguous corridor
// stretches, and total capacity. The graph is not modified.
func (r *Runner) InspectBatch(problemPath, batchPath string) ([]RestrictionSummary, error) {
	problem, err := tsgio.ImportProblem(problemPath)
	if err != nil {
		return nil, fmt.Errorf("problem: %w", err)
	}
	batch, err := config.Load(batchPath)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	summaries := make([]RestrictionSummary, len(batch.Restrictions))
	for i, spec := range batch.Restrictions {
		omega := restrict.ExtractOmega(problem.Graph, spec)
		summaries[i] = RestrictionSummary{
			Index:         i,
			OmegaEdges:    len(omega),
			Components:    len(restrict.OmegaComponents(omega)),
			TotalCapacity: restrict.TotalCapacity(omega),
		}
	}
	return summaries, nil
}

// Inspect reads a problem file and returns its summary statistics.
// TotalDemand sums positive demands only; a balanced problem has the
// same magnitude on the negative side.
func (r *Runner) Inspect(path string) (InspectStats, error) {
	problem, err := tsgio.ImportProblem(path)
	if err != nil {
		return InspectStats{}, err
	}

	stats := InspectStats{
		SpatialNodes: problem.Graph.M(),
		NodeCount:    problem.Graph.NodeCount(),
		EdgeCount:    problem.Graph.EdgeCount(),
		EscapeEdges:  len(problem.Escapes),
	}
	for _, n := range problem.Graph.Nodes() {
		if n.Artificial {
			stats.ArtificialNodes++
		}
		if n.Demand > 0 {
			stats.TotalDemand += n.Demand
		}
	}
	for _, e := range problem.Graph.Edges() {
		stats.TotalCapacity += e.Capacity
	}
	return stats, nil
}
