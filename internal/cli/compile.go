package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agvflow/corridor/pkg/pipeline"
)

// compileOpts holds the command-line flags for the compile command.
type compileOpts struct {
	output   string // compiled problem path
	ledger   string // ledger JSON path
	minGamma int    // penalty floor override
}

// newCompileCmd creates the compile command.
func newCompileCmd() *cobra.Command {
	var opts compileOpts

	cmd := &cobra.Command{
		Use:   "compile <problem> <batch>",
		Short: "Apply a restriction batch to a time-expanded flow problem",
		Long: `Apply a TOML restriction batch to a DIMACS flow problem.

Each restriction is matched against the graph, probed for excess flow,
and rewritten into penalty-priced escape topology. The compiled problem
and the rollback ledger are written to the configured outputs.

Examples:
  corridor compile floor.min restrictions.toml -o compiled.min
  corridor compile floor.min restrictions.toml -o compiled.min --ledger run.json
  corridor compile floor.min restrictions.toml --min-gamma 500`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())
			runner := pipeline.NewRunner(logger)

			prog := newProgress(logger)
			result, err := runner.Compile(c.Context(), pipeline.CompileOptions{
				ProblemPath: args[0],
				BatchPath:   args[1],
				OutputPath:  opts.output,
				LedgerPath:  opts.ledger,
				MinGamma:    opts.minGamma,
			})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Compiled %d restrictions into %d escape edges",
				result.Stats.Restrictions, result.Stats.EscapeEdges))

			if opts.output != "" {
				logger.Infof("Wrote problem to %s", opts.output)
			}
			if opts.ledger != "" {
				logger.Infof("Wrote ledger to %s", opts.ledger)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "compiled problem file (skipped if empty)")
	cmd.Flags().StringVarP(&opts.ledger, "ledger", "l", "", "ledger JSON file (skipped if empty)")
	cmd.Flags().IntVar(&opts.minGamma, "min-gamma", 0, "penalty floor override (0 keeps the batch value)")

	return cmd
}
