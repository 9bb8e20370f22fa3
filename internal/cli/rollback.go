package cli

import (
	"github.com/spf13/cobra"

	"github.com/agvflow/corridor/pkg/pipeline"
)

// newRollbackCmd creates the rollback command.
func newRollbackCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "rollback <problem> <ledger>",
		Short: "Undo a compilation using its ledger",
		Long: `Undo a compile run: remove the escape topology recorded in the
ledger and restore the original corridor edges.

Example:
  corridor rollback compiled.min run.json -o restored.min`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())
			runner := pipeline.NewRunner(logger)

			prog := newProgress(logger)
			if err := runner.Rollback(pipeline.RollbackOptions{
				ProblemPath: args[0],
				LedgerPath:  args[1],
				OutputPath:  output,
			}); err != nil {
				return err
			}
			prog.done("Rolled back compilation")

			if output != "" {
				logger.Infof("Wrote problem to %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "restored problem file (skipped if empty)")

	return cmd
}
