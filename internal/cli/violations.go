package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agvflow/corridor/pkg/pipeline"
)

// violationsOpts holds the command-line flags for the violations command.
type violationsOpts struct {
	ledger  string // ledger JSON with escape metadata
	problem string // compiled problem, used when no ledger is given
}

// newViolationsCmd creates the violations command.
func newViolationsCmd() *cobra.Command {
	var opts violationsOpts

	cmd := &cobra.Command{
		Use:   "violations <solution>",
		Short: "Report restriction violations in solver output",
		Long: `Read a solver flow assignment and report every escape edge that
carried flow, with the penalty cost actually paid.

Escape edge metadata comes from the compile ledger (--ledger) or from
the compiled problem's comment records (--problem).

Examples:
  corridor violations solution.txt --ledger run.json
  corridor violations solution.txt --problem compiled.min`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())
			runner := pipeline.NewRunner(logger)

			report, err := runner.Violations(pipeline.ViolationsOptions{
				SolutionPath: args[0],
				LedgerPath:   opts.ledger,
				ProblemPath:  opts.problem,
			})
			if err != nil {
				return err
			}

			if report.Count() == 0 {
				fmt.Fprintln(c.OutOrStdout(), "no violations")
				return nil
			}
			for _, v := range report.Violations {
				fmt.Fprintf(c.OutOrStdout(), "restriction %d: edge (%d, %d) flow %d gamma %d penalty %d\n",
					v.Restriction, v.From, v.To, v.Flow, v.Gamma, v.Penalty)
			}
			fmt.Fprintf(c.OutOrStdout(), "total: %d violations, flow %d, penalty %d\n",
				report.Count(), report.TotalFlow, report.TotalPenalty)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.ledger, "ledger", "l", "", "ledger JSON from the compile run")
	cmd.Flags().StringVarP(&opts.problem, "problem", "p", "", "compiled problem file")

	return cmd
}
