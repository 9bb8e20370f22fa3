package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agvflow/corridor/pkg/pipeline"
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	var batch string

	cmd := &cobra.Command{
		Use:   "inspect <problem>",
		Short: "Summarize a time-expanded flow problem",
		Long: `Print summary statistics for a DIMACS problem file: spatial width,
node and edge counts, artificial nodes, escape edges, and totals.

With --batch, additionally match each restriction of a TOML batch
against the problem and report what it would claim, without mutating
anything.

Examples:
  corridor inspect compiled.min
  corridor inspect floor.min --batch restrictions.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			runner := pipeline.NewRunner(loggerFromContext(c.Context()))
			stats, err := runner.Inspect(args[0])
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "spatial nodes:    %d\n", stats.SpatialNodes)
			fmt.Fprintf(out, "nodes:            %d\n", stats.NodeCount)
			fmt.Fprintf(out, "edges:            %d\n", stats.EdgeCount)
			fmt.Fprintf(out, "artificial nodes: %d\n", stats.ArtificialNodes)
			fmt.Fprintf(out, "escape edges:     %d\n", stats.EscapeEdges)
			fmt.Fprintf(out, "total demand:     %d\n", stats.TotalDemand)
			fmt.Fprintf(out, "total capacity:   %d\n", stats.TotalCapacity)

			if batch == "" {
				return nil
			}
			summaries, err := runner.InspectBatch(args[0], batch)
			if err != nil {
				return err
			}
			for _, s := range summaries {
				fmt.Fprintf(out, "restriction %d: %d matched edges, %d stretches, capacity %d\n",
					s.Index, s.OmegaEdges, s.Components, s.TotalCapacity)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&batch, "batch", "b", "", "TOML restriction batch to match against the problem")

	return cmd
}
