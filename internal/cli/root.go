package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agvflow/corridor/pkg/buildinfo"
)

// Execute runs the corridor CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree
// against ctx. The logger is attached to the command context and
// accessible to all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "corridor",
		Short:        "Corridor compiles capacity restrictions into flow problems",
		Long:         `Corridor maps declarative AGV corridor restrictions onto a time-expanded graph, prices excess traffic through penalty escape edges, and reports restriction violations in solver output.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newCompileCmd())
	root.AddCommand(newRollbackCmd())
	root.AddCommand(newViolationsCmd())
	root.AddCommand(newInspectCmd())

	return root.ExecuteContext(ctx)
}
