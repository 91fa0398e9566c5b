// Package cli wires the merge core to the terminal: cobra commands, huh
// prompts for conflict decisions, and styled summary output. All algorithmic
// work lives below internal/batch and internal/merge; this package only
// translates between the user and the injected callbacks.
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "blastmerge",
		Short:         "Unify divergent copies of same-named files into one canonical version",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newMergeCmd())
	root.AddCommand(newBatchCmd())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error(err.Error())
		return 1
	}
	return 0
}
