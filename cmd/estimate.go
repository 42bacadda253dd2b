package cmd

import (
	"github.com/FractalWire/git-tools/core"
	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/spf13/cobra"
)

// estimateCmd prints both COCOMO estimates of a repository.
var estimateCmd = &cobra.Command{
	Use:   "estimate [repo-path]",
	Short: "Estimate effort and cost with Basic COCOMO.",
	Long: `Estimate development effort, schedule and cost from the commit history.

The pure mode sizes the project from its net line count. The incremental mode
replays the commits oldest first and adds the marginal effort of each one, never
letting the running size drop below zero. Both are printed side by side.

Examples:
  git-summary estimate --salary 75000
  git-summary estimate --years 1 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEstimate(rootCtx, cfg, client); err != nil {
			contract.LogFatal("Cannot run estimate", err)
		}
	},
}
