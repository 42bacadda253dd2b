package cmd

import (
	"github.com/FractalWire/git-tools/core"
	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd summarizes the commit history of a repository.
var summaryCmd = &cobra.Command{
	Use:   "summary [repo-path]",
	Short: "Summarize commit history by category, directory and cost.",
	Long: `Read the commit history and report what kind of work happened, where it happened and how much it cost.

Every commit is classified from its subject line as Feature, Fix, Improvement,
Refactor, Docs, Chore or Other. The report shows:
- Commit and line totals per category
- Activity per directory at the chosen depth
- The largest commits by lines changed
- Commits of the five most recent active days
- A Basic COCOMO estimate of effort and cost

Examples:
  # Summarize your own work of the last two weeks
  git-summary summary --mine --weeks 2

  # Work on the current branch only, bucketed two directories deep
  git-summary summary --diverged-from main --dir-level 2

  # Replay the history commit by commit for the estimate
  git-summary summary --mode incremental --salary 90000

  # Export every filtered commit to CSV
  git-summary summary --output csv --output-file commits.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, client); err != nil {
			contract.LogFatal("Cannot run summary", err)
		}
	},
}
