package cmd

import (
	"github.com/FractalWire/git-tools/core"
	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/spf13/cobra"
)

// emailsCmd lists the author emails of a repository.
var emailsCmd = &cobra.Command{
	Use:   "emails [repo-path]",
	Short: "List the author emails found in the history.",
	Long: `List every distinct author email, sorted. Use --email-contains to narrow the list
before passing emails to --emails.

Examples:
  git-summary emails --email-contains example.com`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEmails(rootCtx, cfg, client); err != nil {
			contract.LogFatal("Cannot list emails", err)
		}
	},
}
