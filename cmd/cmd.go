// Package cmd defines the command-line interface for git-summary.
package cmd

import (
	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(emailsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("emails", "", "Comma-separated list of author emails to keep")
	rootCmd.PersistentFlags().String("email-contains", "", "Keep authors whose email contains this text")
	rootCmd.PersistentFlags().Bool("mine", false, "Keep only commits authored with the configured user.email")
	rootCmd.PersistentFlags().Int("days", 0, "Only commits from the last N days")
	rootCmd.PersistentFlags().Int("weeks", 0, "Only commits from the last N weeks")
	rootCmd.PersistentFlags().Int("months", 0, "Only commits from the last N months")
	rootCmd.PersistentFlags().Int("years", 0, "Only commits from the last N years")
	rootCmd.PersistentFlags().String("diverged-from", "", "Only commits reachable from HEAD but not from this branch")
	rootCmd.PersistentFlags().Bool("skip-merges", false, "Ignore merge commits")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().Bool("skip-vendor", false, "Ignore vendored and third-party paths")
	rootCmd.PersistentFlags().Float64("salary", contract.DefaultSalary, "Yearly salary used for the cost estimate")
	rootCmd.PersistentFlags().String("backend", string(schema.ExecBackend), "Commit extractor: exec or gogit")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to (base path for parquet)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Prefix section titles with emojis (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of summaryCmd to Viper
	summaryCmd.Flags().Int("dir-level", contract.DefaultDirLevel, "Directory depth used to bucket file changes")
	summaryCmd.Flags().IntP("top", "n", contract.DefaultTop, "Number of top commits by lines changed")
	summaryCmd.Flags().Int("dir-limit", contract.DefaultDirLimit, "Number of directories shown in text output (0 = all)")
	summaryCmd.Flags().String("mode", string(schema.PureMode), "Estimate mode: pure or incremental")
	if err := viper.BindPFlags(summaryCmd.Flags()); err != nil {
		contract.LogFatal("Error binding summary flags", err)
	}
}
