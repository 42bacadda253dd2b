package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/internal/gitclient"
	"github.com/FractalWire/git-tools/schema"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// client is the commit extractor selected by --backend.
var client contract.GitClient

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "git-summary",
	Short:              "Summarize Git history: what kind of work, where, and how much it cost.",
	Long:               `git-summary reads commit history, classifies every commit by intent and reports where the work went, with a COCOMO cost estimate.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		contract.ConfigureLogger(viper.GetBool("verbose"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file, .env files and ENV variables if set.
func initConfig() {
	loadEnvFiles()

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".git-summary") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("GIT_SUMMARY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("dir-level", contract.DefaultDirLevel)
	viper.SetDefault("top", contract.DefaultTop)
	viper.SetDefault("dir-limit", contract.DefaultDirLimit)
	viper.SetDefault("salary", contract.DefaultSalary)
	viper.SetDefault("mode", schema.PureMode)
	viper.SetDefault("backend", schema.ExecBackend)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "no")
}

// loadEnvFiles loads .env files in order of precedence. Variables already set win.
func loadEnvFiles() {
	envFiles := []string{".env.local", ".env"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		envFiles = append(envFiles, filepath.Join(homeDir, ".git-summary", ".env"))
	}
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			contract.LogWarn("Cannot load "+file, err)
		}
	}
}

// sharedSetup unmarshals config, picks the extractor and runs validation.
func sharedSetup(ctx context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.RepoPathStr = args[0]
	} else {
		input.RepoPathStr = "."
	}

	// 4. Run all validation and complex parsing. Unknown backends fall back to exec
	// here and are rejected by the validation itself.
	client = gitclient.NewClient(schema.Backend(strings.ToLower(input.Backend)))
	if err := contract.ProcessAndValidate(ctx, cfg, client, input); err != nil {
		return err
	}

	// 5. Apply rendering and logging preferences.
	color.NoColor = !cfg.UseColors
	contract.ConfigureLogger(cfg.Verbose)
	if repoClient, ok := client.(*gitclient.RepoClient); ok && cfg.Output == schema.TextOut {
		repoClient.Progress = newProgressBar()
	}
	contract.Logger.WithField("repo", cfg.RepoPath).WithField("backend", cfg.Backend).Debug("configuration ready")
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
