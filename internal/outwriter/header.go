package outwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
)

// LogSummaryHeader prints a concise, 2-line header before a run.
// Machine-readable output on stdout is left clean.
func LogSummaryHeader(cfg *contract.Config) {
	if cfg.Output != schema.TextOut && cfg.OutputFile == "" {
		return
	}
	fmt.Fprint(os.Stdout, formatHeader(cfg))
}

func formatHeader(cfg *contract.Config) string {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." || repoName == string(filepath.Separator) {
		repoName = "current"
	}

	// Line 1: The repository and the estimate mode
	header := fmt.Sprintf("🔎 Repo: %s (Mode: %s)\n", repoName, cfg.EstimateMode)

	// Line 2: The commit range in scope
	var scope string
	if cfg.HasWindow() {
		scope = fmt.Sprintf("%s → %s (last %d %s)",
			cfg.WindowStart().Format(contract.DateFormat), cfg.Now.Format(contract.DateFormat),
			cfg.WindowCount, cfg.WindowUnit)
	} else {
		scope = "full history"
	}
	if cfg.DivergedFrom != "" {
		scope += fmt.Sprintf(", diverged from %s", cfg.DivergedFrom)
	}
	return header + fmt.Sprintf("📅 Range: %s\n", scope)
}
