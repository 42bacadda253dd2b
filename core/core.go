// Package core has the history pipeline: extraction, filtering, classification,
// aggregation and estimation.
package core

import (
	"context"
	"strings"
	"time"

	"github.com/FractalWire/git-tools/core/agg"
	"github.com/FractalWire/git-tools/core/algo"
	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/internal/outwriter"
	"github.com/FractalWire/git-tools/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.GitClient) error

var writer = outwriter.NewOutWriter()

// ExecuteSummary runs the full pipeline and prints the summary.
// It serves as the main entry point for the 'summary' command.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, client contract.GitClient) error {
	start := time.Now()
	summary, err := GetSummaryResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	return writer.WriteSummary(summary, cfg, time.Since(start))
}

// ExecuteEstimate runs the pipeline and prints both COCOMO variants.
// It serves as the main entry point for the 'estimate' command.
func ExecuteEstimate(ctx context.Context, cfg *contract.Config, client contract.GitClient) error {
	start := time.Now()
	report, err := GetEstimateResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	return writer.WriteEstimate(report, cfg, time.Since(start))
}

// ExecuteEmails prints the author emails of the repository.
// It serves as the main entry point for the 'emails' command.
func ExecuteEmails(ctx context.Context, cfg *contract.Config, client contract.GitClient) error {
	emails, err := GetEmailsResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	return writer.WriteEmails(emails, cfg)
}

// GetSummaryResults runs Extractor → Filter → Classifier → Aggregator → Estimator
// and returns the summary without rendering it.
func GetSummaryResults(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.Summary, error) {
	commits, err := collectCommits(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	summary := agg.Aggregate(commits, ClassifyCommit, agg.Options{
		DirLevel:   cfg.DirLevel,
		Top:        cfg.Top,
		WindowDays: cfg.WindowDays(),
	})
	summary.RepoPath = cfg.RepoPath
	summary.Estimate = algo.Estimate(commits, cfg.EstimateMode, cfg.Salary)
	return summary, nil
}

// GetEstimateResults returns the pure and incremental estimates of the filtered history.
func GetEstimateResults(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.EstimateReport, error) {
	commits, err := collectCommits(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	report := &schema.EstimateReport{RepoPath: cfg.RepoPath, TotalCommits: len(commits)}
	for _, c := range commits {
		report.LinesAdded += c.LinesAdded()
		report.LinesDeleted += c.LinesDeleted()
	}
	report.Pure, report.Incremental = algo.EstimateBoth(commits, cfg.Salary)
	return report, nil
}

// GetEmailsResults lists the author emails, narrowed by the configured substring.
func GetEmailsResults(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]string, error) {
	emails, err := client.ListAuthorEmails(ctx, cfg.RepoPath)
	if err != nil {
		return nil, err
	}
	return matchEmails(emails, cfg.EmailContains), nil
}

// collectCommits extracts and filters the commits in scope of the configuration.
func collectCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]schema.CommitRecord, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogSummaryHeader(cfg)
	}

	logFilter := schema.LogFilter{BranchRef: cfg.DivergedFrom, AuthorEmails: cfg.Emails}

	// A substring filter is resolved to concrete emails first so the extractor can narrow its walk
	if cfg.EmailContains != "" && len(cfg.Emails) == 0 {
		emails, err := GetEmailsResults(ctx, cfg, client)
		if err != nil {
			return nil, err
		}
		if len(emails) == 0 {
			contract.Logger.WithField("pattern", cfg.EmailContains).Info("no author email matches")
			return nil, nil
		}
		contract.Logger.WithField("emails", emails).Debug("resolved email pattern")
		logFilter.AuthorEmails = emails
	}

	raw, err := client.ListCommits(ctx, cfg.RepoPath, logFilter)
	if err != nil {
		return nil, err
	}

	commits := Filter(raw, NewFilterOptions(cfg))
	contract.Logger.WithField("extracted", len(raw)).WithField("kept", len(commits)).Debug("filtered commits")
	return commits, nil
}

func matchEmails(emails []string, pattern string) []string {
	if pattern == "" {
		return emails
	}
	var matched []string
	for _, e := range emails {
		if strings.Contains(strings.ToLower(e), pattern) {
			matched = append(matched, e)
		}
	}
	return matched
}
