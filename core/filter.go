package core

import (
	"slices"
	"strings"
	"time"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
	"github.com/src-d/enry/v2"
)

// FilterOptions holds every commit-level filter. Zero values disable a filter.
type FilterOptions struct {
	Emails        []string  // exact email allow-list, lower-cased
	EmailContains string    // substring of the email, lower-cased
	Since         time.Time // keep commits at or after this instant
	SkipMerges    bool
	Excludes      []string // path patterns dropped from file changes
	SkipVendor    bool     // drop file changes under vendored paths
}

// NewFilterOptions derives the filters from a validated configuration.
func NewFilterOptions(cfg *contract.Config) FilterOptions {
	return FilterOptions{
		Emails:        cfg.Emails,
		EmailContains: cfg.EmailContains,
		Since:         cfg.WindowStart(),
		SkipMerges:    cfg.SkipMerges,
		Excludes:      cfg.Excludes,
		SkipVendor:    cfg.SkipVendor,
	}
}

// Filter returns the commits matching every active filter, in their original order.
// Path excludes trim file changes but never drop the commit itself.
// The input is left untouched and applying Filter twice yields the same result.
func Filter(commits []schema.CommitRecord, opts FilterOptions) []schema.CommitRecord {
	var kept []schema.CommitRecord
	for _, c := range commits {
		if !matchesCommit(c, opts) {
			continue
		}
		if len(opts.Excludes) > 0 || opts.SkipVendor {
			c.FileChanges = filterChanges(c.FileChanges, opts)
		}
		kept = append(kept, c)
	}
	return kept
}

func matchesCommit(c schema.CommitRecord, opts FilterOptions) bool {
	email := strings.ToLower(c.AuthorEmail)
	if len(opts.Emails) > 0 && !slices.Contains(opts.Emails, email) {
		return false
	}
	if opts.EmailContains != "" && !strings.Contains(email, opts.EmailContains) {
		return false
	}
	if !opts.Since.IsZero() && c.Timestamp.Before(opts.Since) {
		return false
	}
	if opts.SkipMerges && c.IsMerge() {
		return false
	}
	return true
}

// filterChanges returns a fresh slice so the caller's records are never shared.
func filterChanges(changes []schema.FileChange, opts FilterOptions) []schema.FileChange {
	var kept []schema.FileChange
	for _, fc := range changes {
		if contract.ShouldIgnore(fc.Path, opts.Excludes) {
			continue
		}
		if opts.SkipVendor && enry.IsVendor(fc.Path) {
			continue
		}
		kept = append(kept, fc)
	}
	return kept
}
