// Package contract provides interfaces and shared utilities for the internal architecture of git-summary.
package contract

import (
	"context"

	"github.com/FractalWire/git-tools/schema"
)

// GitClient is the boundary with the version-control data source.
// Every backend (local git binary, go-git) implements it, which also allows the
// pipeline to be tested without a real repository.
type GitClient interface {
	// --- Repository Resolution ---

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetUserEmail returns the email configured for the current user.
	GetUserEmail(ctx context.Context, repoPath string) (string, error)

	// --- History ---

	// ListAuthorEmails returns every distinct author email in the history of HEAD.
	ListAuthorEmails(ctx context.Context, repoPath string) ([]string, error)

	// ListCommits returns the commits in scope of the filter, newest first.
	// File changes of each record are computed against its first parent.
	ListCommits(ctx context.Context, repoPath string, filter schema.LogFilter) ([]schema.CommitRecord, error)
}
