// Package gitclient has the commit extractors backing contract.GitClient.
package gitclient

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
)

// logFormat renders one header line per commit: hash, parents, author email, author name,
// strict ISO author date, subject. Fields are separated by the ASCII unit separator
// so free-form names and subjects may contain any printable character.
const logFormat = "--pretty=format:" + headerPrefix + "%H%x1f%P%x1f%ae%x1f%an%x1f%aI%x1f%s"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ contract.GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// NewClient returns the extractor for the given backend.
func NewClient(backend schema.Backend) contract.GitClient {
	if backend == schema.GoGitBackend {
		return NewRepoClient()
	}
	return NewLocalGitClient()
}

// Run executes a git command and returns its stdout.
// Failures wrap contract.ErrExtractionFailure.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	contract.Logger.WithField("args", fullArgs).Debug("running git")
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("%w: git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", contract.ErrExtractionFailure, repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("%w: git command failed: %w. Ensure Git is installed and available on your PATH", contract.ErrExtractionFailure, err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetUserEmail implements the GitClient interface.
// An unset user.email yields an empty string.
func (c *LocalGitClient) GetUserEmail(ctx context.Context, repoPath string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "config", "user.email")
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("%w: reading user.email: %w", contract.ErrExtractionFailure, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ListAuthorEmails implements the GitClient interface.
func (c *LocalGitClient) ListAuthorEmails(ctx context.Context, repoPath string) ([]string, error) {
	if !c.hasCommits(ctx, repoPath) {
		return nil, nil
	}
	out, err := c.Run(ctx, repoPath, "log", "--pretty=format:%ae")
	if err != nil {
		return nil, err
	}
	return uniqueSorted(strings.Split(string(out), "\n")), nil
}

// ListCommits implements the GitClient interface.
func (c *LocalGitClient) ListCommits(ctx context.Context, repoPath string, filter schema.LogFilter) ([]schema.CommitRecord, error) {
	if filter.BranchRef != "" {
		if _, err := c.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", filter.BranchRef+"^{commit}"); err != nil {
			return nil, fmt.Errorf("%w: unknown reference %q", contract.ErrExtractionFailure, filter.BranchRef)
		}
	}
	if !c.hasCommits(ctx, repoPath) {
		return nil, nil
	}

	args := []string{
		"log",
		"--numstat",
		"--diff-merges=first-parent",
		"--no-color",
		logFormat,
	}
	if len(filter.AuthorEmails) > 0 {
		// --author narrows the walk; exact email matching is the filter stage's job
		args = append(args, "--fixed-strings", "--regexp-ignore-case")
		for _, email := range filter.AuthorEmails {
			args = append(args, "--author="+email)
		}
	}
	if filter.BranchRef != "" {
		args = append(args, filter.BranchRef+"..HEAD")
	} else {
		args = append(args, "HEAD")
	}
	args = append(args, "--")

	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	commits, err := parseLog(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrExtractionFailure, err)
	}
	contract.Logger.WithField("commits", len(commits)).Debug("parsed git log")
	return commits, nil
}

// hasCommits reports whether HEAD points to a commit; it does not in a fresh repository.
func (c *LocalGitClient) hasCommits(ctx context.Context, repoPath string) bool {
	_, err := c.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", "HEAD")
	return err == nil
}

func uniqueSorted(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	slices.Sort(out)
	return out
}
