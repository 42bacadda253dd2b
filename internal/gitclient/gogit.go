package gitclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
)

// RepoClient implements the GitClient interface in pure Go on top of go-git.
// It needs no git binary but computes diffs itself, which is slower on large histories.
type RepoClient struct {
	// Progress is called after the diff stats of each commit are computed.
	Progress func(done, total int)

	open func(path string) (*git.Repository, error)
}

var _ contract.GitClient = &RepoClient{} // Compile-time check

// NewRepoClient creates a go-git backed client that opens repositories from disk.
func NewRepoClient() *RepoClient {
	return &RepoClient{open: openRepository}
}

func openRepository(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}

func extractionError(err error, msg string) error {
	return fmt.Errorf("%w: %w", contract.ErrExtractionFailure, errors.Wrap(err, msg))
}

// GetRepoRoot implements the GitClient interface.
func (c *RepoClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	repo, err := c.open(contextPath)
	if err != nil {
		return "", extractionError(err, "open repository at "+contextPath)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", extractionError(err, "resolve worktree")
	}
	return wt.Filesystem.Root(), nil
}

// GetUserEmail implements the GitClient interface.
// Local configuration wins over the global one; an unset email yields an empty string.
func (c *RepoClient) GetUserEmail(_ context.Context, repoPath string) (string, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return "", extractionError(err, "open repository at "+repoPath)
	}
	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return "", extractionError(err, "read configuration")
	}
	return strings.TrimSpace(cfg.User.Email), nil
}

// ListAuthorEmails implements the GitClient interface.
func (c *RepoClient) ListAuthorEmails(ctx context.Context, repoPath string) ([]string, error) {
	repo, head, err := c.openHead(repoPath)
	if err != nil || head == nil {
		return nil, err
	}
	iter, err := repo.Log(&git.LogOptions{From: *head})
	if err != nil {
		return nil, extractionError(err, "walk history")
	}
	var emails []string
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		emails = append(emails, commit.Author.Email)
		return nil
	})
	if err != nil {
		return nil, extractionError(err, "walk history")
	}
	return uniqueSorted(emails), nil
}

// ListCommits implements the GitClient interface.
// A branch reference selects the commits reachable from HEAD but not from the reference.
func (c *RepoClient) ListCommits(ctx context.Context, repoPath string, filter schema.LogFilter) ([]schema.CommitRecord, error) {
	repo, head, err := c.openHead(repoPath)
	if err != nil {
		return nil, err
	}

	var excluded map[plumbing.Hash]struct{}
	if filter.BranchRef != "" {
		base, err := repo.ResolveRevision(plumbing.Revision(filter.BranchRef))
		if err != nil {
			return nil, extractionError(err, fmt.Sprintf("unknown reference %q", filter.BranchRef))
		}
		if excluded, err = reachable(repo, *base); err != nil {
			return nil, extractionError(err, "walk "+filter.BranchRef)
		}
	}
	if head == nil {
		return nil, nil
	}

	authors := make(map[string]struct{}, len(filter.AuthorEmails))
	for _, email := range filter.AuthorEmails {
		authors[strings.ToLower(email)] = struct{}{}
	}

	iter, err := repo.Log(&git.LogOptions{From: *head, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, extractionError(err, "walk history")
	}
	var selected []*object.Commit
	err = iter.ForEach(func(commit *object.Commit) error {
		if _, skip := excluded[commit.Hash]; skip {
			return nil
		}
		if len(authors) > 0 {
			if _, ok := authors[strings.ToLower(commit.Author.Email)]; !ok {
				return nil
			}
		}
		selected = append(selected, commit)
		return nil
	})
	if err != nil {
		return nil, extractionError(err, "walk history")
	}

	records := make([]schema.CommitRecord, 0, len(selected))
	for i, commit := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := toRecord(ctx, commit)
		if err != nil {
			return nil, extractionError(err, "diff "+commit.Hash.String())
		}
		records = append(records, record)
		if c.Progress != nil {
			c.Progress(i+1, len(selected))
		}
	}
	contract.Logger.WithField("commits", len(records)).Debug("walked history with go-git")
	return records, nil
}

// openHead opens the repository and resolves HEAD. A nil hash means the history is empty.
func (c *RepoClient) openHead(repoPath string) (*git.Repository, *plumbing.Hash, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return nil, nil, extractionError(err, "open repository at "+repoPath)
	}
	ref, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return repo, nil, nil
	} else if err != nil {
		return nil, nil, extractionError(err, "resolve HEAD")
	}
	hash := ref.Hash()
	return repo, &hash, nil
}

// reachable returns every commit hash reachable from the given commit.
func reachable(repo *git.Repository, from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, err
	}
	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(commit *object.Commit) error {
		seen[commit.Hash] = struct{}{}
		return nil
	})
	return seen, err
}

// toRecord converts a go-git commit, computing its file changes against the first parent.
func toRecord(ctx context.Context, commit *object.Commit) (schema.CommitRecord, error) {
	changes, err := firstParentChanges(ctx, commit)
	if err != nil {
		return schema.CommitRecord{}, err
	}
	return schema.CommitRecord{
		ID:          commit.Hash.String(),
		AuthorName:  commit.Author.Name,
		AuthorEmail: commit.Author.Email,
		Timestamp:   commit.Author.When.UTC(),
		Message:     commit.Message,
		ParentCount: commit.NumParents(),
		FileChanges: changes,
	}, nil
}

// firstParentChanges diffs the commit tree against its first parent, or the empty tree
// for a root commit. Renames are attributed to the new path and binary files are skipped,
// as git log --numstat does.
func firstParentChanges(ctx context.Context, commit *object.Commit) ([]schema.FileChange, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, errors.Wrap(err, "read tree")
	}
	parentTree := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, errors.Wrap(err, "read first parent")
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, errors.Wrap(err, "read parent tree")
		}
	}

	treeChanges, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, errors.Wrap(err, "diff trees")
	}
	patch, err := treeChanges.PatchContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "compute patch")
	}

	var changes []schema.FileChange
	for _, fp := range patch.FilePatches() {
		if fp.IsBinary() {
			continue
		}
		from, to := fp.Files()
		var change schema.FileChange
		switch {
		case to != nil:
			change.Path = to.Path()
		case from != nil:
			change.Path = from.Path()
		default:
			continue
		}
		for _, chunk := range fp.Chunks() {
			switch chunk.Type() {
			case diff.Add:
				change.LinesAdded += countLines(chunk.Content())
			case diff.Delete:
				change.LinesDeleted += countLines(chunk.Content())
			}
		}
		changes = append(changes, change)
	}
	return changes, nil
}

// countLines counts the lines of a chunk, the last one possibly without a newline.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
