// Package schema has the models shared by every stage of git-summary.
package schema

import (
	"strings"
	"time"
)

// ShortIDLength is the number of hash characters shown in reports.
const ShortIDLength = 7

// FileChange is the numstat entry of one file in a commit.
type FileChange struct {
	Path         string `json:"path"`
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
}

// CommitRecord is one commit as produced by the extractor.
// Records are immutable once extracted and are never persisted.
type CommitRecord struct {
	ID          string       `json:"id"`
	AuthorName  string       `json:"author_name"`
	AuthorEmail string       `json:"author_email"`
	Timestamp   time.Time    `json:"timestamp"` // UTC
	Message     string       `json:"message"`
	ParentCount int          `json:"parent_count"`
	FileChanges []FileChange `json:"file_changes"`
}

// LogFilter is the scope handed to the extractor.
type LogFilter struct {
	BranchRef    string   // Only commits reachable from HEAD but not from this ref
	AuthorEmails []string // Only commits authored by one of these emails (empty = all)
}

// Subject returns the first line of the commit message.
func (c CommitRecord) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// ShortID returns the abbreviated commit hash.
func (c CommitRecord) ShortID() string {
	if len(c.ID) > ShortIDLength {
		return c.ID[:ShortIDLength]
	}
	return c.ID
}

// LinesAdded sums the added lines over all file changes.
func (c CommitRecord) LinesAdded() int {
	total := 0
	for _, fc := range c.FileChanges {
		total += fc.LinesAdded
	}
	return total
}

// LinesDeleted sums the deleted lines over all file changes.
func (c CommitRecord) LinesDeleted() int {
	total := 0
	for _, fc := range c.FileChanges {
		total += fc.LinesDeleted
	}
	return total
}

// LinesChanged is the sum of added and deleted lines.
func (c CommitRecord) LinesChanged() int {
	return c.LinesAdded() + c.LinesDeleted()
}

// IsMerge reports whether the commit looks like a merge.
func (c CommitRecord) IsMerge() bool {
	return c.ParentCount > 1 || strings.HasPrefix(c.Subject(), "Merge branch")
}
