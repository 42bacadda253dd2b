package gitclient

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/FractalWire/git-tools/schema"
)

// headerPrefix starts every commit header line; numstat lines never start with it.
const headerPrefix = "--"

// fieldSep separates the header fields, rendered by git from %x1f.
const fieldSep = "\x1f"

// parseLog processes `git log --numstat` output produced with logFormat.
// Commits keep the order of the log (newest first).
func parseLog(out []byte) ([]schema.CommitRecord, error) {
	var commits []schema.CommitRecord
	var current *schema.CommitRecord

	for l := range strings.SplitSeq(string(out), "\n") {
		l = strings.TrimRight(l, "\r")

		if strings.HasPrefix(l, headerPrefix) {
			record, err := parseCommitHeader(l)
			if err != nil {
				return nil, err
			}
			commits = append(commits, record)
			current = &commits[len(commits)-1]
			continue
		}
		if strings.TrimSpace(l) == "" {
			continue // Skip blank lines
		}
		if current == nil {
			return nil, fmt.Errorf("file stats line before any commit header: %q", l)
		}

		change, ok := parseFileStatsLine(l)
		if !ok {
			continue
		}
		current.FileChanges = append(current.FileChanges, change)
	}
	return commits, nil
}

// parseCommitHeader extracts the commit fields from a header line.
func parseCommitHeader(line string) (schema.CommitRecord, error) {
	parts := strings.SplitN(line[len(headerPrefix):], fieldSep, 6) // hash, parents, email, name, date, subject
	if len(parts) != 6 || parts[0] == "" {
		return schema.CommitRecord{}, fmt.Errorf("malformed commit header: %q", line)
	}
	date, err := time.Parse(time.RFC3339, parts[4])
	if err != nil {
		return schema.CommitRecord{}, fmt.Errorf("malformed commit date in %q: %w", line, err)
	}
	return schema.CommitRecord{
		ID:          parts[0],
		ParentCount: len(strings.Fields(parts[1])),
		AuthorEmail: parts[2],
		AuthorName:  parts[3],
		Timestamp:   date.UTC(),
		Message:     parts[5],
	}, nil
}

// parseFileStatsLine parses a numstat line. Binary entries ("-\t-\tpath") are skipped,
// renames are attributed to their new path.
func parseFileStatsLine(line string) (schema.FileChange, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 3 {
		return schema.FileChange{}, false
	}

	addStr, delStr, path := parts[0], parts[1], parts[2]
	if addStr == "-" && delStr == "-" {
		return schema.FileChange{}, false
	}

	if strings.Contains(path, " => ") {
		_, newPath := parseRenamePath(path)
		if newPath == "" {
			return schema.FileChange{}, false
		}
		path = newPath
	}

	return schema.FileChange{
		Path:         path,
		LinesAdded:   parseChurnValue(addStr),
		LinesDeleted: parseChurnValue(delStr),
	}, true
}

// parseChurnValue converts a churn string to int, handling "-" as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}

// parseRenamePath extracts old and new paths from a rename string.
func parseRenamePath(path string) (string, string) {
	if !strings.Contains(path, "{") {
		// Simple format: "old => new"
		parts := strings.SplitN(path, " => ", 2)
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
		return "", ""
	}

	// Braced format: prefix{old => new}suffix
	braceStart := strings.Index(path, "{")
	braceEnd := strings.Index(path, "}")
	if braceStart == -1 || braceEnd == -1 || braceStart >= braceEnd {
		return "", ""
	}

	prefix := path[:braceStart]
	renamePart := path[braceStart+1 : braceEnd]
	suffix := path[braceEnd+1:]

	renameParts := strings.SplitN(renamePart, " => ", 2)
	if len(renameParts) != 2 {
		return "", ""
	}
	// An empty side ("a/{ => b}/c") leaves a doubled separator behind
	oldPath := strings.ReplaceAll(prefix+renameParts[0]+suffix, "//", "/")
	newPath := strings.ReplaceAll(prefix+renameParts[1]+suffix, "//", "/")
	return oldPath, newPath
}
