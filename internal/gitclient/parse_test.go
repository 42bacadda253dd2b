package gitclient

import (
	_ "embed"
	"testing"
	"time"

	"github.com/FractalWire/git-tools/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/log_numstat.txt
var logNumstat []byte

func TestParseLog(t *testing.T) {
	commits, err := parseLog(logNumstat)
	require.NoError(t, err)
	require.Len(t, commits, 3)

	first := commits[0]
	assert.Equal(t, "a3f9c2e4b1d07a8e6f5c4b3a29180e7d6c5b4a39", first.ID)
	assert.Equal(t, "alice@example.com", first.AuthorEmail)
	assert.Equal(t, "Alice | Martin", first.AuthorName, "separator-like characters stay in the name")
	assert.Equal(t, time.Date(2025, time.March, 14, 15, 20, 5, 0, time.UTC), first.Timestamp)
	assert.Equal(t, "fix: handle empty numstat | pipes in subject", first.Message)
	assert.Equal(t, 1, first.ParentCount)
	assert.Equal(t, []schema.FileChange{
		{Path: "internal/gitclient/parse.go", LinesAdded: 12, LinesDeleted: 3},
		{Path: "core/algo/cocomo.go", LinesAdded: 4, LinesDeleted: 0},
	}, first.FileChanges, "binary entry skipped and rename attributed to the new path")

	merge := commits[1]
	assert.Equal(t, 2, merge.ParentCount)
	assert.True(t, merge.IsMerge())
	assert.Equal(t, 9, merge.LinesChanged())

	empty := commits[2]
	assert.Equal(t, 0, empty.ParentCount)
	assert.Empty(t, empty.FileChanges)
	assert.Equal(t, time.Date(2025, time.March, 13, 1, 30, 0, 0, time.UTC), empty.Timestamp)
}

func TestParseCommitHeaderFreeFormFields(t *testing.T) {
	line := "--eb9c01\x1f\x1fops@example.com\x1fTeam | Ops\x1f2025-06-01T08:00:00Z\x1ffeat: a|b"
	record, err := parseCommitHeader(line)
	require.NoError(t, err)
	assert.Equal(t, "Team | Ops", record.AuthorName)
	assert.Equal(t, "ops@example.com", record.AuthorEmail)
	assert.Equal(t, "feat: a|b", record.Message)
	assert.Equal(t, time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC), record.Timestamp)
}

func TestParseLogEmpty(t *testing.T) {
	commits, err := parseLog(nil)
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestParseLogErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"stats before header", "1\t2\tmain.go\n"},
		{"truncated header", "--abc\x1fdef\n"},
		{"bad date", "--abc\x1f\x1fa@b.c\x1fA\x1fyesterday\x1fsubject\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLog([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseFileStatsLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected schema.FileChange
		ok       bool
	}{
		{"plain", "10\t5\tmain.go", schema.FileChange{Path: "main.go", LinesAdded: 10, LinesDeleted: 5}, true},
		{"binary", "-\t-\timage.png", schema.FileChange{}, false},
		{"too few fields", "10\t5", schema.FileChange{}, false},
		{"simple rename", "1\t1\told.go => new.go", schema.FileChange{Path: "new.go", LinesAdded: 1, LinesDeleted: 1}, true},
		{"braced rename", "0\t0\tsrc/{a => b}/x.go", schema.FileChange{Path: "src/b/x.go"}, true},
		{"negative churn clamps", "-3\t2\tmain.go", schema.FileChange{Path: "main.go", LinesDeleted: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseFileStatsLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseRenamePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOld string
		wantNew string
	}{
		{"simple", "old.go => new.go", "old.go", "new.go"},
		{"braced", "src/{old => new}/file.go", "src/old/file.go", "src/new/file.go"},
		{"braced empty old side", "src/{ => nested}/file.go", "src/file.go", "src/nested/file.go"},
		{"braced empty new side", "src/{nested => }/file.go", "src/nested/file.go", "src/file.go"},
		{"malformed brace", "src/{old => new/file.go", "", ""},
		{"no arrow in braces", "src/{old}/file.go", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOld, gotNew := parseRenamePath(tt.input)
			assert.Equal(t, tt.wantOld, gotOld)
			assert.Equal(t, tt.wantNew, gotNew)
		})
	}
}

func TestParseChurnValue(t *testing.T) {
	assert.Equal(t, 0, parseChurnValue("-"))
	assert.Equal(t, 42, parseChurnValue("42"))
	assert.Equal(t, 0, parseChurnValue("abc"))
	assert.Equal(t, 0, parseChurnValue("-1"))
}

// FuzzParseRenamePath checks that rename parsing never panics.
func FuzzParseRenamePath(f *testing.F) {
	for _, seed := range []string{"a => b", "x/{a => b}/y", "{", "}{", "{ => }"} {
		f.Add(seed)
	}
	f.Fuzz(func(_ *testing.T, input string) {
		_, _ = parseRenamePath(input)
	})
}
