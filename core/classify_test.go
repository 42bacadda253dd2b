package core

import (
	"testing"

	"github.com/FractalWire/git-tools/schema"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		subject  string
		expected schema.Category
	}{
		{"Fix login bug", schema.FixCategory},
		{"Add export", schema.FeatureCategory},
		{"Update README docs", schema.DocsCategory},
		{"", schema.OtherCategory},
		{"   ", schema.OtherCategory},
		{"Bump version", schema.ChoreCategory},
		{"Refactor parser", schema.RefactorCategory},
		{"Improve startup time", schema.ImprovementCategory},
		{"Optimize queries", schema.ImprovementCategory},
		{"feat: dark mode", schema.FeatureCategory},
		{"Release 1.2", schema.OtherCategory},
		{"WIP", schema.OtherCategory},

		// fix wins over every later rule
		{"Add fix for crash", schema.FixCategory},
		{"Refactor and patch config", schema.FixCategory},
		// feature wins over docs
		{"Add docs page", schema.FeatureCategory},
		// keywords match as substrings
		{"Prefix handling", schema.FixCategory},
		{"Resolved merge conflicts", schema.FixCategory},
		{"CI pipeline", schema.ChoreCategory},
		{"Merge branch 'feature'", schema.FeatureCategory},
		{"Merge pull request #3", schema.OtherCategory},
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.subject))
		})
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Classify("fix typo"), Classify("FIX TYPO"))
	assert.Equal(t, schema.DocsCategory, Classify("README"))
}

func TestClassifyCommitUsesSubjectLine(t *testing.T) {
	c := schema.CommitRecord{Message: "Update changelog\n\nfix the release notes"}
	assert.Equal(t, schema.OtherCategory, ClassifyCommit(c))

	c.Message = "Document the API\n\nlong body"
	assert.Equal(t, schema.DocsCategory, ClassifyCommit(c))
}

func TestClassifyAlwaysReturnsKnownCategory(t *testing.T) {
	subjects := []string{"x", "chore", "Merge branch 'main'", "🚀 launch", "Revert \"Add thing\""}
	for _, s := range subjects {
		assert.Contains(t, schema.AllCategories, Classify(s), s)
	}
}
