package core

import (
	"strings"

	"github.com/FractalWire/git-tools/schema"
)

type rule struct {
	category schema.Category
	keywords []string
}

// rules is evaluated top to bottom; the first rule with a keyword contained
// in the lower-cased subject wins.
var rules = []rule{
	{schema.FixCategory, []string{"fix", "bug", "patch", "resolve"}},
	{schema.FeatureCategory, []string{"feat", "add", "implement", "new"}},
	{schema.ImprovementCategory, []string{"improve", "enhance", "optimiz", "perf", "speed up"}},
	{schema.RefactorCategory, []string{"refactor", "restructure", "cleanup"}},
	{schema.DocsCategory, []string{"doc", "readme", "comment"}},
	{schema.ChoreCategory, []string{"chore", "build", "ci", "deps", "bump"}},
}

// Classify maps a commit subject to exactly one category.
func Classify(subject string) schema.Category {
	s := strings.ToLower(subject)
	if strings.TrimSpace(s) == "" {
		return schema.OtherCategory
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(s, kw) {
				return r.category
			}
		}
	}
	return schema.OtherCategory
}

// ClassifyCommit classifies a commit by its subject line.
func ClassifyCommit(c schema.CommitRecord) schema.Category {
	return Classify(c.Subject())
}
