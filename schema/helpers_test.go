package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"popcorn", "popcorn"},
		{"Samuel Huang", "Samuel H"},
		{"  John   Doe ", "John D"},
		{"Ada King Lovelace", "Ada L"},
		{"Ava (Billy) Cathy", "Ava C"},
		{"Anne-Marie O'Neill", "Anne-Marie O"},
		{"J. R. R. Tolkien", "J T"},
		{"[John Smith]", "John S"},
		{"dependabot[bot]", "dependabot[bot]"},
		{"github-actions [bot]", "github-actions [bot]"},
		{"Hans Müller", "Hans M"},
		{"राम कुमार", "राम क"},
		{"山田太郎", "山田太郎"},
		{"***", "***"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AbbreviateName(tt.name))
		})
	}
}

func TestFormatAuthors(t *testing.T) {
	authors := []AuthorStats{
		{Name: "Samuel Huang", Email: "samuel@example.com"},
		{Name: "", Email: "ci-runner@example.com"},
		{Name: "dependabot[bot]", Email: "bot@example.com"},
	}
	assert.Equal(t, "Samuel H, ci-runner, dependabot[bot]", FormatAuthors(authors))
	assert.Empty(t, FormatAuthors(nil))
}
