package schema

import (
	"strings"
	"unicode"
)

// trimName strips punctuation around a name part, keeping '-' and '\''.
func trimName(part string) string {
	return strings.TrimFunc(part, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\''
	})
}

// AbbreviateName shortens "Samuel Huang" to "Samuel H".
// Single-word names and bot accounts are returned unchanged.
func AbbreviateName(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "[bot]") {
		return strings.Join(strings.Fields(name), " ")
	}

	var parts []string
	for _, f := range strings.Fields(name) {
		if p := trimName(f); p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return name
	case 1:
		return parts[0]
	}
	last := []rune(parts[len(parts)-1])
	return parts[0] + " " + string(last[0])
}

// ShortName is the display name of an author: the abbreviated name,
// or the local part of the email when the name is empty.
func (a AuthorStats) ShortName() string {
	if strings.TrimSpace(a.Name) != "" {
		return AbbreviateName(a.Name)
	}
	local, _, _ := strings.Cut(a.Email, "@")
	return local
}

// FormatAuthors joins the display names of the authors, as in "Samuel H, Jane D".
func FormatAuthors(authors []AuthorStats) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.ShortName())
	}
	return strings.Join(names, ", ")
}
