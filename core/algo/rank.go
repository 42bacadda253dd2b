package algo

import (
	"sort"

	"github.com/FractalWire/git-tools/schema"
)

// RankDirectories returns the buckets ordered by impact, highest first.
// Ties fall back to commit count and then path so the order is stable.
// A limit of zero or less returns every bucket.
func RankDirectories(buckets map[string]schema.DirectoryBucket, limit int) []schema.DirectoryBucket {
	ranked := make([]schema.DirectoryBucket, 0, len(buckets))
	for _, b := range buckets {
		ranked = append(ranked, b)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Impact() != ranked[j].Impact() {
			return ranked[i].Impact() > ranked[j].Impact()
		}
		if ranked[i].CommitCount != ranked[j].CommitCount {
			return ranked[i].CommitCount > ranked[j].CommitCount
		}
		return ranked[i].Path < ranked[j].Path
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RankLanguages returns the languages ordered by lines changed, highest first.
func RankLanguages(languages map[string]schema.LanguageStats, limit int) []schema.LanguageStats {
	ranked := make([]schema.LanguageStats, 0, len(languages))
	for _, l := range languages {
		ranked = append(ranked, l)
	}
	sort.Slice(ranked, func(i, j int) bool {
		ci := ranked[i].LinesAdded + ranked[i].LinesDeleted
		cj := ranked[j].LinesAdded + ranked[j].LinesDeleted
		if ci != cj {
			return ci > cj
		}
		return ranked[i].Language < ranked[j].Language
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
