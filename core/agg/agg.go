// Package agg has the single-pass aggregation of commit history into summary statistics.
package agg

import (
	"math"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
	"github.com/src-d/enry/v2"
)

const (
	// RecentDays is the number of distinct calendar dates listed as recent activity.
	RecentDays = 5

	// UnknownLanguage is the language key for files enry cannot identify.
	UnknownLanguage = "Unknown"

	daysPerWeek  = 7.0
	daysPerMonth = 30.44
)

// Classifier assigns a category to a commit.
type Classifier func(schema.CommitRecord) schema.Category

// Options controls the aggregation.
type Options struct {
	DirLevel   int     // directory bucket depth, at least 1
	Top        int     // number of heaviest commits kept
	WindowDays float64 // length of the time window; 0 derives it from the commit span
}

// Aggregate walks the filtered commits once and fills every statistic of the summary
// except the estimate. The commit slice is expected newest first.
func Aggregate(commits []schema.CommitRecord, classify Classifier, opts Options) *schema.Summary {
	summary := &schema.Summary{
		DirLevel:    opts.DirLevel,
		Categories:  NewCategoryStats(),
		Directories: make(map[string]schema.DirectoryBucket),
		Languages:   make(map[string]schema.LanguageStats),
	}

	authors := make(map[string]*schema.AuthorStats)
	dirFiles := make(map[string]map[string]struct{})
	langFiles := make(map[string]map[string]struct{})
	days := make(map[string]*schema.DailyActivity)
	stats := make([]schema.CommitStat, 0, len(commits))

	for _, c := range commits {
		added, deleted := c.LinesAdded(), c.LinesDeleted()
		category := classify(c)

		summary.TotalCommits++
		summary.TotalLinesAdded += added
		summary.TotalLinesDeleted += deleted

		cs := summary.Categories[category]
		cs.CommitCount++
		cs.LinesAdded += added
		cs.LinesDeleted += deleted
		summary.Categories[category] = cs

		aggregateAuthor(authors, c, added, deleted)
		aggregateChanges(summary, dirFiles, langFiles, c, opts.DirLevel)

		stat := schema.CommitStat{
			ID:           c.ID,
			Subject:      c.Subject(),
			AuthorEmail:  c.AuthorEmail,
			Timestamp:    c.Timestamp,
			Category:     category,
			LinesAdded:   added,
			LinesDeleted: deleted,
		}
		stats = append(stats, stat)

		date := c.Timestamp.UTC().Format(contract.DateFormat)
		day, ok := days[date]
		if !ok {
			day = &schema.DailyActivity{Date: date}
			days[date] = day
		}
		day.CommitCount++
		day.Commits = append(day.Commits, stat)
	}

	for key, files := range dirFiles {
		bucket := summary.Directories[key]
		bucket.Files = len(files)
		summary.Directories[key] = bucket
	}
	for key, files := range langFiles {
		lang := summary.Languages[key]
		lang.Files = len(files)
		summary.Languages[key] = lang
	}

	summary.Commits = stats
	summary.Authors = sortAuthors(authors)
	summary.TopCommits = TopCommits(stats, opts.Top)
	summary.RecentActivity = recentActivity(days, RecentDays)
	summary.Frequency = Frequency(commits, opts.WindowDays)
	return summary
}

// NewCategoryStats returns zeroed stats for every category.
func NewCategoryStats() map[schema.Category]schema.CategoryStats {
	stats := make(map[schema.Category]schema.CategoryStats, len(schema.AllCategories))
	for _, c := range schema.AllCategories {
		stats[c] = schema.CategoryStats{}
	}
	return stats
}

// TruncatePath keeps the first depth segments of a slash-separated path.
// A path with fewer segments maps to itself.
func TruncatePath(p string, depth int) string {
	if depth < 1 {
		depth = 1
	}
	parts := strings.Split(p, "/")
	if len(parts) > depth {
		return strings.Join(parts[:depth], "/")
	}
	return p
}

// Language returns the language enry detects from the file name alone.
func Language(p string) string {
	base := path.Base(p)
	if lang, _ := enry.GetLanguageByFilename(base); lang != "" {
		return lang
	}
	if lang, _ := enry.GetLanguageByExtension(base); lang != "" {
		return lang
	}
	return UnknownLanguage
}

func aggregateAuthor(authors map[string]*schema.AuthorStats, c schema.CommitRecord, added, deleted int) {
	key := strings.ToLower(c.AuthorEmail)
	a, ok := authors[key]
	if !ok {
		// commits arrive newest first, so the name is the most recent one
		a = &schema.AuthorStats{Email: key, Name: c.AuthorName}
		authors[key] = a
	}
	a.CommitCount++
	a.LinesAdded += added
	a.LinesDeleted += deleted
}

// aggregateChanges adds the file changes of one commit to the directory and language maps.
// A commit counts once per bucket however many of its files fall in it.
func aggregateChanges(summary *schema.Summary, dirFiles, langFiles map[string]map[string]struct{}, c schema.CommitRecord, dirLevel int) {
	touched := make(map[string]struct{})
	for _, fc := range c.FileChanges {
		if fc.Path == "" {
			continue
		}
		key := TruncatePath(fc.Path, dirLevel)
		bucket := summary.Directories[key]
		bucket.Path = key
		bucket.LinesAdded += fc.LinesAdded
		bucket.LinesDeleted += fc.LinesDeleted
		if _, seen := touched[key]; !seen {
			touched[key] = struct{}{}
			bucket.CommitCount++
		}
		summary.Directories[key] = bucket
		addFile(dirFiles, key, fc.Path)

		langKey := Language(fc.Path)
		lang := summary.Languages[langKey]
		lang.Language = langKey
		lang.LinesAdded += fc.LinesAdded
		lang.LinesDeleted += fc.LinesDeleted
		summary.Languages[langKey] = lang
		addFile(langFiles, langKey, fc.Path)
	}
}

func addFile(index map[string]map[string]struct{}, key, file string) {
	files, ok := index[key]
	if !ok {
		files = make(map[string]struct{})
		index[key] = files
	}
	files[file] = struct{}{}
}

func sortAuthors(authors map[string]*schema.AuthorStats) []schema.AuthorStats {
	out := make([]schema.AuthorStats, 0, len(authors))
	for _, a := range authors {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CommitCount != out[j].CommitCount {
			return out[i].CommitCount > out[j].CommitCount
		}
		return out[i].Email < out[j].Email
	})
	return out
}

// TopCommits returns the n commits with the most lines changed, largest first.
// Ties go to the newer commit.
func TopCommits(stats []schema.CommitStat, n int) []schema.CommitStat {
	sorted := make([]schema.CommitStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].LinesChanged() != sorted[j].LinesChanged() {
			return sorted[i].LinesChanged() > sorted[j].LinesChanged()
		}
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// recentActivity keeps the n most recent dates, newest first.
func recentActivity(days map[string]*schema.DailyActivity, n int) []schema.DailyActivity {
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	// YYYY-MM-DD sorts chronologically as a string
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > n {
		dates = dates[:n]
	}
	out := make([]schema.DailyActivity, 0, len(dates))
	for _, date := range dates {
		out = append(out, *days[date])
	}
	return out
}

// Frequency expresses the commit rate per day, week or month, picking the first period
// in which at least one commit happens on average. Without a window the span between the
// oldest and newest commit dates (inclusive) is used. It returns nil when there is nothing to measure.
func Frequency(commits []schema.CommitRecord, windowDays float64) *schema.CommitFrequency {
	if len(commits) == 0 {
		return nil
	}
	totalDays := windowDays
	if totalDays <= 0 {
		totalDays = spanDays(commits)
	}
	if totalDays <= 0 {
		return nil
	}

	perDay := float64(len(commits)) / totalDays
	switch {
	case perDay >= 1:
		return &schema.CommitFrequency{Period: schema.PerDay, Value: round1(perDay)}
	case perDay*daysPerWeek >= 1:
		return &schema.CommitFrequency{Period: schema.PerWeek, Value: round1(perDay * daysPerWeek)}
	default:
		return &schema.CommitFrequency{Period: schema.PerMonth, Value: round1(perDay * daysPerMonth)}
	}
}

// spanDays counts the calendar days from the oldest to the newest commit, both included.
func spanDays(commits []schema.CommitRecord) float64 {
	oldest, newest := commits[0].Timestamp.UTC(), commits[0].Timestamp.UTC()
	for _, c := range commits[1:] {
		ts := c.Timestamp.UTC()
		if ts.Before(oldest) {
			oldest = ts
		}
		if ts.After(newest) {
			newest = ts
		}
	}
	first := oldest.Truncate(24 * time.Hour)
	last := newest.Truncate(24 * time.Hour)
	return last.Sub(first).Hours()/24 + 1
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
