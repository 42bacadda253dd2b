package schema

import "time"

// CategoryStats holds the commit and line totals of one category.
type CategoryStats struct {
	CommitCount  int `json:"commit_count"`
	LinesAdded   int `json:"lines_added"`
	LinesDeleted int `json:"lines_deleted"`
}

// DirectoryBucket aggregates the changes under one truncated path prefix.
type DirectoryBucket struct {
	Path         string `json:"path"`
	CommitCount  int    `json:"commit_count"` // Distinct commits touching the bucket
	Files        int    `json:"files"`        // Distinct file paths touched under the bucket
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
}

// Impact is the total number of lines changed under the bucket.
func (d DirectoryBucket) Impact() int {
	return d.LinesAdded + d.LinesDeleted
}

// CommitStat is the report view of a single commit.
type CommitStat struct {
	ID           string    `json:"id"`
	Subject      string    `json:"subject"`
	AuthorEmail  string    `json:"author_email"`
	Timestamp    time.Time `json:"timestamp"`
	Category     Category  `json:"category"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
}

// LinesChanged is the sum of added and deleted lines.
func (c CommitStat) LinesChanged() int {
	return c.LinesAdded + c.LinesDeleted
}

// ShortID returns the abbreviated commit hash.
func (c CommitStat) ShortID() string {
	if len(c.ID) > ShortIDLength {
		return c.ID[:ShortIDLength]
	}
	return c.ID
}

// DailyActivity is the activity of one calendar day (UTC).
type DailyActivity struct {
	Date        string       `json:"date"` // YYYY-MM-DD
	CommitCount int          `json:"commit_count"`
	Commits     []CommitStat `json:"commits"`
}

// AuthorStats holds the totals of one author email.
type AuthorStats struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	CommitCount  int    `json:"commit_count"`
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
}

// LanguageStats holds the line totals of one detected language.
type LanguageStats struct {
	Language     string `json:"language"`
	Files        int    `json:"files"`
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
}

// CommitFrequency expresses commit volume over the most readable period.
type CommitFrequency struct {
	Period FrequencyPeriod `json:"period"`
	Value  float64         `json:"value"`
}

// CocomoEstimate is the Basic COCOMO (organic) result.
type CocomoEstimate struct {
	Mode           EstimateMode `json:"mode"`
	Salary         float64      `json:"salary"`
	KLOC           float64      `json:"kloc"`
	PersonMonths   float64      `json:"person_months"`
	CalendarMonths float64      `json:"calendar_months"`
	AveragePeople  float64      `json:"average_people"`
	EstimatedCost  float64      `json:"estimated_cost"`
	SizeHistory    []float64    `json:"size_history,omitempty"` // Running KLOC after each commit (incremental only)
}

// Summary is the single immutable result handed to the reporter.
type Summary struct {
	RepoPath          string                     `json:"repo_path"`
	DirLevel          int                        `json:"dir_level"`
	TotalCommits      int                        `json:"total_commits"`
	TotalLinesAdded   int                        `json:"total_lines_added"`
	TotalLinesDeleted int                        `json:"total_lines_deleted"`
	Frequency         *CommitFrequency           `json:"frequency,omitempty"`
	Authors           []AuthorStats              `json:"authors"`
	Categories        map[Category]CategoryStats `json:"categories"`
	Directories       map[string]DirectoryBucket `json:"directories"`
	Languages         map[string]LanguageStats   `json:"languages"`
	TopCommits        []CommitStat               `json:"top_commits"`
	RecentActivity    []DailyActivity            `json:"recent_activity"`
	Estimate          CocomoEstimate             `json:"estimate"`
	Commits           []CommitStat               `json:"-"` // Every filtered commit, newest first (tabular exports)
}

// EstimateReport holds both COCOMO variants computed over the same commits.
type EstimateReport struct {
	RepoPath     string         `json:"repo_path"`
	TotalCommits int            `json:"total_commits"`
	LinesAdded   int            `json:"lines_added"`
	LinesDeleted int            `json:"lines_deleted"`
	Pure         CocomoEstimate `json:"pure"`
	Incremental  CocomoEstimate `json:"incremental"`
}
