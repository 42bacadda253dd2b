// Package parquet provides data structures and functions for exporting summary
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/FractalWire/git-tools/schema"
	"github.com/parquet-go/parquet-go"
)

// File suffixes appended to the base output path.
const (
	CommitsSuffix     = ".commits.parquet"
	DirectoriesSuffix = ".directories.parquet"
	EstimatesSuffix   = ".estimates.parquet"
)

// CommitRow represents a single filtered commit.
type CommitRow struct {
	// CommitID is the full commit hash
	CommitID string `parquet:"commit_id,snappy"`

	// AuthorEmail is the email of the commit author
	AuthorEmail string `parquet:"author_email,snappy"`

	// CommitTime is the author timestamp in UTC (stored as TIMESTAMP with nanosecond precision)
	CommitTime time.Time `parquet:"commit_time,snappy"`

	// Subject is the first line of the commit message
	Subject string `parquet:"subject,snappy"`

	// Category is the intent assigned by the classifier
	Category string `parquet:"category,dict,snappy"`

	// LinesAdded is the number of lines added by the commit
	LinesAdded int32 `parquet:"lines_added,snappy"`

	// LinesDeleted is the number of lines deleted by the commit
	LinesDeleted int32 `parquet:"lines_deleted,snappy"`
}

// DirectoryRow represents one directory bucket of a summary.
type DirectoryRow struct {
	// Path is the truncated directory prefix
	Path string `parquet:"path,snappy"`

	// DirLevel is the truncation depth used to build the bucket
	DirLevel int32 `parquet:"dir_level,snappy"`

	// CommitCount is the number of distinct commits touching the bucket
	CommitCount int32 `parquet:"commit_count,snappy"`

	// Files is the number of distinct files touched under the bucket
	Files int32 `parquet:"files,snappy"`

	LinesAdded   int32 `parquet:"lines_added,snappy"`
	LinesDeleted int32 `parquet:"lines_deleted,snappy"`
}

// EstimateRow represents one COCOMO estimate.
type EstimateRow struct {
	Mode           string  `parquet:"mode,dict,snappy"`
	Salary         float64 `parquet:"salary,snappy"`
	KLOC           float64 `parquet:"kloc,snappy"`
	PersonMonths   float64 `parquet:"person_months,snappy"`
	CalendarMonths float64 `parquet:"calendar_months,snappy"`
	AveragePeople  float64 `parquet:"average_people,snappy"`
	EstimatedCost  float64 `parquet:"estimated_cost,snappy"`
}

// WriteCommitsParquet writes a slice of CommitRow structs to a Parquet file.
func WriteCommitsParquet(data []CommitRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteDirectoriesParquet writes a slice of DirectoryRow structs to a Parquet file.
func WriteDirectoriesParquet(data []DirectoryRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteEstimatesParquet writes a slice of EstimateRow structs to a Parquet file.
func WriteEstimatesParquet(data []EstimateRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows creates the file and writes every row with a schema inferred from T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertCommits converts schema.CommitStat to CommitRow for Parquet export.
func ConvertCommits(commits []schema.CommitStat) []CommitRow {
	result := make([]CommitRow, len(commits))
	for i, c := range commits {
		result[i] = CommitRow{
			CommitID:     c.ID,
			AuthorEmail:  c.AuthorEmail,
			CommitTime:   c.Timestamp.UTC(),
			Subject:      c.Subject,
			Category:     string(c.Category),
			LinesAdded:   int32(c.LinesAdded),
			LinesDeleted: int32(c.LinesDeleted),
		}
	}
	return result
}

// ConvertDirectories converts the directory buckets of a summary, ordered by path.
func ConvertDirectories(dirs map[string]schema.DirectoryBucket, dirLevel int) []DirectoryRow {
	result := make([]DirectoryRow, 0, len(dirs))
	for _, d := range dirs {
		result = append(result, DirectoryRow{
			Path:         d.Path,
			DirLevel:     int32(dirLevel),
			CommitCount:  int32(d.CommitCount),
			Files:        int32(d.Files),
			LinesAdded:   int32(d.LinesAdded),
			LinesDeleted: int32(d.LinesDeleted),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}

// ConvertEstimates converts COCOMO estimates to EstimateRow for Parquet export.
func ConvertEstimates(estimates ...schema.CocomoEstimate) []EstimateRow {
	result := make([]EstimateRow, len(estimates))
	for i, e := range estimates {
		result[i] = EstimateRow{
			Mode:           string(e.Mode),
			Salary:         e.Salary,
			KLOC:           e.KLOC,
			PersonMonths:   e.PersonMonths,
			CalendarMonths: e.CalendarMonths,
			AveragePeople:  e.AveragePeople,
			EstimatedCost:  e.EstimatedCost,
		}
	}
	return result
}
