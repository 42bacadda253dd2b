package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/FractalWire/git-tools/internal/parquet"
	"github.com/FractalWire/git-tools/schema"
)

// writeCSVCommits writes one row per filtered commit, newest first.
func writeCSVCommits(w io.Writer, commits []schema.CommitStat, intFmt string) error {
	header := []string{
		"commit",
		"date",
		"author_email",
		"category",
		"lines_added",
		"lines_deleted",
		"subject",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range commits {
			row := []string{
				c.ID,
				c.Timestamp.UTC().Format(time.RFC3339),
				c.AuthorEmail,
				string(c.Category),
				fmt.Sprintf(intFmt, c.LinesAdded),
				fmt.Sprintf(intFmt, c.LinesDeleted),
				c.Subject,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeParquetSummary exports the commits and directory buckets next to the base path.
func writeParquetSummary(s *schema.Summary, outputFile string) error {
	commitsFile := outputFile + parquet.CommitsSuffix
	if err := parquet.WriteCommitsParquet(parquet.ConvertCommits(s.Commits), commitsFile); err != nil {
		return fmt.Errorf("failed to write commits: %w", err)
	}
	fmt.Fprintf(os.Stderr, "💾 Exported %d commits to %s\n", len(s.Commits), commitsFile)

	dirsFile := outputFile + parquet.DirectoriesSuffix
	if err := parquet.WriteDirectoriesParquet(parquet.ConvertDirectories(s.Directories, s.DirLevel), dirsFile); err != nil {
		return fmt.Errorf("failed to write directories: %w", err)
	}
	fmt.Fprintf(os.Stderr, "💾 Exported %d directories to %s\n", len(s.Directories), dirsFile)
	return nil
}
