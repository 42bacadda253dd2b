package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/FractalWire/git-tools/core/algo"
	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// maxLanguages caps the language table of the text report.
const maxLanguages = 8

// PrintSummary outputs a history summary, dispatching based on the output format configured.
func PrintSummary(summary *schema.Summary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVCommits(w, summary.Commits, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetSummary(summary, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printSummaryText(w, summary, cfg, fmtFloat, intFmt, duration)
		}, "Wrote text"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// sectionTitle renders a section title, with its emoji when enabled.
func sectionTitle(cfg *contract.Config, emoji, title string) string {
	if cfg.UseEmojis {
		title = emoji + " " + title
	}
	return contract.HeaderColor.Sprint(title)
}

// newTable creates a right-aligned table writing to w.
func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

func renderTable(table *tablewriter.Table, data [][]string) error {
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// printSummaryText prints the human-readable report.
func printSummaryText(w io.Writer, s *schema.Summary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	fmt.Fprintf(w, "%s %s commits, %s\n",
		contract.TitleColor.Sprint("Total:"),
		fmt.Sprintf(intFmt, s.TotalCommits),
		contract.FormatDelta(s.TotalLinesAdded, s.TotalLinesDeleted))
	if s.Frequency != nil {
		fmt.Fprintf(w, "%s %.1f commits per %s\n", contract.TitleColor.Sprint("Frequency:"), s.Frequency.Value, s.Frequency.Period)
	}
	if len(s.Authors) > 0 {
		fmt.Fprintf(w, "%s %s\n", contract.TitleColor.Sprint("Authors:"), schema.FormatAuthors(s.Authors))
	}

	if err := printCategoryTable(w, s, cfg, fmtFloat, intFmt); err != nil {
		return err
	}
	if err := printDirectoryTable(w, s, cfg, intFmt); err != nil {
		return err
	}
	if err := printLanguageTable(w, s, cfg, intFmt); err != nil {
		return err
	}
	if err := printTopCommits(w, s, cfg, intFmt); err != nil {
		return err
	}
	printRecentActivity(w, s, cfg)
	printEstimate(w, s.Estimate, cfg, fmtFloat)

	fmt.Fprintf(w, "\nSummary completed in %v\n", duration)
	return nil
}

func printCategoryTable(w io.Writer, s *schema.Summary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	fmt.Fprintf(w, "\n%s\n", sectionTitle(cfg, "🏷️ ", "Categories"))
	table := newTable(w, "Category", "Commits", "Share %", "Added", "Deleted")

	var data [][]string
	for _, cat := range schema.AllCategories {
		stats := s.Categories[cat]
		share := 0.0
		if s.TotalCommits > 0 {
			share = 100 * float64(stats.CommitCount) / float64(s.TotalCommits)
		}
		data = append(data, []string{
			contract.AccentColor.Sprint(string(cat)),
			fmt.Sprintf(intFmt, stats.CommitCount),
			fmtFloat(share),
			fmt.Sprintf(intFmt, stats.LinesAdded),
			fmt.Sprintf(intFmt, stats.LinesDeleted),
		})
	}
	return renderTable(table, data)
}

func printDirectoryTable(w io.Writer, s *schema.Summary, cfg *contract.Config, intFmt string) error {
	ranked := algo.RankDirectories(s.Directories, cfg.DirLimit)
	fmt.Fprintf(w, "\n%s\n", sectionTitle(cfg, "📂", fmt.Sprintf("Directories (level %d, %d of %d)", s.DirLevel, len(ranked), len(s.Directories))))
	if len(ranked) == 0 {
		fmt.Fprintln(w, "No file changes.")
		return nil
	}

	table := newTable(w, "Rank", "Path", "Commits", "Files", "Added", "Deleted")
	maxWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, d := range ranked {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(d.Path, maxWidth),
			fmt.Sprintf(intFmt, d.CommitCount),
			fmt.Sprintf(intFmt, d.Files),
			fmt.Sprintf(intFmt, d.LinesAdded),
			fmt.Sprintf(intFmt, d.LinesDeleted),
		})
	}
	return renderTable(table, data)
}

func printLanguageTable(w io.Writer, s *schema.Summary, cfg *contract.Config, intFmt string) error {
	ranked := algo.RankLanguages(s.Languages, maxLanguages)
	if len(ranked) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\n%s\n", sectionTitle(cfg, "🧬", "Languages"))

	table := newTable(w, "Language", "Files", "Added", "Deleted")
	var data [][]string
	for _, l := range ranked {
		data = append(data, []string{
			l.Language,
			fmt.Sprintf(intFmt, l.Files),
			fmt.Sprintf(intFmt, l.LinesAdded),
			fmt.Sprintf(intFmt, l.LinesDeleted),
		})
	}
	return renderTable(table, data)
}

func printTopCommits(w io.Writer, s *schema.Summary, cfg *contract.Config, intFmt string) error {
	fmt.Fprintf(w, "\n%s\n", sectionTitle(cfg, "🏆", fmt.Sprintf("Top %d commits by lines changed", len(s.TopCommits))))
	if len(s.TopCommits) == 0 {
		fmt.Fprintln(w, "No commits.")
		return nil
	}

	table := newTable(w, "Rank", "Commit", "Date", "Category", "Subject", "Changed")
	maxWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, c := range s.TopCommits {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.AccentColor.Sprint(c.ShortID()),
			c.Timestamp.Format(contract.DateFormat),
			string(c.Category),
			truncateText(c.Subject, maxWidth),
			fmt.Sprintf(intFmt, c.LinesChanged()),
		})
	}
	return renderTable(table, data)
}

func printRecentActivity(w io.Writer, s *schema.Summary, cfg *contract.Config) {
	fmt.Fprintf(w, "\n%s\n", sectionTitle(cfg, "🗓️ ", "Recent activity"))
	if len(s.RecentActivity) == 0 {
		fmt.Fprintln(w, "No recent activity.")
		return
	}
	for _, day := range s.RecentActivity {
		fmt.Fprintf(w, "%s  %d commit(s)\n", contract.DateColor.Sprint(day.Date), day.CommitCount)
		for _, c := range day.Commits {
			fmt.Fprintf(w, "  %s %s %s\n",
				contract.AccentColor.Sprint(c.ShortID()),
				c.Subject,
				contract.FormatDelta(c.LinesAdded, c.LinesDeleted))
		}
	}
}

func printEstimate(w io.Writer, e schema.CocomoEstimate, cfg *contract.Config, fmtFloat func(float64) string) {
	fmt.Fprintf(w, "\n%s\n", sectionTitle(cfg, "💰", fmt.Sprintf("COCOMO estimate (%s)", e.Mode)))
	fmt.Fprintf(w, "  Size:            %s KLOC\n", fmtFloat(e.KLOC))
	fmt.Fprintf(w, "  Effort:          %s person-months\n", fmtFloat(e.PersonMonths))
	fmt.Fprintf(w, "  Schedule:        %s months\n", fmtFloat(e.CalendarMonths))
	fmt.Fprintf(w, "  Average people:  %s\n", fmtFloat(e.AveragePeople))
	fmt.Fprintf(w, "  Estimated cost:  %s (salary %s/year)\n", fmtFloat(e.EstimatedCost), fmtFloat(e.Salary))
}

// truncateText shortens free text to maxWidth runes with a trailing ellipsis.
func truncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
