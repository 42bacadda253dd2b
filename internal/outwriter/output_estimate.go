package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/internal/parquet"
	"github.com/FractalWire/git-tools/schema"
)

// PrintEstimate outputs both COCOMO estimates, dispatching based on the output format configured.
func PrintEstimate(report *schema.EstimateReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVEstimates(w, fmtFloat, report.Pure, report.Incremental)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		estimatesFile := cfg.OutputFile + parquet.EstimatesSuffix
		if err := parquet.WriteEstimatesParquet(parquet.ConvertEstimates(report.Pure, report.Incremental), estimatesFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Exported estimates to %s\n", estimatesFile)
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printEstimateText(w, report, cfg, fmtFloat, intFmt, duration)
		}, "Wrote text"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

func printEstimateText(w io.Writer, r *schema.EstimateReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	fmt.Fprintf(w, "%s %s commits, %s\n",
		contract.TitleColor.Sprint("Total:"),
		fmt.Sprintf(intFmt, r.TotalCommits),
		contract.FormatDelta(r.LinesAdded, r.LinesDeleted))
	fmt.Fprintf(w, "\n%s\n", sectionTitle(cfg, "💰", "COCOMO estimates"))

	table := newTable(w, "Mode", "KLOC", "Person-months", "Months", "People", "Cost")
	var data [][]string
	for _, e := range []schema.CocomoEstimate{r.Pure, r.Incremental} {
		data = append(data, []string{
			contract.AccentColor.Sprint(string(e.Mode)),
			fmtFloat(e.KLOC),
			fmtFloat(e.PersonMonths),
			fmtFloat(e.CalendarMonths),
			fmtFloat(e.AveragePeople),
			fmtFloat(e.EstimatedCost),
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}
	fmt.Fprintf(w, "Salary: %s/year\n", fmtFloat(r.Pure.Salary))
	fmt.Fprintf(w, "\nEstimate completed in %v\n", duration)
	return nil
}

func writeCSVEstimates(w io.Writer, fmtFloat func(float64) string, estimates ...schema.CocomoEstimate) error {
	header := []string{
		"mode",
		"salary",
		"kloc",
		"person_months",
		"calendar_months",
		"average_people",
		"estimated_cost",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range estimates {
			row := []string{
				string(e.Mode),
				fmtFloat(e.Salary),
				fmtFloat(e.KLOC),
				fmtFloat(e.PersonMonths),
				fmtFloat(e.CalendarMonths),
				fmtFloat(e.AveragePeople),
				fmtFloat(e.EstimatedCost),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
