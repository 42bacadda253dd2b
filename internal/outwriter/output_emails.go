package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
)

// PrintEmails outputs author emails, one per line in text mode.
func PrintEmails(emails []string, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if emails == nil {
			emails = []string{}
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, emails)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"email"}, func(cw *csv.Writer) error {
				for _, e := range emails {
					if err := cw.Write([]string{e}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("%w: parquet output is not available for emails", contract.ErrInvalidConfiguration)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			for _, e := range emails {
				if _, err := fmt.Fprintln(w, e); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote text")
	}
}
