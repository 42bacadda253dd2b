// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints a history summary using the configured output format.
func (ow *OutWriter) WriteSummary(summary *schema.Summary, cfg *contract.Config, duration time.Duration) error {
	return PrintSummary(summary, cfg, duration)
}

// WriteEstimate prints both COCOMO estimates using the configured output format.
func (ow *OutWriter) WriteEstimate(report *schema.EstimateReport, cfg *contract.Config, duration time.Duration) error {
	return PrintEstimate(report, cfg, duration)
}

// WriteEmails prints author emails using the configured output format.
func (ow *OutWriter) WriteEmails(emails []string, cfg *contract.Config) error {
	return PrintEmails(emails, cfg)
}
