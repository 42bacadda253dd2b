package outwriter

import (
	"os"

	"github.com/FractalWire/git-tools/internal/contract"
	"golang.org/x/term"
)

// GetMaxTablePathWidth calculates the maximum width for directory paths and commit
// subjects in table output based on terminal width.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	termWidth := cfg.Width

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Commits + Files + Added + Deleted columns with borders and padding
	available := termWidth - 55
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
