package cmd

import (
	"os"

	progress "gopkg.in/cheggaaa/pb.v1"
)

// newProgressBar returns a callback drawing commit progress on stderr.
// The bar is created lazily since the total is only known once the walk starts.
func newProgressBar() func(done, total int) {
	var bar *progress.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progress.New(total)
			bar.Callback = func(msg string) {
				_, _ = os.Stderr.WriteString("\033[2K\r" + msg)
			}
			bar.NotPrint = true
			bar.ShowPercent = false
			bar.ShowSpeed = false
			bar.SetMaxWidth(80).Start()
		}
		bar.Set(done)
		if done >= total {
			bar.Finish()
			_, _ = os.Stderr.WriteString("\033[2K\r")
		}
	}
}
