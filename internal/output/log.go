// Package output provides the CLI's logger and styled status lines.
package output

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns the CLI logger writing to w. Verbose enables debug events and
// timestamps.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05",
	})
}
