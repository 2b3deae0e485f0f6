package utils

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns a leveled logger writing to w. Unknown levels fall back to info.
func NewLogger(level string, w io.Writer) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "gol-duel",
	})
}
