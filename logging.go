package faroeste

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger builds a logger writing to w. An unknown level falls back to
// warn; Config.Validate reports it before this point.
func NewLogger(cfg LogConfig, w io.Writer) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = log.WarnLevel
	}

	formatter := log.TextFormatter
	switch strings.ToLower(cfg.Format) {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: cfg.Timestamps,
		Prefix:          "faroeste",
	})
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}
