package config

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns a structured logger writing to w. The level comes from
// LOG_LEVEL (debug, info, warn, error); anything else means info.
// LOG_CALLER=true adds the source location to each line.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    GetEnvBool("LOG_CALLER", false),
		Prefix:          prefix,
	})
	logger.SetLevel(LogLevel())
	return logger
}

// LogLevel parses LOG_LEVEL.
func LogLevel() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(GetEnv("LOG_LEVEL", "info"))))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
