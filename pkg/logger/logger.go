// Package logger provides structured logging setup.
//
// Records go through log/slog. Text output is rendered by charmbracelet/log,
// JSON output by the standard slog JSON handler.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Format names accepted by Initialize.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewTextHandler configures a text slog handler with the provided writer and log level.
func NewTextHandler(level string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := log.InfoLevel
	switch strings.ToLower(level) {
	case "trace":
		reportCaller = true
		reportTimestamp = true
		lvl = log.DebugLevel
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "info":
		lvl = log.InfoLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// NewJSONHandler configures a JSON slog handler with the provided writer and log level.
func NewJSONHandler(level string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: strings.EqualFold(level, "trace"),
	})
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger for the given level and format writing to writer.
func New(level, format string, writer io.Writer) *slog.Logger {
	if strings.EqualFold(format, FormatJSON) {
		return slog.New(NewJSONHandler(level, writer))
	}
	return slog.New(NewTextHandler(level, writer))
}

// Initialize installs a logger for level and format as the slog default and returns it.
func Initialize(level, format string) *slog.Logger {
	l := New(level, format, nil)
	slog.SetDefault(l)
	return l
}

// Fatal logs msg at error level on the default logger and terminates the program.
func Fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
