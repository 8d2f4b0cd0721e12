// Package logger wraps charm/log with the structured events of a conversion run.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a logger writing records at level or above to w.
func New(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "rstify",
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard, log.FatalLevel)
}

// LevelFor maps the CLI verbosity flags to a level. Verbose wins over quiet.
func LevelFor(verbose, quiet bool) log.Level {
	switch {
	case verbose:
		return log.DebugLevel
	case quiet:
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ConfigLoaded logs the configuration in effect
func (l *Logger) ConfigLoaded(source string, width, workers int) {
	l.Debug("config loaded",
		"source", source,
		"width", width,
		"workers", workers)
}

// BatchStarted logs the start of a batch
func (l *Logger) BatchStarted(files, workers int) {
	l.Debug("batch started",
		"files", files,
		"workers", workers)
}

// BatchCompleted logs the outcome of a batch
func (l *Logger) BatchCompleted(succeeded, skipped, failed int, duration time.Duration) {
	l.Info("batch completed",
		"succeeded", succeeded,
		"skipped", skipped,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// FileConverted logs a converted file with its counters
func (l *Logger) FileConverted(source, dest string, lines, paragraphs int) {
	l.Debug("file converted",
		"source", source,
		"dest", dest,
		"lines", lines,
		"paragraphs", paragraphs)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Info("file skipped",
		"file", file,
		"reason", reason)
}
