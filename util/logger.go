// Package util provides low-level helpers shared by all other packages.
package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// LogLevel controls output verbosity.
type LogLevel int

const (
	LogQuiet   LogLevel = 0
	LogNormal  LogLevel = 1
	LogVerbose LogLevel = 2
	LogDebug   LogLevel = 3

	// logAlways marks messages written at every verbosity.
	logAlways LogLevel = -1
)

var levelTags = map[LogLevel]string{ //nolint:gochecknoglobals
	logAlways:  "ERR",
	LogNormal:  "INF",
	LogVerbose: "VRB",
	LogDebug:   "DBG",
}

// Logger writes levelled diagnostics to stderr.  Decoded text never
// goes through it, so stdout stays clean for piping.  Debug verbosity
// stamps each line with the wall-clock time.
type Logger struct {
	mu     sync.Mutex
	level  LogLevel
	output io.Writer
}

// NewLogger returns a Logger that prints messages at or below the given
// verbosity (0 = quiet, 1 = normal, 2 = verbose, 3 = debug).
func NewLogger(verbosity int) *Logger {
	return &Logger{level: LogLevel(verbosity), output: os.Stderr}
}

// Discard returns a quiet Logger whose output, errors included, is
// dropped.
func Discard() *Logger {
	return &Logger{level: LogQuiet, output: io.Discard}
}

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	l.output = w
	l.mu.Unlock()
}

// Enabled reports whether messages at lvl would be written.  Callers
// use it to skip building expensive arguments.
func (l *Logger) Enabled(lvl LogLevel) bool { return l.level >= lvl }

// Info prints when verbosity ≥ 1.
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogNormal, "", format, args...)
}

// Warn prints when verbosity ≥ 1.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogNormal, "WRN", format, args...)
}

// Verbose prints when verbosity ≥ 2.
func (l *Logger) Verbose(format string, args ...interface{}) {
	l.logf(LogVerbose, "", format, args...)
}

// Debug prints when verbosity ≥ 3.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogDebug, "", format, args...)
}

// Error prints at every verbosity.
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(logAlways, "", format, args...)
}

// logf writes one "[TAG] msg" line when lvl is enabled.  An empty tag
// falls back to the level's own.
func (l *Logger) logf(lvl LogLevel, tag, format string, args ...interface{}) {
	if !l.Enabled(lvl) {
		return
	}
	if tag == "" {
		tag = levelTags[lvl]
	}
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.level >= LogDebug {
		fmt.Fprintf(l.output, "%s [%s] %s\n", time.Now().Format("15:04:05.000"), tag, msg)
		return
	}
	fmt.Fprintf(l.output, "[%s] %s\n", tag, msg)
}
