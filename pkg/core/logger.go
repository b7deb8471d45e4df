package core

import (
	"log"
	"strings"
)

// logLevel is an ordinal severity: lower is more verbose.
type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

func parseLogLevel(s string) logLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Logger drops every line below a configured minimum level (debug < info <
// warn < error); lines at or above it go through log.Printf, same as the
// rest of this codebase.
type Logger struct {
	min    logLevel
	prefix string
}

// NewLogger returns a Logger that prefixes every line with prefix (typically
// the run id) and suppresses levels below min.
func NewLogger(level, prefix string) *Logger {
	return &Logger{min: parseLogLevel(level), prefix: prefix}
}

func (l *Logger) line(level logLevel, format string, args []any) {
	if level < l.min {
		return
	}
	if l.prefix != "" {
		format = "[" + l.prefix + "] " + format
	}
	log.Printf(format, args...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.line(levelDebug, format, args) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.line(levelInfo, format, args) }

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...any) { l.line(levelWarn, format, args) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) { l.line(levelError, format, args) }
