// Package logging provides the leveled logger shared by the run packages
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Logger is the logging surface library packages depend on
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// NoOpLogger discards everything
type NoOpLogger struct{}

func (NoOpLogger) Debugf(format string, v ...any) {}
func (NoOpLogger) Infof(format string, v ...any)  {}
func (NoOpLogger) Warnf(format string, v ...any)  {}
func (NoOpLogger) Errorf(format string, v ...any) {}

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel reads a case-insensitive level name
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}

// Leveled writes messages at or above a threshold through a stdlib logger
type Leveled struct {
	level Level
	out   *log.Logger
}

// New returns a leveled logger writing to w with the given line prefix
func New(w io.Writer, prefix string, level Level) *Leveled {
	return &Leveled{
		level: level,
		out:   log.New(w, prefix, log.LstdFlags),
	}
}

// Level returns the active threshold
func (l *Leveled) Level() Level { return l.level }

func (l *Leveled) logf(level Level, tag, format string, v ...any) {
	if level < l.level {
		return
	}
	l.out.Printf(tag+" "+format, v...)
}

// Debugf logs a debug message
func (l *Leveled) Debugf(format string, v ...any) { l.logf(LevelDebug, "[DEBUG]", format, v...) }

// Infof logs an info message
func (l *Leveled) Infof(format string, v ...any) { l.logf(LevelInfo, "[INFO]", format, v...) }

// Warnf logs a warning message
func (l *Leveled) Warnf(format string, v ...any) { l.logf(LevelWarn, "[WARN]", format, v...) }

// Errorf logs an error message
func (l *Leveled) Errorf(format string, v ...any) { l.logf(LevelError, "[ERROR]", format, v...) }

var (
	_ Logger = NoOpLogger{}
	_ Logger = (*Leveled)(nil)
)
