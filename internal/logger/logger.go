// Package logger writes leveled, timestamped messages to a console stream.
//
// Output looks like "[HH:MM:SS] [WARN] message". Level names are colorized
// when the writer is a terminal stream and NO_COLOR is unset.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log levels, lowest to highest.
const (
	levelDebug int = iota
	levelInfo
	levelWarn
	levelError
)

// ValidLevels lists the accepted level names.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Logger is a thread-safe leveled console logger. The zero value discards
// everything.
type Logger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// New creates a Logger writing to w. An unknown or empty level means "info".
func New(w io.Writer, level string) *Logger {
	return &Logger{
		writer:      w,
		level:       levelToInt(level),
		colorOutput: isTerminal(w),
		now:         time.Now,
	}
}

// Discard returns a Logger that drops every message.
func Discard() *Logger {
	return &Logger{}
}

// IsValidLevel reports whether level names a known level.
func IsValidLevel(level string) bool {
	normalized := strings.ToLower(strings.TrimSpace(level))
	for _, l := range ValidLevels {
		if l == normalized {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

func levelToInt(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.log(levelDebug, "DEBUG", format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.log(levelInfo, "INFO", format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...any) {
	l.log(levelWarn, "WARN", format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(levelError, "ERROR", format, args...)
}

func (l *Logger) log(level int, name, format string, args ...any) {
	if l == nil || l.writer == nil || level < l.level {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	ts := l.now().Format("15:04:05")
	if l.colorOutput {
		name = levelColor(name).Sprint(name)
	}
	fmt.Fprintf(l.writer, "[%s] [%s] %s\n", ts, name, fmt.Sprintf(format, args...))
}

func levelColor(name string) *color.Color {
	switch name {
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}
