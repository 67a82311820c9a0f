package debuglog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff // Disables all logging
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a level name. Unknown names fall back to OFF so a
// typo in the config never starts writing files unexpectedly.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelOff
	}
}

// Fields are key/value pairs appended to a log line.
type Fields map[string]any

var (
	currentLevel LogLevel = LevelOff
	logger       *log.Logger
	logFile      *os.File
)

// DefaultPath is where logs go when no file is configured.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".drclip", "drclip.log")
}

// Setup opens filePath (or DefaultPath when empty) for appending and routes
// all messages at or above level into it.
func Setup(level LogLevel, filePath string) error {
	if err := Close(); err != nil {
		return fmt.Errorf("closing previous log file: %w", err)
	}
	currentLevel = level

	if level == LevelOff {
		return nil
	}

	if filePath == "" {
		filePath = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", filePath, err)
	}

	logFile = f
	logger = newLogger(f)
	return nil
}

// SetOutput routes messages to w instead of a file. Mostly useful in tests.
func SetOutput(level LogLevel, w io.Writer) {
	_ = Close()
	currentLevel = level
	if level != LevelOff && w != nil {
		logger = newLogger(w)
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "drclip ", log.LstdFlags|log.Lmicroseconds)
}

func SetLevel(level LogLevel) {
	currentLevel = level
}

func GetLevel() LogLevel {
	return currentLevel
}

// Close closes the log file if open and disables output.
func Close() error {
	logger = nil
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

func enabled(level LogLevel) bool {
	return logger != nil && currentLevel != LevelOff && level >= currentLevel
}

func logf(level LogLevel, format string, args ...any) {
	if !enabled(level) {
		return
	}
	logger.Printf("[%s] %s", level.String(), fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) { logf(LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Errorf(format string, args ...any) { logf(LevelError, format, args...) }

// FieldLogger appends a fixed set of fields to every message.
type FieldLogger struct {
	fields Fields
}

func WithFields(fields Fields) *FieldLogger {
	return &FieldLogger{fields: fields}
}

// With returns a copy of the logger carrying one more field.
func (fl *FieldLogger) With(key string, value any) *FieldLogger {
	next := make(Fields, len(fl.fields)+1)
	for k, v := range fl.fields {
		next[k] = v
	}
	next[key] = value
	return &FieldLogger{fields: next}
}

// formatFields renders fields sorted by key so lines are stable.
func (fl *FieldLogger) formatFields() string {
	if len(fl.fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fl.fields))
	for k := range fl.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fl.fields[k]))
	}
	return " [" + strings.Join(parts, " ") + "]"
}

func (fl *FieldLogger) logf(level LogLevel, format string, args ...any) {
	if !enabled(level) {
		return
	}
	logf(level, "%s", fmt.Sprintf(format, args...)+fl.formatFields())
}

func (fl *FieldLogger) Debugf(format string, args ...any) { fl.logf(LevelDebug, format, args...) }
func (fl *FieldLogger) Infof(format string, args ...any)  { fl.logf(LevelInfo, format, args...) }
func (fl *FieldLogger) Warnf(format string, args ...any)  { fl.logf(LevelWarn, format, args...) }
func (fl *FieldLogger) Errorf(format string, args ...any) { fl.logf(LevelError, format, args...) }
