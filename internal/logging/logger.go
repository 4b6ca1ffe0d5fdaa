// Package logging provides leveled, structured logging for patternlab.
//
// Loggers write to stderr so that they never interleave with demo output on
// stdout. The text format is rendered by tint (coloured only on terminals);
// the json format uses slog's JSON handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown values map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevel reports whether s names a known level.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config configures the logger.
type Config struct {
	// Level is the minimum log level to output.
	Level Level
	// Format is FormatText or FormatJSON. Defaults to text.
	Format string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Component is attached to every record when set.
	Component string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// Logger provides structured logging for the application.
type Logger struct {
	slog *slog.Logger
}

// New creates a new logger with the given configuration.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	var h slog.Handler
	switch cfg.Format {
	case FormatJSON:
		h = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{
			Level: cfg.Level.slogLevel(),
		})
	default:
		h = tint.NewHandler(cfg.Output, &tint.Options{
			Level:      cfg.Level.slogLevel(),
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(cfg.Output),
		})
	}

	l := &Logger{slog: slog.New(h)}
	if cfg.Component != "" {
		l = l.WithComponent(cfg.Component)
	}
	return l
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Nop returns a logger that discards all output.
func Nop() *Logger {
	return &Logger{slog: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{slog: l.slog.With(key, value)}
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{slog: l.slog.With(args...)}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Debug logs a debug message with optional key/value pairs.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.slog.Debug(msg, keyvals...)
}

// Info logs an info message with optional key/value pairs.
func (l *Logger) Info(msg string, keyvals ...any) {
	l.slog.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key/value pairs.
func (l *Logger) Warn(msg string, keyvals ...any) {
	l.slog.Warn(msg, keyvals...)
}

// Error logs an error message with optional key/value pairs.
func (l *Logger) Error(msg string, keyvals ...any) {
	l.slog.Error(msg, keyvals...)
}

// Slog exposes the underlying slog logger.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}
