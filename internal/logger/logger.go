// Package logger is the process-wide structured logger. Logs go to stderr
// (or a rotating file) so that stdout stays reserved for command results.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// OutputFormat selects the slog handler.
type OutputFormat string

const (
	// FormatAuto picks text for terminals and JSON otherwise.
	FormatAuto OutputFormat = "auto"
	// FormatText is logfmt-style key=value output.
	FormatText OutputFormat = "text"
	// FormatJSON is one JSON object per line.
	FormatJSON OutputFormat = "json"
)

// FileOutput configures logging to a rotating file.
type FileOutput struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

var (
	// testOutput is used to capture log output during tests
	testOutput   io.Writer
	fileOutput   io.WriteCloser
	testOutputMu sync.Mutex
)

// Fields is a type alias for log fields to make the API cleaner
type Fields map[string]interface{}

var (
	logger       *slog.Logger
	currentLevel = new(slog.LevelVar)
)

// SetTestOutput sets the output writer for testing purposes
func SetTestOutput(w io.Writer) {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = w
}

// UnsetTestOutput resets the test output to nil
func UnsetTestOutput() {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = nil
}

// SetFileOutput sends subsequent logs to a size-rotated file. An empty path
// restores stderr. InitLogger must be called again for it to take effect.
func SetFileOutput(out FileOutput) {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	if fileOutput != nil {
		_ = fileOutput.Close()
		fileOutput = nil
	}
	if out.Path == "" {
		return
	}
	fileOutput = &lumberjack.Logger{
		Filename:   out.Path,
		MaxSize:    out.MaxSizeMB,
		MaxBackups: out.MaxBackups,
		Compress:   out.Compress,
		LocalTime:  true,
	}
}

// Close releases the log file, if any.
func Close() {
	SetFileOutput(FileOutput{})
}

func getOutput() io.Writer {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	if testOutput != nil {
		return testOutput
	}
	if fileOutput != nil {
		return fileOutput
	}
	return os.Stderr
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger initializes the global logger for CLI operations.
func InitLogger(logLevel string, format OutputFormat) {
	currentLevel.Set(ParseLevel(logLevel))
	logger = slog.New(newHandler(getOutput(), format))
}

func newHandler(w io.Writer, format OutputFormat) slog.Handler {
	opts := &slog.HandlerOptions{Level: currentLevel}
	switch resolveFormat(w, format) {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatText:
		if isTerminal(w) {
			return tint.NewHandler(w, &tint.Options{Level: currentLevel, TimeFormat: time.Kitchen})
		}
	}
	return slog.NewTextHandler(w, opts)
}

func resolveFormat(w io.Writer, format OutputFormat) OutputFormat {
	if format != FormatAuto && format != "" {
		return format
	}
	if isTerminal(w) {
		return FormatText
	}
	return FormatJSON
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// GetLogger returns the configured logger instance.
func GetLogger() *slog.Logger {
	if logger == nil {
		// Initialize with default settings if not already initialized
		InitLogger("info", FormatAuto)
	}
	return logger
}

// Info logs an info message.
func Info(msg string, fields ...Fields) {
	GetLogger().Info(msg, mergeFields(fields...)...)
}

// Debug logs a debug message (only shown when debug level is enabled).
func Debug(msg string, fields ...Fields) {
	GetLogger().Debug(msg, mergeFields(fields...)...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...Fields) {
	GetLogger().Warn(msg, mergeFields(fields...)...)
}

// Success logs a success message as info with success indicator.
func Success(msg string, fields ...Fields) {
	attrs := mergeFields(fields...)
	attrs = append(attrs, "status", "success")
	GetLogger().Info(msg, attrs...)
}

// mergeFields merges multiple field maps into one slice of key-value pairs for slog.
func mergeFields(fields ...Fields) []interface{} {
	result := []interface{}{}
	for _, field := range fields {
		for k, v := range field {
			result = append(result, k, v)
		}
	}
	return result
}
