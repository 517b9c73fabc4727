// Package errors defines the sentinel errors shared by the pallets packages
// and small helpers for wrapping them with context.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("could not resolve application directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config to YAML")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")
	ErrInvalidDuration   = fmt.Errorf("invalid duration value")

	// Settings validation errors.
	ErrHTTPTimeoutNegative = fmt.Errorf("http_timeout cannot be negative")
	ErrInvalidOutputFormat = fmt.Errorf("invalid output format")
	ErrInvalidLogLevel     = fmt.Errorf("invalid log level")
	ErrInvalidBaseURL      = fmt.Errorf("invalid base URL")
	ErrInvalidDateFormat   = fmt.Errorf("invalid date format")

	// Cache errors.
	ErrCacheDirectory = fmt.Errorf("dump directory cannot be empty")
	ErrCacheRead      = fmt.Errorf("failed to read dump directory")
	ErrDumpsDirectory = fmt.Errorf("failed to create dump directory")

	// Dump errors.
	ErrDumpNotFound = fmt.Errorf("dump does not exist")
	ErrDumpExists   = fmt.Errorf("dump already exists")
	ErrInvalidKind  = fmt.Errorf("invalid dump type")
	ErrInvalidDate  = fmt.Errorf("invalid date")
	ErrInvalidOrder = fmt.Errorf("invalid sort order")

	// Download errors.
	ErrDownloadFailed        = fmt.Errorf("download failed")
	ErrMissingContentType    = fmt.Errorf("could not determine content type")
	ErrUnexpectedContentType = fmt.Errorf("unexpected content type")
	ErrUserRequired          = fmt.Errorf("a nation name or email address is required to identify you")

	// Link errors.
	ErrLinkExists = fmt.Errorf("link target already exists")

	ErrEmptyPaths = fmt.Errorf("source and destination paths cannot be empty")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidOutputFormatWithDetails is a helper to create a wrapped error with the invalid format and valid options.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: text, json, yaml", ErrInvalidOutputFormat, format)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: error, warn, info, debug", ErrInvalidLogLevel, level)
}

// ErrUnknownConfigKeyWithName reports a configuration key that SetValue/GetValue do not know.
func ErrUnknownConfigKeyWithName(key string) error {
	return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
}
