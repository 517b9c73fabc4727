package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"gopkg.in/yaml.v3"

	"github.com/esfalsa/pallets/internal/logger"
	"github.com/esfalsa/pallets/pkg/cache"
	"github.com/esfalsa/pallets/pkg/config"
	"github.com/esfalsa/pallets/pkg/dump"
	"github.com/esfalsa/pallets/pkg/errors"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// Clock supplies "today" for commands whose date is optional.
var Clock = clockwork.NewRealClock()

// Log file rotation applied when settings.log_file is set.
const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
)

// loadConfig loads the configuration, applies CLI flag overrides and
// configures logging from the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	level := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	logger.SetFileOutput(logger.FileOutput{
		Path:       cfg.Settings.LogFile,
		MaxSizeMB:  logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		Compress:   true,
	})
	logger.InitLogger(level, logger.FormatAuto)

	return cfg, nil
}

// openCache opens the configured dumps directory, creating it if needed.
// Without a configured directory the platform default is used.
func openCache(cfg *config.Config) (*cache.DefaultManager, error) {
	var (
		manager *cache.DefaultManager
		err     error
	)
	if dir := cfg.GetDumpsDir(); dir != "" {
		manager, err = cache.Open(dir)
	} else {
		manager, err = cache.NewDefaultManager()
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("Using dump directory", logger.Fields{"directory": manager.Directory()})
	return manager, nil
}

// parseKind parses a --type flag value.
func parseKind(value string) (dump.Kind, error) {
	if value == "" {
		return "", fmt.Errorf("%w: --type is required (one of %s)", errors.ErrInvalidKind, kindNames())
	}
	return dump.ParseKind(value)
}

func kindNames() string {
	names := make([]string, 0, len(dump.Kinds()))
	for _, k := range dump.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

// parseDate parses a date flag with the flag's format, or the configured one
// when the flag is empty.
func parseDate(value, format string, cfg *config.Config) (time.Time, error) {
	if format == "" {
		format = cfg.Settings.DateFormat
	}
	return dump.ParseDateFormat(value, format)
}

// parseOptionalDate is parseDate that maps an empty value to the zero time.
func parseOptionalDate(value, format string, cfg *config.Config) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return parseDate(value, format, cfg)
}

// today is the current UTC calendar date.
func today() time.Time {
	now := Clock.Now().UTC()
	return dump.NewDate(now.Year(), now.Month(), now.Day())
}

// writeStructured writes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.ErrInvalidOutputFormatWithDetails(format)
	}
}
