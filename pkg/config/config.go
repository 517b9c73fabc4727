// Package config provides configuration management for pallets.
// It loads, validates and saves the YAML settings file and supplies defaults
// for every setting so that running without a configuration file works.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/esfalsa/pallets/pkg/dump"
	"github.com/esfalsa/pallets/pkg/errors"
	"github.com/esfalsa/pallets/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Storage settings
	DumpsDir string `yaml:"dumps_dir,omitempty"`

	// Network settings
	BaseURL     string        `yaml:"base_url"`
	User        string        `yaml:"user,omitempty"` // nation name or email sent in the User-Agent
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json, yaml
	LogLevel     string `yaml:"log_level"`     // error, warn, info, debug
	LogFile      string `yaml:"log_file,omitempty"`
	DateFormat   string `yaml:"date_format"` // strftime directives
}

// Default configuration values.
const (
	// DefaultHTTPTimeout bounds a whole dump transfer. Nation dumps run to
	// tens of megabytes.
	DefaultHTTPTimeout = 5 * time.Minute

	// DefaultOutputFormat is used when no output format is configured.
	DefaultOutputFormat = "text"

	// DefaultLogLevel is used when no log level is configured.
	DefaultLogLevel = "info"

	// EnvUser names the environment variable consulted when no user is configured.
	EnvUser = "PALLETS_USER"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	// Left empty when no data directory can be determined; opening the cache
	// then reports errors.ErrConfigDirectory.
	dumpsDir, _ := fsutil.GetDumpsDir()

	return &Config{
		Settings: Settings{
			DumpsDir:     dumpsDir,
			BaseURL:      dump.DefaultBaseURL,
			HTTPTimeout:  DefaultHTTPTimeout,
			OutputFormat: DefaultOutputFormat,
			LogLevel:     DefaultLogLevel,
			DateFormat:   dump.DefaultDateFormat,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigParse, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfigValidation, err)
	}

	return &config, nil
}

// SaveConfig saves configuration to a file, replacing it atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	return validateSettings(c.Settings)
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errors.ErrHTTPTimeoutNegative
	}
	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[s.OutputFormat] {
		return errors.ErrInvalidOutputFormatWithDetails(s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	if err := validateBaseURL(s.BaseURL); err != nil {
		return err
	}
	if _, err := dump.Layout(s.DateFormat); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidDateFormat, err)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q must be an http(s) URL", errors.ErrInvalidBaseURL, raw)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, fsutil.AppName, "config.yaml"), nil
}

// GetDumpsDir returns the directory dumps are stored in.
func (c *Config) GetDumpsDir() string {
	return c.Settings.DumpsDir
}

// GetUser returns the identifying user, falling back to the PALLETS_USER
// environment variable.
func (c *Config) GetUser() string {
	if c.Settings.User != "" {
		return c.Settings.User
	}
	return strings.TrimSpace(os.Getenv(EnvUser))
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.DumpsDir == "" {
		c.Settings.DumpsDir = defaults.Settings.DumpsDir
	}
	if c.Settings.BaseURL == "" {
		c.Settings.BaseURL = defaults.Settings.BaseURL
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.DateFormat == "" {
		c.Settings.DateFormat = defaults.Settings.DateFormat
	}
}
