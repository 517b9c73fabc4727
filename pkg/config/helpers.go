package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/esfalsa/pallets/pkg/errors"
)

// SetValue sets a configuration value by key
// Supported keys:
//   - dumps_dir: string - Directory dumps are stored in
//   - base_url: string - Archive base URL
//   - user: string - Nation name or email sent with requests
//   - http_timeout: duration - Transfer timeout (e.g. 5m)
//   - output_format: string - Output format (text, json, yaml)
//   - log_level: string - Logging level (debug, info, warn, error)
//   - log_file: string - Rotating log file, empty for stderr
//   - date_format: string - strftime format for dates on the command line
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "dumps_dir":
		c.Settings.DumpsDir = value
	case "base_url":
		c.Settings.BaseURL = value
	case "user":
		c.Settings.User = strings.TrimSpace(value)
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %s", errors.ErrInvalidDuration, key, value)
		}
		c.Settings.HTTPTimeout = d
	case "output_format":
		c.Settings.OutputFormat = value
	case "log_level":
		c.Settings.LogLevel = value
	case "log_file":
		c.Settings.LogFile = value
	case "date_format":
		c.Settings.DateFormat = value
	default:
		return errors.ErrUnknownConfigKeyWithName(key)
	}
	return nil
}

// GetValue returns the value of key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "dumps_dir":
		return c.Settings.DumpsDir, nil
	case "base_url":
		return c.Settings.BaseURL, nil
	case "user":
		return c.Settings.User, nil
	case "http_timeout":
		return c.Settings.HTTPTimeout.String(), nil
	case "output_format":
		return c.Settings.OutputFormat, nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "log_file":
		return c.Settings.LogFile, nil
	case "date_format":
		return c.Settings.DateFormat, nil
	default:
		return "", errors.ErrUnknownConfigKeyWithName(key)
	}
}

// Keys returns the settable keys in declaration order.
func Keys() []string {
	settingsType := reflect.TypeOf(Settings{})
	keys := make([]string, 0, settingsType.NumField())
	for i := 0; i < settingsType.NumField(); i++ {
		yamlTag := settingsType.Field(i).Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		// Handle yaml tags with options (e.g., "dumps_dir,omitempty")
		keys = append(keys, strings.Split(yamlTag, ",")[0])
	}
	return keys
}

// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)
	for _, key := range Keys() {
		value, err := c.GetValue(key)
		if err != nil {
			continue
		}
		result[key] = value
	}
	return result
}
