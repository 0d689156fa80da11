package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/utils"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultDataDir     = "~/.tasklist"
	DefaultBackend     = storage.BackendFile
	DefaultDBName      = "tasklist.db"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultClockFormat = "15:04:05"
	DefaultDateFormat  = "02/01/2006 15:04"
	DefaultLogFileName = "tasklist.log"
)

// Config holds the full configuration for tasklist.
type Config struct {
	// Storage
	DataDir        string `toml:"data_dir"`
	Backend        string `toml:"backend"`
	DBPath         string `toml:"db_path"`
	ValidateSchema bool   `toml:"validate_schema"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Display
	ClockFormat string `toml:"clock_format"`
	DateFormat  string `toml:"date_format"`

	// ConfigFiles lists the config files that were applied, in order (computed).
	ConfigFiles []string `toml:"-"`

	// Sources maps each field key to where its value came from (computed).
	Sources map[string]ConfigSource `toml:"-"`
}

// fieldKeys returns the configurable field keys in display order.
func fieldKeys() []string {
	return []string{
		"data_dir",
		"backend",
		"db_path",
		"validate_schema",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"clock_format",
		"date_format",
	}
}

// FieldKeys returns the configurable field keys in display order.
func FieldKeys() []string {
	return fieldKeys()
}

// Value returns the configured value for a field key as display text.
func (c *Config) Value(key string) string {
	switch key {
	case "data_dir":
		return c.DataDir
	case "backend":
		return c.Backend
	case "db_path":
		return c.DBPath
	case "validate_schema":
		return fmt.Sprintf("%t", c.ValidateSchema)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprintf("%t", c.LogTimestamps)
	case "log_caller":
		return fmt.Sprintf("%t", c.LogCaller)
	case "clock_format":
		return c.ClockFormat
	case "date_format":
		return c.DateFormat
	}
	return ""
}

// Source returns where the value for key came from.
func (c *Config) Source(key string) ConfigSource {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

// StorageOptions returns the options for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend: c.Backend,
		Dir:     c.DataDir,
		DBPath:  c.DBPath,
	}
}

// Validate checks enum-valued fields.
func (c *Config) Validate() error {
	var problems []string
	if !slices.Contains(storage.Backends(), utils.NormalizeName(c.Backend)) {
		problems = append(problems, fmt.Sprintf("backend %q (expected %s)", c.Backend, strings.Join(storage.Backends(), "|")))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "warning", "error", "fatal"}, utils.NormalizeName(c.LogLevel)) {
		problems = append(problems, fmt.Sprintf("log_level %q (expected debug|info|warn|error|fatal)", c.LogLevel))
	}
	if !slices.Contains([]string{"text", "json", "logfmt"}, utils.NormalizeName(c.LogFormat)) {
		problems = append(problems, fmt.Sprintf("log_format %q (expected text|json|logfmt)", c.LogFormat))
	}
	if strings.TrimSpace(c.ClockFormat) == "" {
		problems = append(problems, "clock_format is empty")
	}
	if strings.TrimSpace(c.DateFormat) == "" {
		problems = append(problems, "date_format is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
