package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKLIST_* environment variables.
func loadFromEnv(cfg *Config) {
	setString := func(env, key string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			cfg.Sources[key] = SourceEnv
		}
	}
	setBool := func(env, key string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = boolFromString(v)
			cfg.Sources[key] = SourceEnv
		}
	}

	setString("TASKLIST_DATA_DIR", "data_dir", &cfg.DataDir)
	setString("TASKLIST_BACKEND", "backend", &cfg.Backend)
	setString("TASKLIST_DB", "db_path", &cfg.DBPath)
	setBool("TASKLIST_VALIDATE_SCHEMA", "validate_schema", &cfg.ValidateSchema)
	setString("TASKLIST_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TASKLIST_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TASKLIST_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TASKLIST_LOG_CALLER", "log_caller", &cfg.LogCaller)
	setString("TASKLIST_CLOCK_FORMAT", "clock_format", &cfg.ClockFormat)
	setString("TASKLIST_DATE_FORMAT", "date_format", &cfg.DateFormat)
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
