package config

import (
	"flag"
)

// flagKeys maps flag names to config field keys.
var flagKeys = map[string]string{
	"data-dir":        "data_dir",
	"backend":         "backend",
	"db":              "db_path",
	"validate-schema": "validate_schema",
	"log-level":       "log_level",
	"log-format":      "log_format",
	"log-timestamps":  "log_timestamps",
	"log-caller":      "log_caller",
}

// parseFlags defines the global flags on fs, parses args, and records which
// flags were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasklist", flag.ContinueOnError)
	}

	// Storage
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend (file, sqlite, memory)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Database path for the sqlite backend (default <data-dir>/tasklist.db)")
	fs.BoolVar(&cfg.ValidateSchema, "validate-schema", cfg.ValidateSchema, "Validate stored tasks against the JSON Schema")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			cfg.Sources[key] = SourceFlag
		}
	})
	return nil
}
