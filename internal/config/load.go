package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tasklist/tasklist.toml or OS-specific config dir)
// 3. Project config file (tasklist.toml or .tasklist.toml in current directory)
// 4. Environment variables
// 5. CLI flags registered on fs and parsed from args
//
// Positional arguments are left in fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{Sources: make(map[string]ConfigSource)}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	if projectConfigFile := findProjectConfigFile(wd); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg, wd); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir
	cfg.Backend = DefaultBackend
	cfg.DBPath = ""
	cfg.ValidateSchema = true
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.ClockFormat = DefaultClockFormat
	cfg.DateFormat = DefaultDateFormat
}

// loadConfigFile decodes TOML from path over cfg and records which keys it set.
func loadConfigFile(cfg *Config, path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	for _, key := range fieldKeys() {
		if md.IsDefined(key) {
			cfg.Sources[key] = source
		}
	}
	cfg.ConfigFiles = append(cfg.ConfigFiles, path)
	return nil
}

// finalizeConfig computes derived values and makes paths absolute.
func finalizeConfig(cfg *Config, wd string) error {
	cfg.DataDir = absPath(expandPath(cfg.DataDir), wd)
	if cfg.DataDir == "" {
		return fmt.Errorf("data_dir is empty")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, DefaultDBName)
	} else {
		cfg.DBPath = absPath(expandPath(cfg.DBPath), wd)
	}
	return cfg.Validate()
}

// LogFilePath returns where the TUI writes its log.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.DataDir, DefaultLogFileName)
}

func absPath(p, wd string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(wd, p)
}
