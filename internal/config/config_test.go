// Package config tests configuration loading.
package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and XDG_CONFIG_HOME at empty temp dirs, clears
// TASKLIST_* variables, and moves into an empty working directory.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "TASKLIST_") {
			t.Setenv(strings.SplitN(kv, "=", 2)[0], "")
		}
	}
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })
	return home, wd
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, DefaultDataDir)
	}
	if cfg.Backend != "file" {
		t.Errorf("Backend: got %q, want file", cfg.Backend)
	}
	if !cfg.ValidateSchema {
		t.Error("ValidateSchema should default to true")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging defaults: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.ClockFormat != "15:04:05" {
		t.Errorf("ClockFormat: got %q", cfg.ClockFormat)
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	home, _ := isolate(t)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := filepath.Join(home, ".tasklist"); cfg.DataDir != want {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, want)
	}
	if want := filepath.Join(home, ".tasklist", "tasklist.db"); cfg.DBPath != want {
		t.Errorf("DBPath: got %q, want %q", cfg.DBPath, want)
	}
	if len(cfg.ConfigFiles) != 0 {
		t.Errorf("ConfigFiles: got %v, want none", cfg.ConfigFiles)
	}
	for _, key := range FieldKeys() {
		if cfg.Source(key) != SourceDefault {
			t.Errorf("Source(%s): got %q, want default", key, cfg.Source(key))
		}
	}
	if cfg.LogFilePath() != filepath.Join(home, ".tasklist", "tasklist.log") {
		t.Errorf("LogFilePath: got %q", cfg.LogFilePath())
	}
}

func TestLoadLayering(t *testing.T) {
	home, wd := isolate(t)

	writeFile(t, filepath.Join(home, ".tasklist", "tasklist.toml"), `
backend = "sqlite"
log_level = "debug"
clock_format = "15:04"
`)
	writeFile(t, filepath.Join(wd, "tasklist.toml"), `
log_level = "warn"
`)
	t.Setenv("TASKLIST_LOG_FORMAT", "json")
	t.Setenv("TASKLIST_VALIDATE_SCHEMA", "false")

	fs := newFlagSet()
	cfg, err := Load(fs, []string{"--data-dir", "data", "ls", "--filter", "pending"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	checks := []struct {
		key    string
		value  string
		source ConfigSource
	}{
		{"backend", "sqlite", SourceUserFile},
		{"clock_format", "15:04", SourceUserFile},
		{"log_level", "warn", SourceProjFile},
		{"log_format", "json", SourceEnv},
		{"validate_schema", "false", SourceEnv},
		{"data_dir", filepath.Join(wd, "data"), SourceFlag},
		{"db_path", filepath.Join(wd, "data", "tasklist.db"), SourceDefault},
		{"date_format", DefaultDateFormat, SourceDefault},
	}
	for _, c := range checks {
		if got := cfg.Value(c.key); got != c.value {
			t.Errorf("%s: got %q, want %q", c.key, got, c.value)
		}
		if got := cfg.Source(c.key); got != c.source {
			t.Errorf("%s source: got %q, want %q", c.key, got, c.source)
		}
	}

	if len(cfg.ConfigFiles) != 2 {
		t.Errorf("ConfigFiles: got %v, want user and project files", cfg.ConfigFiles)
	}
	if got := strings.Join(fs.Args(), " "); got != "ls --filter pending" {
		t.Errorf("remaining args: got %q", got)
	}
}

func TestLoadHiddenProjectFile(t *testing.T) {
	_, wd := isolate(t)
	writeFile(t, filepath.Join(wd, ".tasklist.toml"), `backend = "memory"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "memory" || cfg.Source("backend") != SourceProjFile {
		t.Errorf("backend: %q from %q", cfg.Backend, cfg.Source("backend"))
	}
}

func TestLoadXDGUserFile(t *testing.T) {
	home, _ := isolate(t)
	if osUserConfigDir() != filepath.Join(home, ".config") {
		t.Skip("XDG config dir only applies on Linux/BSD")
	}
	writeFile(t, filepath.Join(home, ".config", "tasklist", "tasklist.toml"), `log_format = "logfmt"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogFormat != "logfmt" {
		t.Errorf("LogFormat: got %q, want logfmt", cfg.LogFormat)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		project string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown key",
			project: `colour = "blue"`,
			wantErr: `unknown config key "colour"`,
		},
		{
			name:    "bad toml",
			project: `backend = `,
			wantErr: "loading project config file",
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"TASKLIST_BACKEND": "redis"},
			wantErr: `backend "redis"`,
		},
		{
			name:    "bad log level",
			args:    []string{"--log-level", "loud"},
			wantErr: `log_level "loud"`,
		},
		{
			name:    "unknown flag",
			args:    []string{"--nope"},
			wantErr: "parsing flags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, wd := isolate(t)
			if tt.project != "" {
				writeFile(t, filepath.Join(wd, "tasklist.toml"), tt.project)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(newFlagSet(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load: got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKLIST_TEST_DIR", "/srv/tasks")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"$TASKLIST_TEST_DIR/x", "/srv/tasks/x"},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		if !boolFromString(v) {
			t.Errorf("boolFromString(%q) = false", v)
		}
	}
	for _, v := range []string{"0", "false", "no", "off", "maybe"} {
		if boolFromString(v) {
			t.Errorf("boolFromString(%q) = true", v)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("ExampleConfig does not parse: %v", err)
	}
	if len(md.Undecoded()) != 0 {
		t.Errorf("ExampleConfig has unknown keys: %v", md.Undecoded())
	}
	if cfg.Backend != "file" || cfg.DataDir != "~/.tasklist" {
		t.Errorf("ExampleConfig values: backend %q, data_dir %q", cfg.Backend, cfg.DataDir)
	}
}

func TestStorageOptions(t *testing.T) {
	cfg := &Config{Backend: "sqlite", DataDir: "/d", DBPath: "/d/x.db"}
	opts := cfg.StorageOptions()
	if opts.Backend != "sqlite" || opts.Dir != "/d" || opts.DBPath != "/d/x.db" {
		t.Errorf("StorageOptions: %+v", opts)
	}
}
