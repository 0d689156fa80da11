package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasklist configuration file
# Values can be overridden by TASKLIST_* environment variables or CLI flags

# Where tasks and the theme are stored (supports ~ expansion and $VARS)
data_dir = "~/.tasklist"

# Storage backend: file, sqlite, or memory (nothing survives the process)
backend = "file"

# Database file for the sqlite backend (default: <data_dir>/tasklist.db)
# db_path = "~/.tasklist/tasklist.db"

# Check stored tasks against the JSON Schema on load
validate_schema = true

# Logging: level is debug|info|warn|error, format is text|json|logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

# Go time layouts for the TUI clock and task dates
clock_format = "15:04:05"
date_format = "02/01/2006 15:04"
`
}
