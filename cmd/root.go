// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams. Tests replace them to capture output.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	logger := logging.New(stderr, logOptions(cfg))

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(ctx, cfg, logger, remainingArgs)
	case "done":
		return doneCommand(ctx, cfg, logger, remainingArgs)
	case "rm":
		return rmCommand(ctx, cfg, logger, remainingArgs)
	case "ls":
		return lsCommand(ctx, cfg, logger, remainingArgs)
	case "theme":
		return themeCommand(ctx, cfg, remainingArgs)
	case "export":
		return exportCommand(ctx, cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// logOptions maps config onto logger options.
func logOptions(cfg *config.Config) logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	opts.ReportTimestamp = cfg.LogTimestamps
	opts.ReportCaller = cfg.LogCaller
	return opts
}

// session is an opened storage backend with its task store loaded.
type session struct {
	storage storage.Storage
	store   *todo.Store
}

// openSession opens the configured backend and loads the task list.
func openSession(ctx context.Context, cfg *config.Config, logger *log.Logger) (*session, error) {
	st, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	store := todo.NewStore(st,
		todo.WithLogger(logger),
		todo.WithSchemaValidation(cfg.ValidateSchema),
	)
	store.Load(ctx)
	return &session{storage: st, store: store}, nil
}

// Close releases the storage backend.
func (s *session) Close() error {
	return s.storage.Close()
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "tasklist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasklist - A small personal task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                          Launch terminal UI (default command)")
	fmt.Fprintln(w, "  add <title> <description>    Add a pending task and print its id")
	fmt.Fprintln(w, "  done <id>                    Mark a task completed")
	fmt.Fprintln(w, "  rm <id>                      Delete a task")
	fmt.Fprintln(w, "  ls                           List tasks")
	fmt.Fprintln(w, "  theme [toggle|light|dark]    Show or change the theme")
	fmt.Fprintln(w, "  export                       Write tasks to stdout")
	fmt.Fprintln(w, "  doctor                       Check config, storage, and stored data")
	fmt.Fprintln(w, "  config                       Show the effective configuration")
	fmt.Fprintln(w, "  version                      Show version information")
	fmt.Fprintln(w, "  help                         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -title string")
	fmt.Fprintln(w, "        Task title (instead of the first argument)")
	fmt.Fprintln(w, "  -description string")
	fmt.Fprintln(w, "        Task description (instead of the second argument)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rm Options:")
	fmt.Fprintln(w, "  -yes  Delete without asking for confirmation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -filter string")
	fmt.Fprintln(w, "        Show all, pending, or completed tasks (default \"all\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format, json or yaml (default \"json\")")
	fmt.Fprintln(w, "  -filter string")
	fmt.Fprintln(w, "        Export all, pending, or completed tasks (default \"all\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options:")
	fmt.Fprintln(w, "  -v    Verbose output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example tasklist.toml")
}
