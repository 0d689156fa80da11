package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/export"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// exportCommand writes tasks to stdout as JSON or YAML.
func exportCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasklist export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatName := fs.String("format", string(export.FormatJSON), "Output format (json|yaml)")
	filterName := fs.String("filter", string(todo.FilterAll), "Filter (all|pending|completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	filter, err := todo.ParseFilter(*filterName)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	return export.Write(stdout, s.store.TasksFor(filter), format)
}
