package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// tuiCommand launches the TUI. Logs go to a file under the data dir while the
// alternate screen is active.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}
	if !ui.IsTTY(stdout) {
		return fmt.Errorf("tui requires a TTY; use ls, add, done, or rm instead")
	}

	fileLog, err := logging.OpenFile(cfg.LogFilePath(), logOptions(cfg))
	if err != nil {
		return err
	}
	defer fileLog.Close()

	s, err := openSession(ctx, cfg, fileLog.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	fileLog.Logger.Info("Starting TUI", "backend", cfg.Backend, "tasks", s.store.Len())
	return ui.RunTUI(ctx, s.store, s.storage,
		ui.WithClockFormat(cfg.ClockFormat),
		ui.WithDateFormat(cfg.DateFormat),
		ui.WithLogger(fileLog.Logger),
	)
}
