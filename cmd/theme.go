package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/theme"
)

// themeCommand prints the stored theme, or toggles or sets it.
func themeCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist theme", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}

	st, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer st.Close()

	current := theme.Load(ctx, st)
	if len(remaining) == 0 {
		fmt.Fprintf(stdout, "Theme: %s\n", current)
		return nil
	}

	var next theme.Theme
	if remaining[0] == "toggle" {
		next, err = theme.Toggle(ctx, st)
		if err != nil {
			return err
		}
	} else {
		next, err = theme.Parse(remaining[0])
		if err != nil {
			return err
		}
		if err := theme.Save(ctx, st, next); err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, "Theme: %s\n", next)
	return nil
}
