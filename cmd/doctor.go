package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/theme"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// doctorCommand checks config, storage, and the validity of stored data.
func doctorCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	fmt.Fprintln(stdout, "Tasklist Doctor")
	fmt.Fprintln(stdout, "===============")
	fmt.Fprintln(stdout)

	allOK := true

	// Config
	fmt.Fprintln(stdout, "Config:")
	if len(cfg.ConfigFiles) == 0 {
		fmt.Fprintln(stdout, "  Files: (none, using defaults)")
	}
	for _, path := range cfg.ConfigFiles {
		fmt.Fprintf(stdout, "  File: %s\n", path)
	}
	if *verbose {
		for _, key := range config.FieldKeys() {
			fmt.Fprintf(stdout, "  %s = %s (%s)\n", key, cfg.Value(key), cfg.Source(key))
		}
	}
	fmt.Fprintln(stdout, "  ✅ OK")
	fmt.Fprintln(stdout)

	// Data directory
	fmt.Fprintf(stdout, "Data directory: %s\n", cfg.DataDir)
	if info, err := os.Stat(cfg.DataDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first save)")
		} else {
			fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(stdout, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	fmt.Fprintln(stdout)

	// Storage backend
	fmt.Fprintf(stdout, "Storage: %s\n", cfg.Backend)
	st, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "⚠️  Some checks failed. Tasklist may not function correctly.")
		return fmt.Errorf("doctor checks failed")
	}
	defer st.Close()
	if location := storageLocation(st); location != "" {
		fmt.Fprintf(stdout, "  Location: %s\n", location)
	}
	fmt.Fprintln(stdout, "  ✅ OK")
	fmt.Fprintln(stdout)

	// Stored tasks
	fmt.Fprintln(stdout, "Stored tasks:")
	if !checkStoredTasks(ctx, st, cfg.ValidateSchema, *verbose) {
		allOK = false
	}
	fmt.Fprintln(stdout)

	// Theme
	fmt.Fprintf(stdout, "Theme: %s\n", theme.Load(ctx, st))
	fmt.Fprintf(stdout, "TUI log file: %s\n", cfg.LogFilePath())
	fmt.Fprintln(stdout)

	// Overall status
	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed. Tasklist may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkStoredTasks validates the persisted task list and reports the result.
func checkStoredTasks(ctx context.Context, st storage.Storage, schema, verbose bool) bool {
	data, err := st.Get(ctx, storage.KeyTasks)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintln(stdout, "  ⚠️  Nothing stored yet (starts empty)")
		return true
	}
	if err != nil {
		fmt.Fprintf(stdout, "  ❌ Read error: %v\n", err)
		return false
	}

	result := todo.Validate(data, todo.ValidationOptions{Schema: schema})
	for _, w := range result.Warnings {
		fmt.Fprintf(stdout, "  ⚠️  %s\n", w)
	}
	if !result.Valid {
		fmt.Fprintln(stdout, "  ❌ Validation failed (the list will load as empty):")
		for _, e := range result.Errors {
			fmt.Fprintf(stdout, "     - %v\n", e)
		}
		return false
	}
	if result.UsedSchema {
		fmt.Fprintln(stdout, "  ✅ Valid (JSON Schema)")
	} else {
		fmt.Fprintln(stdout, "  ✅ Valid")
	}
	fmt.Fprintf(stdout, "  Tasks: %d\n", result.Tasks)

	if verbose {
		tasks, err := todo.DecodeTasks(data, todo.ValidationOptions{})
		if err == nil {
			for _, t := range tasks {
				fmt.Fprintf(stdout, "    - [%s] %s: %s\n", t.Status, t.ID, t.Title)
			}
		}
	}
	return true
}

func storageLocation(st storage.Storage) string {
	switch s := st.(type) {
	case *storage.FileStore:
		return s.Dir
	case *storage.SQLiteStore:
		return s.Path()
	}
	return ""
}
