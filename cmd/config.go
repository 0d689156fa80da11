package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/tasklist-go/internal/config"
)

// configCommand prints each setting with where it came from, or an example file.
func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasklist config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example tasklist.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	for _, path := range cfg.ConfigFiles {
		fmt.Fprintf(stdout, "# %s\n", path)
	}
	for _, key := range config.FieldKeys() {
		fmt.Fprintf(stdout, "%s = %q  # %s\n", key, cfg.Value(key), cfg.Source(key))
	}
	return nil
}
