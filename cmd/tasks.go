package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/utils"
)

// addCommand adds a pending task and prints its id.
func addCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasklist add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	title := fs.String("title", "", "Task title")
	description := fs.String("description", "", "Task description")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if *title == "" && len(remaining) > 0 {
		*title = remaining[0]
		remaining = remaining[1:]
	}
	if *description == "" && len(remaining) > 0 {
		*description = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := s.store.AddTask(ctx, *title, *description)
	if err != nil {
		return fmt.Errorf("adding task: %w", err)
	}
	fmt.Fprintln(stdout, task.ID)
	return nil
}

// doneCommand marks a task completed.
func doneCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasklist done", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := singleID(fs.Args())
	if err != nil {
		return err
	}

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	task, ok := s.store.Get(id)
	if !ok {
		fmt.Fprintf(stdout, "No task with id %s\n", id)
		return nil
	}
	if !task.IsPending() {
		fmt.Fprintf(stdout, "Already completed: %s\n", task.Title)
		return nil
	}
	if err := s.store.CompleteTask(ctx, id); err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	fmt.Fprintf(stdout, "Completed: %s\n", task.Title)
	return nil
}

// rmCommand deletes a task after confirmation.
func rmCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasklist rm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("yes", false, "Delete without asking for confirmation")
	fs.BoolVar(yes, "y", false, "Delete without asking for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := singleID(fs.Args())
	if err != nil {
		return err
	}

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	task, ok := s.store.Get(id)
	if !ok {
		fmt.Fprintf(stdout, "No task with id %s\n", id)
		return nil
	}
	if !*yes && !confirm(fmt.Sprintf("Delete %q? This cannot be undone. [y/N] ", task.Title)) {
		fmt.Fprintln(stdout, "Cancelled.")
		return nil
	}
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	fmt.Fprintf(stdout, "Deleted: %s\n", task.Title)
	return nil
}

// lsCommand prints the filter counts and the matching tasks in creation order.
func lsCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("tasklist ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filterName := fs.String("filter", string(todo.FilterAll), "Filter (all|pending|completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 1 && !isFlagSet(fs, "filter") {
		*filterName = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
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

	if err := s.store.SetFilter(filter); err != nil {
		return err
	}
	printCounts(s.store)
	printTaskList(s.store.FilteredTasks(), cfg.DateFormat)
	return nil
}

// printCounts prints "All (n)  Pending (n)  Completed (n)" with the active
// filter in brackets.
func printCounts(store *todo.Store) {
	parts := make([]string, 0, len(todo.Filters()))
	for _, f := range todo.Filters() {
		label := fmt.Sprintf("%s (%d)", f.Label(), store.CountByStatus(f))
		if f == store.Filter() {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	fmt.Fprintln(stdout, strings.Join(parts, "  "))
	fmt.Fprintln(stdout)
}

// printTaskList prints a list of tasks.
func printTaskList(tasks []todo.Task, dateFormat string) {
	if len(tasks) == 0 {
		fmt.Fprintln(stdout, "No tasks found.")
		return
	}
	for _, t := range tasks {
		printTask(t, dateFormat)
	}
}

// printTask prints a single task.
func printTask(t todo.Task, dateFormat string) {
	mark := " "
	if t.Status == todo.StatusCompleted {
		mark = "x"
	}
	fmt.Fprintf(stdout, "  [%s] %s  %s\n", mark, t.ID, t.Title)
	for _, line := range utils.SplitAndTrim(t.Description, "\n") {
		fmt.Fprintf(stdout, "      %s\n", line)
	}
	fmt.Fprintf(stdout, "      Created %s\n", t.CreatedAt.Local().Format(dateFormat))
}

func singleID(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing task id")
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	id := strings.TrimSpace(args[0])
	if id == "" {
		return "", fmt.Errorf("missing task id")
	}
	return id, nil
}

// confirm prints prompt and reads a yes/no answer from stdin. Anything but
// y or yes is a no.
func confirm(prompt string) bool {
	fmt.Fprint(stdout, prompt)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch utils.NormalizeName(line) {
	case "y", "yes":
		return true
	}
	return false
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
