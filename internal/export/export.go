// Package export writes the task list in portable formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/utils"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat for anything but json or yaml.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name. "yml" is accepted as yaml.
func ParseFormat(input string) (Format, error) {
	switch utils.NormalizeName(input) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w %q (expected json|yaml)", ErrUnknownFormat, input)
}

// yamlTask mirrors todo.Task with YAML field names matching the JSON ones.
type yamlTask struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	CreatedAt   string `yaml:"createdAt"`
	Status      string `yaml:"status"`
}

// Write encodes tasks to w.
func Write(w io.Writer, tasks []todo.Task, format Format) error {
	switch format {
	case FormatJSON:
		data, err := todo.EncodeTasks(tasks)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		out := make([]yamlTask, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, yamlTask{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
				Status:      string(t.Status),
			})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}
