package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasklist-go/internal/utils"
)

//go:embed tasks.schema.json
var schemaJSON []byte

const schemaURL = "tasks.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// taskSchema compiles the embedded schema once.
func taskSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// Schema enables JSON Schema validation in addition to the minimal checks.
	Schema bool
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
	Tasks      int
}

func (r *ValidationResult) addError(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

// EncodeTasks serializes tasks with 2-space indentation and a trailing newline.
func EncodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeTasks parses a persisted task list. A JSON null decodes as an empty list.
// Any validation failure is returned as an error wrapping one or more
// *ValidationError values.
func DecodeTasks(data []byte, opts ValidationOptions) ([]Task, error) {
	if isNull(data) {
		return []Task{}, nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}

	result := validate(data, tasks, opts)
	if !result.Valid {
		return nil, fmt.Errorf("invalid tasks: %w", errors.Join(result.Errors...))
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Validate checks a persisted task list without loading it.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	if isNull(data) {
		return &ValidationResult{Valid: true}
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		result := &ValidationResult{}
		result.addError("", fmt.Errorf("parse tasks: %w", err))
		return result
	}
	return validate(data, tasks, opts)
}

func validate(data []byte, tasks []Task, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
		Tasks:    len(tasks),
	}

	if opts.Schema {
		validateWithSchema(data, result)
	}

	// Minimal checks always run; they cover what the schema cannot.
	validateMinimal(tasks, result)
	return result
}

func validateWithSchema(data []byte, result *ValidationResult) {
	schema, err := taskSchema()
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("JSON Schema validation not available: %v", err))
		return
	}
	result.UsedSchema = true

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.addError("", fmt.Errorf("parse tasks: %w", err))
		return
	}
	if err := schema.Validate(doc); err != nil {
		appendSchemaErrors(result, err)
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Valid = false
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.addError(utils.JSONPointerToPath(err.InstanceLocation), errors.New(err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// validateMinimal performs the checks that do not need a schema.
func validateMinimal(tasks []Task, result *ValidationResult) {
	seen := make(map[string]int, len(tasks))
	for i, task := range tasks {
		path := fmt.Sprintf("[%d]", i)
		if task.ID == "" {
			result.addError(path+".id", fmt.Errorf("missing required field"))
		} else if first, dup := seen[task.ID]; dup {
			result.addError(path+".id", fmt.Errorf("duplicate id %q (first at [%d])", task.ID, first))
		} else {
			seen[task.ID] = i
		}
		if strings.TrimSpace(task.Title) == "" {
			result.addError(path+".title", fmt.Errorf("missing required field"))
		}
		if strings.TrimSpace(task.Description) == "" {
			result.addError(path+".description", fmt.Errorf("missing required field"))
		}
		if !task.Status.Valid() {
			result.addError(path+".status", fmt.Errorf("invalid status %q, must be one of: pending, completed", task.Status))
		}
	}
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
