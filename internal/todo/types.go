package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/tasklist-go/internal/utils"
)

// Status represents a task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Filter selects a subview of the task list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

var (
	// ErrInvalidFilter is returned for filter values outside all|pending|completed.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrEmptyTitle is returned by AddTask when the title is blank.
	ErrEmptyTitle = errors.New("title is required")
	// ErrEmptyDescription is returned by AddTask when the description is blank.
	ErrEmptyDescription = errors.New("description is required")
	// ErrIDCollision is returned when the id generator keeps producing ids already in use.
	ErrIDCollision = errors.New("could not generate a unique task id")
)

// Filters returns the filters in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterPending, FilterCompleted}
}

// ParseFilter parses a filter name, ignoring case and surrounding whitespace.
func ParseFilter(input string) (Filter, error) {
	f := Filter(utils.NormalizeName(input))
	if !f.Valid() {
		return "", fmt.Errorf("%w %q, must be one of: all, pending, completed", ErrInvalidFilter, input)
	}
	return f, nil
}

// Valid reports whether f is one of the three recognized filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted:
		return true
	}
	return false
}

// Matches reports whether t belongs in the filter's subview.
func (f Filter) Matches(t Task) bool {
	if f == FilterAll {
		return true
	}
	return Status(f) == t.Status
}

// Label returns the display name for the filter.
func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterPending:
		return "Pending"
	case FilterCompleted:
		return "Completed"
	}
	return string(f)
}

// Next returns the filter after f in display order, wrapping around.
func (f Filter) Next() Filter {
	filters := Filters()
	for i, candidate := range filters {
		if candidate == f {
			return filters[(i+1)%len(filters)]
		}
	}
	return FilterAll
}

// Task represents a single task in the list.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      Status    `json:"status"`
}

// IsPending returns true if the task can still be completed.
func (t Task) IsPending() bool {
	return t.Status == StatusPending
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dot path to the error location, e.g. "[2].title"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// normalizeInput trims user-supplied task text.
func normalizeInput(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return "", "", ErrEmptyTitle
	}
	if description == "" {
		return "", "", ErrEmptyDescription
	}
	return title, description, nil
}
