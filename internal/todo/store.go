package todo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/tasklist-go/internal/storage"
)

// maxIDAttempts bounds how often AddTask asks the generator for a fresh id.
const maxIDAttempts = 8

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the task id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithLogger sets the logger used for degraded loads and persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithSchemaValidation enables or disables JSON Schema checks on Load.
func WithSchemaValidation(enabled bool) Option {
	return func(s *Store) {
		s.validateSchema = enabled
	}
}

// Store is the single source of truth for tasks and the active filter.
// It is not safe for concurrent use; one caller drives it at a time.
type Store struct {
	storage        storage.Storage
	tasks          []Task
	filter         Filter
	now            func() time.Time
	newID          func() string
	logger         *log.Logger
	validateSchema bool
}

// NewStore creates an empty store backed by st. Call Load to read persisted tasks.
func NewStore(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage:        st,
		tasks:          []Task{},
		filter:         FilterAll,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          newTaskID,
		validateSchema: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// newTaskID returns a time-ordered UUID.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// LoadResult describes what Load found in storage.
type LoadResult struct {
	// Found is true when a value was stored under the tasks key.
	Found bool
	// Err is the reason the stored value was discarded, if it was.
	Err error
	// Tasks is the number of tasks loaded.
	Tasks int
}

// Recovered reports whether a stored value was discarded.
func (r LoadResult) Recovered() bool {
	return r.Err != nil
}

// Load replaces the in-memory list with the persisted one. Missing or
// malformed data loads as an empty list; the cause is logged and returned in
// the result, never as an error.
func (s *Store) Load(ctx context.Context) LoadResult {
	s.tasks = []Task{}

	data, err := s.storage.Get(ctx, storage.KeyTasks)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("No stored tasks", "key", storage.KeyTasks)
		return LoadResult{}
	}
	if err != nil {
		s.logger.Warn("Could not read stored tasks, starting empty", "key", storage.KeyTasks, "err", err)
		return LoadResult{Err: err}
	}

	tasks, err := DecodeTasks(data, ValidationOptions{Schema: s.validateSchema})
	if err != nil {
		s.logger.Warn("Stored tasks are malformed, starting empty", "key", storage.KeyTasks, "err", err)
		return LoadResult{Found: true, Err: err}
	}

	s.tasks = tasks
	s.logger.Debug("Loaded tasks", "tasks", len(tasks))
	return LoadResult{Found: true, Tasks: len(tasks)}
}

// AddTask appends a new pending task and persists the list. Title and
// description are trimmed and must be non-empty. If persisting fails the task
// stays in memory and is returned along with the error.
func (s *Store) AddTask(ctx context.Context, title, description string) (Task, error) {
	title, description, err := normalizeInput(title, description)
	if err != nil {
		return Task{}, err
	}

	id, err := s.uniqueID()
	if err != nil {
		return Task{}, err
	}

	task := Task{
		ID:          id,
		Title:       title,
		Description: description,
		CreatedAt:   s.now(),
		Status:      StatusPending,
	}
	s.tasks = append(s.tasks, task)
	return task, s.persist(ctx)
}

func (s *Store) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDCollision
}

// CompleteTask marks a pending task completed and persists the list.
// Unknown ids and already completed tasks are left alone.
func (s *Store) CompleteTask(ctx context.Context, id string) error {
	i := s.index(id)
	if i < 0 || s.tasks[i].Status != StatusPending {
		return nil
	}
	s.tasks[i].Status = StatusCompleted
	return s.persist(ctx)
}

// DeleteTask removes a task and persists the list. Unknown ids are ignored.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return s.persist(ctx)
}

// SetFilter changes the active filter. Unknown values are rejected and the
// current filter is kept.
func (s *Store) SetFilter(f Filter) error {
	if !f.Valid() {
		return fmt.Errorf("%w %q, must be one of: all, pending, completed", ErrInvalidFilter, f)
	}
	s.filter = f
	return nil
}

// Filter returns the active filter.
func (s *Store) Filter() Filter {
	return s.filter
}

// FilteredTasks returns the tasks matching the active filter in creation order.
func (s *Store) FilteredTasks() []Task {
	return s.TasksFor(s.filter)
}

// TasksFor returns the tasks matching f in creation order. An unknown filter
// matches nothing.
func (s *Store) TasksFor(f Filter) []Task {
	result := make([]Task, 0, len(s.tasks))
	if !f.Valid() {
		return result
	}
	for _, t := range s.tasks {
		if f.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}

// CountByStatus returns the number of tasks f would show.
func (s *Store) CountByStatus(f Filter) int {
	if !f.Valid() {
		return 0
	}
	n := 0
	for _, t := range s.tasks {
		if f.Matches(t) {
			n++
		}
	}
	return n
}

// Tasks returns a copy of the full task list.
func (s *Store) Tasks() []Task {
	return s.TasksFor(FilterAll)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full list under the tasks key.
func (s *Store) persist(ctx context.Context) error {
	data, err := EncodeTasks(s.tasks)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, storage.KeyTasks, data); err != nil {
		s.logger.Error("Failed to save tasks", "key", storage.KeyTasks, "tasks", len(s.tasks), "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
