// Package ui provides the terminal interface over a task store.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/theme"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	clockFormat  string
	dateFormat   string
	tickInterval time.Duration
	now          func() time.Time
	logger       *log.Logger
}

// WithClockFormat sets the Go time layout for the header clock.
func WithClockFormat(layout string) TUIOption {
	return func(c *tuiConfig) {
		if layout != "" {
			c.clockFormat = layout
		}
	}
}

// WithDateFormat sets the Go time layout for task creation dates.
func WithDateFormat(layout string) TUIOption {
	return func(c *tuiConfig) {
		if layout != "" {
			c.dateFormat = layout
		}
	}
}

// WithNow sets the clock source.
func WithNow(now func() time.Time) TUIOption {
	return func(c *tuiConfig) {
		c.now = now
	}
}

// WithLogger sets the logger for UI events.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

func defaultTUIConfig() *tuiConfig {
	return &tuiConfig{
		clockFormat:  "15:04:05",
		dateFormat:   "02/01/2006 15:04",
		tickInterval: time.Second,
		now:          time.Now,
		logger:       log.New(io.Discard),
	}
}

// RunTUI starts the TUI over store. st holds the theme preference.
func RunTUI(ctx context.Context, store *todo.Store, st storage.Storage, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(ctx, store, st, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
	modeHelp
)

type confirmAction int

const (
	actionComplete confirmAction = iota
	actionDelete
)

type confirmation struct {
	action  confirmAction
	taskID  string
	message string
}

type tuiModel struct {
	ctx     context.Context
	cfg     *tuiConfig
	store   *todo.Store
	storage storage.Storage
	theme   theme.Theme
	palette theme.Palette

	mode    mode
	cursor  int
	form    taskForm
	confirm *confirmation
	status  string
	isError bool
	now     time.Time
	width   int
}

type tickMsg time.Time

const defaultWidth = 80

func newTUIModel(ctx context.Context, store *todo.Store, st storage.Storage, opts ...TUIOption) *tuiModel {
	cfg := defaultTUIConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	t := theme.Load(ctx, st)
	return &tuiModel{
		ctx:     ctx,
		cfg:     cfg,
		store:   store,
		storage: st,
		theme:   t,
		palette: theme.PaletteFor(t),
		form:    newTaskForm(defaultWidth),
		now:     cfg.now(),
		width:   defaultWidth,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tickCmd(m.cfg.tickInterval)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// The clock only redraws; it never touches the store.
		m.now = time.Time(msg)
		return m, tickCmd(m.cfg.tickInterval)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.form.setWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.store.FilteredTasks())-1 {
			m.cursor++
		}
	case "1":
		m.setFilter(todo.FilterAll)
	case "2":
		m.setFilter(todo.FilterPending)
	case "3":
		m.setFilter(todo.FilterCompleted)
	case "tab":
		m.setFilter(m.store.Filter().Next())
	case "n", "a":
		m.mode = modeForm
		m.clearStatus()
		m.form = newTaskForm(m.width)
		return m, m.form.focusTitle()
	case "c", "enter":
		if task, ok := m.selected(); ok && task.IsPending() {
			m.mode = modeConfirm
			m.confirm = &confirmation{
				action:  actionComplete,
				taskID:  task.ID,
				message: fmt.Sprintf("Mark %q as completed?", task.Title),
			}
		}
	case "d", "x", "delete":
		if task, ok := m.selected(); ok {
			m.mode = modeConfirm
			m.confirm = &confirmation{
				action:  actionDelete,
				taskID:  task.ID,
				message: fmt.Sprintf("Delete %q? This cannot be undone.", task.Title),
			}
		}
	case "t":
		m.toggleTheme()
	case "?", "h":
		m.mode = modeHelp
	}
	return m, nil
}

func (m *tuiModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "tab", "shift+tab":
		return m, m.form.toggleFocus()
	case "enter":
		if m.form.focus == focusTitle {
			return m, m.form.toggleFocus()
		}
	case "ctrl+s":
		m.submitForm()
		return m, nil
	}
	return m, m.form.update(msg)
}

func (m *tuiModel) submitForm() {
	title, description := m.form.values()
	if title == "" || description == "" {
		m.form.err = "Title and description are required."
		return
	}

	task, err := m.store.AddTask(m.ctx, title, description)
	m.mode = modeList
	if err != nil {
		m.setError(fmt.Sprintf("Could not save task: %v", err))
		if task.ID == "" {
			return
		}
	} else {
		m.setStatus(fmt.Sprintf("Added %q", task.Title))
	}
	m.cfg.logger.Debug("Task added", "id", task.ID)
	m.selectTask(task.ID)
}

func (m *tuiModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.applyConfirmation()
	case "n", "N", "esc", "q":
		m.confirm = nil
		m.mode = modeList
	}
	return m, nil
}

func (m *tuiModel) applyConfirmation() {
	c := m.confirm
	m.confirm = nil
	m.mode = modeList
	if c == nil {
		return
	}

	switch c.action {
	case actionComplete:
		if err := m.store.CompleteTask(m.ctx, c.taskID); err != nil {
			m.setError(fmt.Sprintf("Could not save task: %v", err))
		} else {
			m.setStatus("Task completed")
		}
		m.cfg.logger.Debug("Task completed", "id", c.taskID)
	case actionDelete:
		if err := m.store.DeleteTask(m.ctx, c.taskID); err != nil {
			m.setError(fmt.Sprintf("Could not save tasks: %v", err))
		} else {
			m.setStatus("Task deleted")
		}
		m.cfg.logger.Debug("Task deleted", "id", c.taskID)
	}
	m.clampCursor()
}

func (m *tuiModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	default:
		m.mode = modeList
	}
	return m, nil
}

func (m *tuiModel) setFilter(f todo.Filter) {
	if err := m.store.SetFilter(f); err != nil {
		m.setError(err.Error())
		return
	}
	m.cursor = 0
}

func (m *tuiModel) toggleTheme() {
	next, err := theme.Toggle(m.ctx, m.storage)
	if err != nil {
		m.setError(fmt.Sprintf("Could not save theme: %v", err))
		m.cfg.logger.Warn("Failed to save theme", "err", err)
	}
	m.theme = next
	m.palette = theme.PaletteFor(next)
	m.cfg.logger.Debug("Theme changed", "theme", next)
}

func (m *tuiModel) selected() (todo.Task, bool) {
	tasks := m.store.FilteredTasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return todo.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *tuiModel) selectTask(id string) {
	for i, t := range m.store.FilteredTasks() {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	n := len(m.store.FilteredTasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *tuiModel) setError(s string) {
	m.status = s
	m.isError = true
}

func (m *tuiModel) clearStatus() {
	m.status = ""
	m.isError = false
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
