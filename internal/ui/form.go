package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formFocus int

const (
	focusTitle formFocus = iota
	focusDescription
)

const (
	titleCharLimit       = 120
	descriptionCharLimit = 2000
	minFormWidth         = 20
)

// taskForm is the add-task form: a single-line title and a multi-line description.
type taskForm struct {
	title       textinput.Model
	description textarea.Model
	focus       formFocus
	err         string
}

func newTaskForm(width int) taskForm {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = titleCharLimit
	title.Prompt = ""

	description := textarea.New()
	description.Placeholder = "Details"
	description.CharLimit = descriptionCharLimit
	description.ShowLineNumbers = false
	description.SetHeight(4)

	f := taskForm{title: title, description: description}
	f.setWidth(width)
	return f
}

func (f *taskForm) setWidth(width int) {
	w := width - 8
	if w < minFormWidth {
		w = minFormWidth
	}
	f.title.Width = w
	f.description.SetWidth(w)
}

func (f *taskForm) focusTitle() tea.Cmd {
	f.focus = focusTitle
	f.description.Blur()
	return f.title.Focus()
}

func (f *taskForm) toggleFocus() tea.Cmd {
	if f.focus == focusTitle {
		f.focus = focusDescription
		f.title.Blur()
		return f.description.Focus()
	}
	return f.focusTitle()
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		f.err = ""
	}
	var cmd tea.Cmd
	if f.focus == focusTitle {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

// values returns the trimmed field contents.
func (f *taskForm) values() (string, string) {
	return strings.TrimSpace(f.title.Value()), strings.TrimSpace(f.description.Value())
}
