package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasklist-go/internal/theme"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/utils"
)

const appTitle = "Task List"

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeHeader(&b)

	switch m.mode {
	case modeHelp:
		writeHelp(&b, m.palette)
		return b.String()
	case modeForm:
		m.writeForm(&b)
		return b.String()
	case modeConfirm:
		m.writeConfirm(&b)
		return b.String()
	}

	m.writeFilterBar(&b)
	m.writeTasks(&b)
	m.writeStatus(&b)
	writeFooter(&b, m.palette)
	return b.String()
}

func (m *tuiModel) writeHeader(b *strings.Builder) {
	p := m.palette
	title := p.Title.Render(appTitle)
	clock := p.Clock.Render(m.now.Format(m.cfg.clockFormat))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(title + strings.Repeat(" ", gap) + clock + "\n\n")
}

func (m *tuiModel) writeFilterBar(b *strings.Builder) {
	active := m.store.Filter()
	parts := make([]string, 0, len(todo.Filters()))
	for _, f := range todo.Filters() {
		label := fmt.Sprintf("%s (%d)", f.Label(), m.store.CountByStatus(f))
		if f == active {
			parts = append(parts, m.palette.FilterActive.Render(label))
		} else {
			parts = append(parts, m.palette.FilterInactive.Render(label))
		}
	}
	b.WriteString(strings.Join(parts, "  ") + "\n\n")
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	p := m.palette
	tasks := m.store.FilteredTasks()
	if len(tasks) == 0 {
		b.WriteString(p.Muted.Render("  No tasks found.") + "\n")
		b.WriteString(p.Muted.Render("  Press n to add one.") + "\n\n")
		return
	}

	for i, t := range tasks {
		cursor := "  "
		title := p.Text.Render(t.Title)
		if i == m.cursor {
			cursor = p.Selected.Render("> ")
			title = p.Selected.Render(t.Title)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, title, statusBadge(p, t.Status)))
		b.WriteString("    " + p.Text.Render(utils.Truncate(firstLine(t.Description), m.descriptionWidth())) + "\n")
		b.WriteString("    " + p.Muted.Render("Created "+t.CreatedAt.Local().Format(m.cfg.dateFormat)) + "\n\n")
	}
}

func (m *tuiModel) descriptionWidth() int {
	w := m.width - 4
	if w < minFormWidth {
		w = minFormWidth
	}
	return w
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func statusBadge(p theme.Palette, s todo.Status) string {
	if s == todo.StatusCompleted {
		return p.Completed.Render("[completed]")
	}
	return p.Pending.Render("[pending]")
}

func (m *tuiModel) writeStatus(b *strings.Builder) {
	if m.status == "" {
		return
	}
	if m.isError {
		b.WriteString(m.palette.Error.Render(m.status) + "\n\n")
		return
	}
	b.WriteString(m.palette.Success.Render(m.status) + "\n\n")
}

func (m *tuiModel) writeForm(b *strings.Builder) {
	p := m.palette
	var body strings.Builder
	body.WriteString(p.Title.Render("New Task") + "\n\n")
	body.WriteString(p.Muted.Render("Title") + "\n")
	body.WriteString(m.form.title.View() + "\n\n")
	body.WriteString(p.Muted.Render("Description") + "\n")
	body.WriteString(m.form.description.View() + "\n")
	if m.form.err != "" {
		body.WriteString("\n" + p.Error.Render(m.form.err) + "\n")
	}
	b.WriteString(p.Modal.Render(body.String()) + "\n\n")
	b.WriteString(p.Muted.Render("tab switch field | ctrl+s save | esc cancel") + "\n")
}

func (m *tuiModel) writeConfirm(b *strings.Builder) {
	if m.confirm == nil {
		return
	}
	p := m.palette
	heading := p.Title.Render("Complete Task")
	if m.confirm.action == actionDelete {
		heading = p.Danger.Render("Delete Task")
	}
	body := heading + "\n\n" + p.Text.Render(m.confirm.message)
	b.WriteString(p.Modal.Render(body) + "\n\n")
	b.WriteString(p.Muted.Render("y/enter confirm | n/esc cancel") + "\n")
}

func writeHelp(b *strings.Builder, p theme.Palette) {
	b.WriteString(p.Title.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  j/k, up/down   Move selection\n")
	b.WriteString("  1 / 2 / 3      Show all / pending / completed\n")
	b.WriteString("  tab            Next filter\n")
	b.WriteString("  n              New task\n")
	b.WriteString("  c, enter       Complete selected task\n")
	b.WriteString("  d, x           Delete selected task\n")
	b.WriteString("  t              Toggle light/dark theme\n")
	b.WriteString("  ?, h           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
	b.WriteString(p.Muted.Render("Press any key to return") + "\n")
}

func writeFooter(b *strings.Builder, p theme.Palette) {
	b.WriteString(p.Muted.Render("n new | c complete | d delete | t theme | ? help | q quit") + "\n")
}
