package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/models"
)

var (
	colorSubtle    = lipgloss.Color("240")
	colorHighlight = lipgloss.Color("236")
	colorPrimary   = lipgloss.Color("62")

	columnColors = [3]lipgloss.Color{
		lipgloss.Color("39"),  // To Do
		lipgloss.Color("214"), // In Progress
		lipgloss.Color("42"),  // Done
	}

	priorityColors = map[string]lipgloss.Color{
		"low":    lipgloss.Color("214"),
		"medium": lipgloss.Color("39"),
		"high":   lipgloss.Color("196"),
	}

	hintStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	inputBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)
)

var columnTitles = [3]string{"To Do", "In Progress", "Done"}

// View renders the board.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading() {
		return fmt.Sprintf("\n  %s Loading board...\n", m.spin.View())
	}

	colWidth := (m.width - 4) / 3
	if colWidth < 24 {
		colWidth = 24
	}

	// Header counts come from the server stats, not the visible slices, so
	// they keep reflecting the unfiltered truth while a search is active.
	counts := [3]int64{m.stats.Todo, m.stats.InProgress, m.stats.Done}

	var headers []string
	for i := range columnTitles {
		style := lipgloss.NewStyle().
			Bold(true).
			Foreground(columnColors[i]).
			Width(colWidth).
			Align(lipgloss.Center)
		if Column(i) == m.currentColumn {
			style = style.Background(colorHighlight)
		}
		headers = append(headers, style.Render(fmt.Sprintf("%s (%d)", columnTitles[i], counts[i])))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headers...)

	columnStyle := lipgloss.NewStyle().
		Width(colWidth).
		Height(m.height - 5).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle)

	var cols []string
	for i := range columnTitles {
		tasks := m.visibleColumn(Column(i))
		active := Column(i) == m.currentColumn

		var cards []string
		for j, task := range tasks {
			cards = append(cards, m.renderCard(task, colWidth, active && j == m.cursorRow))
		}

		content := strings.Join(cards, "\n")
		if len(tasks) == 0 {
			content = hintStyle.Italic(true).Render("(empty)")
		}

		cs := columnStyle
		if active {
			cs = cs.BorderForeground(colorPrimary)
		}
		cols = append(cols, cs.Render(content))
	}
	columnsRow := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	return lipgloss.JoinVertical(lipgloss.Left, headerRow, columnsRow, m.renderFooter())
}

func (m Model) renderCard(task models.Task, colWidth int, selected bool) string {
	cardStyle := lipgloss.NewStyle().Width(colWidth - 4).Padding(0, 1)
	if selected {
		cardStyle = cardStyle.Background(colorHighlight)
	}

	glyph := lipgloss.NewStyle().
		Foreground(priorityColors[task.Priority]).
		Render("●")

	var meta string
	if task.Comments > 0 || task.Files > 0 || len(task.Assignees) > 0 {
		meta = hintStyle.Render(fmt.Sprintf(" ⊙%d ⎘%d ⚇%d", task.Comments, task.Files, len(task.Assignees)))
	}

	title := task.Title
	maxTitle := colWidth - 18
	if maxTitle < 10 {
		maxTitle = 10
	}
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	return cardStyle.Render(fmt.Sprintf("%s %s%s", glyph, title, meta))
}

func (m Model) renderFooter() string {
	switch m.mode {
	case ModeSearch:
		return inputBoxStyle.Render("Search: " + m.searchInput.View())

	case ModeAdd:
		var lines []string
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render("New task"))
		labels := [formFieldCount]string{"Title", "Description", "Priority", "Category"}
		for i := range m.form {
			marker := "  "
			if i == m.formFocus {
				marker = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%s: %s", marker, labels[i], m.form[i].View()))
		}
		lines = append(lines, hintStyle.Render("tab: next field • enter: create • esc: cancel"))
		return inputBoxStyle.Render(strings.Join(lines, "\n"))

	case ModeStatus:
		var lines []string
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Move to:"))
		for i, opt := range statusOptions {
			style := lipgloss.NewStyle()
			if i == m.statusCursor {
				style = style.Background(colorHighlight)
			}
			lines = append(lines, style.Render(" "+opt.label))
		}
		lines = append(lines, hintStyle.Render("j/k: navigate • enter: select • esc: cancel"))
		return inputBoxStyle.Render(strings.Join(lines, "\n"))

	case ModeConfirmDelete:
		title := ""
		if task, ok := m.currentTask(); ok {
			title = task.Title
		}
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).
			Render(fmt.Sprintf("Delete '%s'? (y/n)", title))
	}

	var status []string
	if m.search != "" {
		status = append(status, "Search: "+m.search)
	}
	if m.filter.Priority != "" {
		status = append(status, "Priority: "+m.filter.Priority)
	}
	if m.statusMsg != "" {
		status = append(status, m.statusMsg)
	}

	hints := "h/l: column • j/k: nav • a: add • s: status • d: del • /: search • f: priority • r: reload • q: quit"
	if len(status) > 0 {
		return lipgloss.NewStyle().Foreground(colorPrimary).Render("["+strings.Join(status, " | ")+"] ") +
			hintStyle.Render(hints)
	}
	return hintStyle.Render(hints)
}
