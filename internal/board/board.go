package board

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/client"
	"taskboard/internal/models"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAdd
	ModeStatus
	ModeConfirmDelete
)

// Column indexes into the three board columns.
type Column int

const (
	ColumnTodo Column = iota
	ColumnInProgress
	ColumnDone
)

var statusOptions = []struct {
	value string
	label string
}{
	{models.StatusTodo, "To Do"},
	{models.StatusInProgress, "In Progress"},
	{models.StatusDone, "Done"},
}

// priorityCycle drives the server-side priority filter toggled with "f".
var priorityCycle = []string{"", "low", "medium", "high"}

// Indexes into the add-form inputs.
const (
	formTitle = iota
	formDescription
	formPriority
	formCategory
	formFieldCount
)

// Model is the board client state: the fetched task list, the server-side
// filter set, the client-side search term and the active input mode.
type Model struct {
	api *client.Client

	width  int
	height int

	spin        spinner.Model
	tasksLoaded bool
	statsLoaded bool

	tasks []models.Task
	stats models.Stats

	filter client.TaskFilter
	search string

	currentColumn Column
	cursorRow     int

	mode         Mode
	searchInput  textinput.Model
	form         [formFieldCount]textinput.Model
	formFocus    int
	statusCursor int

	// deleteID holds the pending delete confirmation target.
	deleteID int64

	statusMsg string
}

// New creates a board model talking to the given API client.
func New(api *client.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	si := textinput.New()
	si.Prompt = ""
	si.Placeholder = "Search..."
	si.CharLimit = 128

	m := Model{
		api:         api,
		spin:        sp,
		searchInput: si,
	}

	labels := [formFieldCount]string{"Title", "Description", "Priority (low/medium/high)", "Category"}
	for i := range m.form {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = labels[i]
		ti.CharLimit = 256
		m.form[i] = ti
	}

	return m
}

// Init starts the initial task and stats fetches alongside the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks(), m.loadStats(), m.spin.Tick)
}

func (m Model) loading() bool {
	return !m.tasksLoaded || !m.statsLoaded
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tasksMsg:
		m.tasks = msg.tasks
		m.tasksLoaded = true
		m.clampCursor()
		return m, nil

	case statsMsg:
		m.stats = msg.stats
		m.statsLoaded = true
		return m, nil

	case taskCreatedMsg:
		m.tasks = append([]models.Task{msg.task}, m.tasks...)
		m.statusMsg = "Added: " + msg.task.Title
		return m, m.loadStats()

	case statusChangedMsg:
		for i := range m.tasks {
			if m.tasks[i].ID == msg.id {
				m.tasks[i].Status = msg.status
				break
			}
		}
		m.clampCursor()
		return m, m.loadStats()

	case taskDeletedMsg:
		kept := m.tasks[:0]
		for _, t := range m.tasks {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		m.tasks = kept
		m.clampCursor()
		return m, m.loadStats()

	case errMsg:
		// Failed mutations are reported once and never retried; the board
		// state stays as it is.
		m.statusMsg = "error: " + msg.err.Error()
		m.tasksLoaded = true
		m.statsLoaded = true
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeAdd:
			return m.updateAdd(msg)
		case ModeStatus:
			return m.updateStatusSelect(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "h", "left":
		if m.currentColumn > ColumnTodo {
			m.currentColumn--
			m.clampCursor()
		}
		return m, nil

	case "l", "right":
		if m.currentColumn < ColumnDone {
			m.currentColumn++
			m.clampCursor()
		}
		return m, nil

	case "j", "down":
		if m.cursorRow < len(m.visibleColumn(m.currentColumn))-1 {
			m.cursorRow++
		}
		return m, nil

	case "k", "up":
		if m.cursorRow > 0 {
			m.cursorRow--
		}
		return m, nil

	case "/":
		m.mode = ModeSearch
		m.searchInput.SetValue(m.search)
		m.searchInput.Focus()
		return m, nil

	case "a":
		m.mode = ModeAdd
		m.formFocus = formTitle
		for i := range m.form {
			m.form[i].SetValue("")
			m.form[i].Blur()
		}
		m.form[formTitle].Focus()
		return m, nil

	case "s":
		if task, ok := m.currentTask(); ok {
			m.mode = ModeStatus
			m.statusCursor = 0
			for i, opt := range statusOptions {
				if opt.value == task.Status {
					m.statusCursor = i
				}
			}
		}
		return m, nil

	case "d":
		if task, ok := m.currentTask(); ok {
			m.mode = ModeConfirmDelete
			m.deleteID = task.ID
		}
		return m, nil

	case "f":
		m.filter.Priority = nextPriority(m.filter.Priority)
		m.tasksLoaded = false
		m.statsLoaded = false
		m.cursorRow = 0
		return m, tea.Batch(m.loadTasks(), m.loadStats(), m.spin.Tick)

	case "r":
		m.tasksLoaded = false
		m.statsLoaded = false
		return m, tea.Batch(m.loadTasks(), m.loadStats(), m.spin.Tick)

	case "esc":
		if m.search != "" {
			m.search = ""
			m.statusMsg = "Search cleared"
			m.clampCursor()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.search = strings.TrimSpace(m.searchInput.Value())
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.cursorRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.form[formTitle].Value())
		if title == "" {
			m.statusMsg = "Title is required"
			return m, nil
		}
		payload := client.TaskPayload{
			Title:       title,
			Description: strings.TrimSpace(m.form[formDescription].Value()),
			Priority:    strings.TrimSpace(m.form[formPriority].Value()),
			Category:    strings.TrimSpace(m.form[formCategory].Value()),
			Assignees:   []string{},
		}
		m.mode = ModeNormal
		for i := range m.form {
			m.form[i].Blur()
		}
		return m, m.createTask(payload)

	case "tab", "shift+tab":
		m.form[m.formFocus].Blur()
		if msg.String() == "tab" {
			m.formFocus = (m.formFocus + 1) % formFieldCount
		} else {
			m.formFocus = (m.formFocus + formFieldCount - 1) % formFieldCount
		}
		m.form[m.formFocus].Focus()
		return m, nil

	case "esc":
		m.mode = ModeNormal
		for i := range m.form {
			m.form[i].Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m Model) updateStatusSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.statusCursor < len(statusOptions)-1 {
			m.statusCursor++
		}
	case "k", "up":
		if m.statusCursor > 0 {
			m.statusCursor--
		}
	case "enter":
		m.mode = ModeNormal
		if task, ok := m.currentTask(); ok {
			return m, m.changeStatus(task.ID, statusOptions[m.statusCursor].value)
		}
	case "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		id := m.deleteID
		m.deleteID = 0
		return m, m.deleteTask(id)
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.deleteID = 0
	}
	return m, nil
}

// visibleColumn returns the tasks rendered in a column: the fetched list
// narrowed by the client-side search, partitioned by status.
func (m Model) visibleColumn(col Column) []models.Task {
	return partition(filterTasks(m.tasks, m.search))[col]
}

func (m Model) currentTask() (models.Task, bool) {
	col := m.visibleColumn(m.currentColumn)
	if len(col) == 0 || m.cursorRow >= len(col) {
		return models.Task{}, false
	}
	return col[m.cursorRow], true
}

func (m *Model) clampCursor() {
	col := m.visibleColumn(m.currentColumn)
	if m.cursorRow >= len(col) {
		if len(col) > 0 {
			m.cursorRow = len(col) - 1
		} else {
			m.cursorRow = 0
		}
	}
}

func nextPriority(current string) string {
	for i, p := range priorityCycle {
		if p == current {
			return priorityCycle[(i+1)%len(priorityCycle)]
		}
	}
	return ""
}
