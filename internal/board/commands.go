package board

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/client"
	"taskboard/internal/models"
)

type tasksMsg struct{ tasks []models.Task }

type statsMsg struct{ stats models.Stats }

type taskCreatedMsg struct{ task models.Task }

type statusChangedMsg struct {
	id     int64
	status string
}

type taskDeletedMsg struct{ id int64 }

type errMsg struct{ err error }

const requestTimeout = 10 * time.Second

func (m Model) loadTasks() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		tasks, err := m.api.ListTasks(ctx, filter)
		if err != nil {
			return errMsg{err: err}
		}
		return tasksMsg{tasks: tasks}
	}
}

func (m Model) loadStats() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		stats, err := m.api.Stats(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return statsMsg{stats: stats}
	}
}

func (m Model) createTask(payload client.TaskPayload) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		task, err := m.api.CreateTask(ctx, payload)
		if err != nil {
			return errMsg{err: err}
		}
		return taskCreatedMsg{task: task}
	}
}

func (m Model) changeStatus(id int64, status string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.api.UpdateTaskStatus(ctx, id, status); err != nil {
			return errMsg{err: err}
		}
		return statusChangedMsg{id: id, status: status}
	}
}

func (m Model) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.api.DeleteTask(ctx, id); err != nil {
			return errMsg{err: err}
		}
		return taskDeletedMsg{id: id}
	}
}
