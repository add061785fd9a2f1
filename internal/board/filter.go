package board

import (
	"strings"

	"taskboard/internal/models"
)

// filterTasks narrows the fetched list by a case-insensitive substring
// match against title and description. It is layered on top of the
// server-side filters and never touches the network.
func filterTasks(tasks []models.Task, term string) []models.Task {
	if term == "" {
		return tasks
	}

	needle := strings.ToLower(term)
	var filtered []models.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			filtered = append(filtered, t)
			continue
		}
		if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), needle) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// partition splits tasks into the three board columns by status, keeping
// the incoming order. Tasks with an unknown status are not shown.
func partition(tasks []models.Task) [3][]models.Task {
	var columns [3][]models.Task
	for _, t := range tasks {
		switch t.Status {
		case models.StatusTodo:
			columns[ColumnTodo] = append(columns[ColumnTodo], t)
		case models.StatusInProgress:
			columns[ColumnInProgress] = append(columns[ColumnInProgress], t)
		case models.StatusDone:
			columns[ColumnDone] = append(columns[ColumnDone], t)
		}
	}
	return columns
}
