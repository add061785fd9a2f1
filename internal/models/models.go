package models

import (
	"errors"
	"time"
)

// Task represents a single card on the board.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	DueDate     *string   `json:"dueDate"`
	Comments    int64     `json:"comments"`
	Files       int64     `json:"files"`
	Assignees   []string  `json:"assignees"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project is a read-only grouping entity shown next to the board.
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats aggregates task counts per status plus the total.
type Stats struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inprogress"`
	Done       int64 `json:"done"`
}

// Statuses supported by the board columns.
const (
	StatusTodo       = "todo"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
)

// Defaults applied when a create request omits the field.
const (
	DefaultStatus   = StatusTodo
	DefaultPriority = "medium"
	DefaultCategory = "work"
)

// ValidTaskStatuses enumerates the statuses accepted by the status patch
// endpoint. Full update deliberately does not consult this set.
var ValidTaskStatuses = map[string]struct{}{
	StatusTodo:       {},
	StatusInProgress: {},
	StatusDone:       {},
}

var (
	ErrTitleRequired = errors.New("Title is required")
	ErrInvalidStatus = errors.New("Invalid status")
)

// ValidStatus reports whether s is one of the three recognized statuses.
func ValidStatus(s string) bool {
	_, ok := ValidTaskStatuses[s]
	return ok
}
