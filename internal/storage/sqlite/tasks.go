package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"taskboard/internal/models"
)

// TaskFilter narrows a task listing. Empty fields are not applied; set
// fields combine with AND on exact equality.
type TaskFilter struct {
	Status   string
	Priority string
	Category string
}

// NewTask carries the caller-supplied fields for task creation. Zero-value
// enum fields fall back to the documented defaults.
type NewTask struct {
	Title       string
	Description *string
	Status      string
	Priority    string
	Category    string
	DueDate     *string
	Assignees   []string
}

// TaskUpdate carries the full mutable field set for an unconditional
// overwrite. Nil pointers are written as NULL, matching the caller's exact
// payload; no partial-merge semantics.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Category    *string
	DueDate     *string
	Assignees   []string
}

const taskColumns = `id, title, description, status, priority, category, dueDate, comments, files, assignees, created_at, updated_at`

// ListTasks returns tasks matching the filter, most recently created first.
func (s *Store) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, filter.Priority)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}

	// id breaks created_at ties; CURRENT_TIMESTAMP is second resolution.
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// CreateTask inserts a new task and returns the fully materialized row.
func (s *Store) CreateTask(ctx context.Context, t NewTask) (models.Task, error) {
	if t.Title == "" {
		return models.Task{}, models.ErrTitleRequired
	}
	if t.Status == "" {
		t.Status = models.DefaultStatus
	}
	if t.Priority == "" {
		t.Priority = models.DefaultPriority
	}
	if t.Category == "" {
		t.Category = models.DefaultCategory
	}

	assignees, err := encodeAssignees(t.Assignees)
	if err != nil {
		return models.Task{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, status, priority, category, dueDate, assignees)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.Status, t.Priority, t.Category, t.DueDate, assignees)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// UpdateTask overwrites all mutable fields of a task and refreshes
// updated_at. The status enum is deliberately not checked here; only the
// status patch endpoint validates it.
func (s *Store) UpdateTask(ctx context.Context, id int64, u TaskUpdate) (models.Task, error) {
	var assignees any
	if u.Assignees != nil {
		encoded, err := encodeAssignees(u.Assignees)
		if err != nil {
			return models.Task{}, err
		}
		assignees = encoded
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks
         SET title = ?, description = ?, status = ?, priority = ?, category = ?, dueDate = ?, assignees = ?,
             updated_at = strftime('%Y-%m-%d %H:%M:%f', 'now')
         WHERE id = ?`,
		u.Title, u.Description, u.Status, u.Priority, u.Category, u.DueDate, assignees, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, ErrNotFound
	}
	return s.GetTask(ctx, id)
}

// UpdateTaskStatus moves a task to another board column.
func (s *Store) UpdateTaskStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidStatus(status) {
		return models.ErrInvalidStatus
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = strftime('%Y-%m-%d %H:%M:%f', 'now') WHERE id = ?`,
		status, id)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats counts tasks per status in a single aggregate query; the four
// counts have no ordering dependency.
func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
                COALESCE(SUM(CASE WHEN status = 'todo' THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN status = 'inprogress' THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END), 0)
         FROM tasks`).
		Scan(&stats.Total, &stats.Todo, &stats.InProgress, &stats.Done)
	if err != nil {
		return models.Stats{}, fmt.Errorf("task stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var description, status, priority, category, dueDate, assignees sql.NullString
	var comments, files sql.NullInt64

	err := row.Scan(&t.ID, &t.Title, &description, &status, &priority, &category,
		&dueDate, &comments, &files, &assignees, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("scan task: %w", err)
	}

	if description.Valid {
		t.Description = &description.String
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.String
	}
	t.Status = status.String
	t.Priority = priority.String
	t.Category = category.String
	t.Comments = comments.Int64
	t.Files = files.Int64

	if assignees.Valid {
		decoded, err := decodeAssignees(assignees.String)
		if err != nil {
			return models.Task{}, err
		}
		t.Assignees = decoded
	}
	return t, nil
}

// Assignees live in a TEXT column as a JSON array; the round trip preserves
// order and duplicates. A corrupt column surfaces as a storage error, never
// a panic.
func encodeAssignees(assignees []string) (string, error) {
	if assignees == nil {
		assignees = []string{}
	}
	encoded, err := json.Marshal(assignees)
	if err != nil {
		return "", fmt.Errorf("encode assignees: %w", err)
	}
	return string(encoded), nil
}

func decodeAssignees(raw string) ([]string, error) {
	decoded := []string{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("decode assignees: %w", err)
	}
	return decoded, nil
}
