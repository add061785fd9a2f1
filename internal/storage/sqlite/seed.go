package sqlite

import (
	"context"
	"fmt"
)

type seedTask struct {
	id          int64
	title       string
	description string
	status      string
	priority    string
	category    string
	comments    int64
	files       int64
	assignees   string
}

var seedProjects = []struct {
	id    int64
	name  string
	color string
}{
	{1, "Mobile App", "#6366f1"},
	{2, "Website Redesign", "#f59e0b"},
	{3, "Design System", "#8b5cf6"},
	{4, "Wireframes", "#10b981"},
}

var seedTasks = []seedTask{
	{1, "Brainstorming", "Brainstorming brings team members diverse experience into play.", "todo", "low", "work", 12, 0, `["user1","user2","user3"]`},
	{2, "Research", "User research helps you to create an optimal product for users.", "todo", "high", "research", 10, 3, `["user1","user2"]`},
	{3, "Wireframes", "Low fidelity wireframes include the most basic content and visuals.", "todo", "high", "design", 12, 15, `["user1","user2","user3"]`},
	{4, "Brainstorming", "Brainstorming brings team members diverse experience into play.", "inprogress", "low", "work", 12, 0, `["user1","user2","user3"]`},
	{5, "Brainstorming", "Brainstorming brings team members diverse experience into play.", "inprogress", "low", "work", 12, 0, `["user1","user2","user3"]`},
	{6, "Brainstorming", "Brainstorming brings team members diverse experience into play.", "done", "low", "work", 12, 0, `["user1","user2","user3"]`},
	{7, "Design System", "It just needs to adapt the UI from what you did before.", "done", "medium", "design", 12, 15, `["user1","user2","user3"]`},
}

// Seed inserts the sample projects and tasks when absent. Rows carry fixed
// ids, so restarting the server never duplicates them.
func (s *Store) Seed(ctx context.Context) error {
	for _, p := range seedProjects {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO projects (id, name, color) VALUES (?, ?, ?)`,
			p.id, p.name, p.color)
		if err != nil {
			return fmt.Errorf("seed project %q: %w", p.name, err)
		}
	}

	for _, t := range seedTasks {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO tasks (id, title, description, status, priority, category, comments, files, assignees)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.id, t.title, t.description, t.status, t.priority, t.category, t.comments, t.files, t.assignees)
		if err != nil {
			return fmt.Errorf("seed task %q: %w", t.title, err)
		}
	}

	return nil
}
