package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"taskboard/internal/models"
)

// ListProjects retrieves all projects ordered by name. Projects are seeded
// reference data and read-only from the API surface.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, created_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var color sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &color, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Color = color.String
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
