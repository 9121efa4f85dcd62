package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db DBTX
}

const projectColumns = `id, user_id, name, description, created_at, updated_at`

// InsertProject stores a new project, assigning its ID and timestamps.
func (r *ProjectRepo) InsertProject(ctx context.Context, project *models.Project) error {
	project.ID = newID()
	project.CreatedAt = now()
	project.UpdatedAt = project.CreatedAt
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		project.ID, project.UserID, project.Name, project.Description, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project '%s': %w", project.Name, err)
	}
	return nil
}

// GetProjectByID retrieves a project by its ID
func (r *ProjectRepo) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return project, nil
}

// ListProjectsByUser retrieves the projects owned by a user, newest first
func (r *ProjectRepo) ListProjectsByUser(ctx context.Context, userID string) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects for user %s: %w", userID, err)
	}
	defer closeRows(rows)

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// UpdateProject writes the name and description, bumping UpdatedAt.
func (r *ProjectRepo) UpdateProject(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		project.Name, project.Description, project.UpdatedAt, project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", project.ID, err)
	}
	return requireAffected(result, "project", project.ID)
}

// DeleteProject removes the project row only; children must be removed first.
func (r *ProjectRepo) DeleteProject(ctx context.Context, id string) (int64, error) {
	return execCount(ctx, r.db, `DELETE FROM projects WHERE id = ?`, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	p := &models.Project{}
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func execCount(ctx context.Context, db DBTX, query string, args ...any) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func requireAffected(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, models.ErrNotFound)
	}
	return nil
}
