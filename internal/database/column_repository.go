package database

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// ColumnRepo handles all column-related database operations.
type ColumnRepo struct {
	db DBTX
}

const columnColumns = `id, project_id, name, position, created_at, updated_at`

// InsertColumns stores one or more columns, assigning IDs and timestamps.
// Callers are expected to have chosen each column's Order.
func (r *ColumnRepo) InsertColumns(ctx context.Context, columns ...*models.Column) error {
	for _, column := range columns {
		column.ID = newID()
		column.CreatedAt = now()
		column.UpdatedAt = column.CreatedAt
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO columns (`+columnColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
			column.ID, column.ProjectID, column.Name, column.Order, column.CreatedAt, column.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert column '%s' for project %s: %w", column.Name, column.ProjectID, err)
		}
	}
	return nil
}

// GetColumnByID retrieves a column by its ID
func (r *ColumnRepo) GetColumnByID(ctx context.Context, id string) (*models.Column, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columnColumns+` FROM columns WHERE id = ?`, id)
	column, err := scanColumn(row)
	if err != nil {
		return nil, notFound(err, "column", id)
	}
	return column, nil
}

// ListColumnsByProject retrieves a project's columns in board order.
// Equal orders fall back to insertion order.
func (r *ColumnRepo) ListColumnsByProject(ctx context.Context, projectID string) ([]*models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columnColumns+` FROM columns WHERE project_id = ? ORDER BY position, rowid`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns for project %s: %w", projectID, err)
	}
	defer closeRows(rows)

	columns := make([]*models.Column, 0)
	for rows.Next() {
		column, err := scanColumn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, column)
	}
	return columns, rows.Err()
}

// MaxColumnOrder returns the highest order in a project; ok is false for an empty project.
func (r *ColumnRepo) MaxColumnOrder(ctx context.Context, projectID string) (int, bool, error) {
	max, ok, err := maxPosition(r.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM columns WHERE project_id = ?`, projectID))
	if err != nil {
		return 0, false, fmt.Errorf("failed to get max column order for project %s: %w", projectID, err)
	}
	return max, ok, nil
}

// UpdateColumn renames a column, bumping UpdatedAt.
func (r *ColumnRepo) UpdateColumn(ctx context.Context, column *models.Column) error {
	column.UpdatedAt = now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE columns SET name = ?, updated_at = ? WHERE id = ?`,
		column.Name, column.UpdatedAt, column.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update column %s: %w", column.ID, err)
	}
	return requireAffected(result, "column", column.ID)
}

// UpdateColumnOrder sets a column's position
func (r *ColumnRepo) UpdateColumnOrder(ctx context.Context, id string, order int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE columns SET position = ?, updated_at = ? WHERE id = ?`,
		order, now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update order of column %s: %w", id, err)
	}
	return requireAffected(result, "column", id)
}

// DeleteColumn removes the column row only
func (r *ColumnRepo) DeleteColumn(ctx context.Context, id string) (int64, error) {
	return execCount(ctx, r.db, `DELETE FROM columns WHERE id = ?`, id)
}

// DeleteColumnsByProject removes every column of a project
func (r *ColumnRepo) DeleteColumnsByProject(ctx context.Context, projectID string) (int64, error) {
	return execCount(ctx, r.db, `DELETE FROM columns WHERE project_id = ?`, projectID)
}

func scanColumn(row rowScanner) (*models.Column, error) {
	c := &models.Column{}
	if err := row.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Order, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}
