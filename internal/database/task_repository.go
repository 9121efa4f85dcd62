package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db DBTX
}

const taskColumns = `id, project_id, column_id, title, description, due_date, position, created_at, updated_at`

// InsertTask stores a new task, assigning its ID and timestamps.
func (r *TaskRepo) InsertTask(ctx context.Context, task *models.Task) error {
	task.ID = newID()
	task.CreatedAt = now()
	task.UpdatedAt = task.CreatedAt
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.ProjectID, task.ColumnID, task.Title, task.Description,
		timePtrToArg(task.DueDate), task.Order, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task '%s' in column %s: %w", task.Title, task.ColumnID, err)
	}
	return nil
}

// GetTaskByID retrieves a task by its ID
func (r *TaskRepo) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	return task, nil
}

// ListTasksByColumn retrieves a column's tasks in board order
func (r *TaskRepo) ListTasksByColumn(ctx context.Context, columnID string) ([]*models.Task, error) {
	return r.listTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE column_id = ? ORDER BY position, rowid`, columnID)
}

// ListTasksByProject retrieves every task of a project, grouped by column and in board order
func (r *TaskRepo) ListTasksByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	return r.listTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY column_id, position, rowid`, projectID)
}

func (r *TaskRepo) listTasks(ctx context.Context, query, key string) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks for %s: %w", key, err)
	}
	defer closeRows(rows)

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// MaxTaskOrder returns the highest order in a column; ok is false for an empty column.
func (r *TaskRepo) MaxTaskOrder(ctx context.Context, columnID string) (int, bool, error) {
	max, ok, err := maxPosition(r.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM tasks WHERE column_id = ?`, columnID))
	if err != nil {
		return 0, false, fmt.Errorf("failed to get max task order for column %s: %w", columnID, err)
	}
	return max, ok, nil
}

// UpdateTask writes the editable fields, bumping UpdatedAt.
func (r *TaskRepo) UpdateTask(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = now()
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, due_date = ?, updated_at = ? WHERE id = ?`,
		task.Title, task.Description, timePtrToArg(task.DueDate), task.UpdatedAt, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}
	return requireAffected(result, "task", task.ID)
}

// UpdateTaskOrder places a task at a position in a column (possibly a different one)
func (r *TaskRepo) UpdateTaskOrder(ctx context.Context, id, columnID string, order int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET column_id = ?, position = ?, updated_at = ? WHERE id = ?`,
		columnID, order, now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to move task %s: %w", id, err)
	}
	return requireAffected(result, "task", id)
}

// DeleteTask removes a task
func (r *TaskRepo) DeleteTask(ctx context.Context, id string) (int64, error) {
	return execCount(ctx, r.db, `DELETE FROM tasks WHERE id = ?`, id)
}

// DeleteTasksByColumn removes every task in a column
func (r *TaskRepo) DeleteTasksByColumn(ctx context.Context, columnID string) (int64, error) {
	return execCount(ctx, r.db, `DELETE FROM tasks WHERE column_id = ?`, columnID)
}

// DeleteTasksByProject removes every task in a project
func (r *TaskRepo) DeleteTasksByProject(ctx context.Context, projectID string) (int64, error) {
	return execCount(ctx, r.db, `DELETE FROM tasks WHERE project_id = ?`, projectID)
}

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	var due sql.NullTime
	if err := row.Scan(&t.ID, &t.ProjectID, &t.ColumnID, &t.Title, &t.Description,
		&due, &t.Order, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.DueDate = nullTimeToPtr(due)
	return t, nil
}
