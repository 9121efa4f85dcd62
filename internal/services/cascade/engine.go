// Package cascade removes a project or column together with everything below it.
package cascade

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Store is the subset of the persistence store the engine needs.
type Store interface {
	DeleteTasksByProject(ctx context.Context, projectID string) (int64, error)
	DeleteTasksByColumn(ctx context.Context, columnID string) (int64, error)
	DeleteColumnsByProject(ctx context.Context, projectID string) (int64, error)
	DeleteColumn(ctx context.Context, id string) (int64, error)
	DeleteProject(ctx context.Context, id string) (int64, error)
}

// Result counts the rows removed by a cascade
type Result struct {
	Columns int64
	Tasks   int64
}

// Engine deletes children before their parent. Run it inside a transaction
// so the cascade is atomic.
type Engine struct {
	store Store
}

// NewEngine creates an engine over store
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// DeleteProject removes the tasks, the columns and then the project.
func (e *Engine) DeleteProject(ctx context.Context, projectID string) (Result, error) {
	var res Result
	var err error

	if res.Tasks, err = e.store.DeleteTasksByProject(ctx, projectID); err != nil {
		return Result{}, fmt.Errorf("failed to delete tasks of project %s: %w", projectID, err)
	}
	if res.Columns, err = e.store.DeleteColumnsByProject(ctx, projectID); err != nil {
		return Result{}, fmt.Errorf("failed to delete columns of project %s: %w", projectID, err)
	}

	n, err := e.store.DeleteProject(ctx, projectID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	if n == 0 {
		return Result{}, fmt.Errorf("project %s: %w", projectID, models.ErrNotFound)
	}
	return res, nil
}

// DeleteColumn removes the column's tasks and then the column.
func (e *Engine) DeleteColumn(ctx context.Context, columnID string) (Result, error) {
	tasks, err := e.store.DeleteTasksByColumn(ctx, columnID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to delete tasks of column %s: %w", columnID, err)
	}

	n, err := e.store.DeleteColumn(ctx, columnID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to delete column %s: %w", columnID, err)
	}
	if n == 0 {
		return Result{}, fmt.Errorf("column %s: %w", columnID, models.ErrNotFound)
	}
	return Result{Columns: 1, Tasks: tasks}, nil
}
