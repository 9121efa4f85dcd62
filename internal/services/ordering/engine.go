// Package ordering assigns and rewrites the integer order of columns within
// a project and of tasks within a column.
//
// Orders need not be contiguous. Reorders validate every update before the
// first write, so callers running the engine inside a transaction never
// expose a partial reorder.
package ordering

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Store is the subset of the persistence store the engine needs.
type Store interface {
	GetColumnByID(ctx context.Context, id string) (*models.Column, error)
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)
	MaxColumnOrder(ctx context.Context, projectID string) (int, bool, error)
	MaxTaskOrder(ctx context.Context, columnID string) (int, bool, error)
	UpdateColumnOrder(ctx context.Context, id string, order int) error
	UpdateTaskOrder(ctx context.Context, id, columnID string, order int) error
}

// Engine implements append, reorder and move-across-parent
type Engine struct {
	store Store
}

// NewEngine creates an engine over store
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// NextColumnOrder returns the order for a column appended to projectID.
func (e *Engine) NextColumnOrder(ctx context.Context, projectID string) (int, error) {
	return next(e.store.MaxColumnOrder(ctx, projectID))
}

// NextTaskOrder returns the order for a task appended to columnID.
func (e *Engine) NextTaskOrder(ctx context.Context, columnID string) (int, error) {
	return next(e.store.MaxTaskOrder(ctx, columnID))
}

func next(max int, ok bool, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	if !ok {
		return models.FirstOrder, nil
	}
	if max >= models.MaxOrder {
		return 0, fmt.Errorf("%w: no order left after %d, reorder the siblings first", models.ErrValidation, max)
	}
	return max + 1, nil
}

// ReorderColumns assigns new orders to columns of projectID.
func (e *Engine) ReorderColumns(ctx context.Context, projectID string, updates []models.OrderUpdate) error {
	if err := validateUpdates(updates); err != nil {
		return err
	}
	for _, u := range updates {
		column, err := e.store.GetColumnByID(ctx, u.ID)
		if err != nil {
			return err
		}
		if column.ProjectID != projectID {
			return fmt.Errorf("column %s is not in project %s: %w", u.ID, projectID, models.ErrParentMismatch)
		}
	}
	for _, u := range updates {
		if err := e.store.UpdateColumnOrder(ctx, u.ID, u.Order); err != nil {
			return err
		}
	}
	return nil
}

// ReorderTasks assigns new orders to tasks of columnID.
func (e *Engine) ReorderTasks(ctx context.Context, columnID string, updates []models.OrderUpdate) error {
	if err := validateUpdates(updates); err != nil {
		return err
	}
	for _, u := range updates {
		task, err := e.store.GetTaskByID(ctx, u.ID)
		if err != nil {
			return err
		}
		if task.ColumnID != columnID {
			return fmt.Errorf("task %s is not in column %s: %w", u.ID, columnID, models.ErrParentMismatch)
		}
	}
	for _, u := range updates {
		if err := e.store.UpdateTaskOrder(ctx, u.ID, columnID, u.Order); err != nil {
			return err
		}
	}
	return nil
}

// MoveTask places task in targetColumnID at order.
//
// The target column must belong to the task's project. A nil order appends
// to the target column, or keeps the current order when the task stays in
// its column. Siblings in either column are not renumbered.
func (e *Engine) MoveTask(ctx context.Context, task *models.Task, targetColumnID string, order *int) (*models.Task, error) {
	if order != nil {
		if err := validateOrder(*order); err != nil {
			return nil, err
		}
	}

	target, err := e.store.GetColumnByID(ctx, targetColumnID)
	if err != nil {
		return nil, err
	}
	if target.ProjectID != task.ProjectID {
		return nil, fmt.Errorf("column %s is not in project %s: %w", target.ID, task.ProjectID, models.ErrParentMismatch)
	}

	newOrder := task.Order
	switch {
	case order != nil:
		newOrder = *order
	case target.ID != task.ColumnID:
		newOrder, err = e.NextTaskOrder(ctx, target.ID)
		if err != nil {
			return nil, err
		}
	}

	if target.ID == task.ColumnID && newOrder == task.Order {
		return task, nil
	}

	if err := e.store.UpdateTaskOrder(ctx, task.ID, target.ID, newOrder); err != nil {
		return nil, err
	}
	return e.store.GetTaskByID(ctx, task.ID)
}

func validateUpdates(updates []models.OrderUpdate) error {
	seen := make(map[string]struct{}, len(updates))
	for _, u := range updates {
		if u.ID == "" {
			return fmt.Errorf("%w: id is required", models.ErrValidation)
		}
		if err := validateOrder(u.Order); err != nil {
			return fmt.Errorf("%s: %w", u.ID, err)
		}
		if _, dup := seen[u.ID]; dup {
			return fmt.Errorf("%w: %s appears more than once", models.ErrValidation, u.ID)
		}
		seen[u.ID] = struct{}{}
	}
	return nil
}

func validateOrder(order int) error {
	if order < 0 || order > models.MaxOrder {
		return fmt.Errorf("%w: order must be between 0 and %d", models.ErrValidation, models.MaxOrder)
	}
	return nil
}
