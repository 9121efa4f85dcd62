// Package ownership decides whether a caller transitively owns a project,
// column or task.
package ownership

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/kanban/internal/models"
)

// Reader is the subset of the store the resolver needs.
type Reader interface {
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	GetColumnByID(ctx context.Context, id string) (*models.Column, error)
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)
}

// Resolver walks the ownership chain task -> column -> project -> user.
//
// An entity that does not exist yields models.ErrNotFound. An entity that
// exists under another user yields models.ErrForbidden.
type Resolver struct {
	store Reader
}

// NewResolver creates a resolver reading from store
func NewResolver(store Reader) *Resolver {
	return &Resolver{store: store}
}

// Project resolves a project owned by callerID.
func (r *Resolver) Project(ctx context.Context, callerID, projectID string) (*models.Project, error) {
	if callerID == "" {
		return nil, models.ErrUnauthenticated
	}
	project, err := r.store.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(callerID, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Column resolves a column and its project, both owned by callerID.
func (r *Resolver) Column(ctx context.Context, callerID, columnID string) (*models.Column, *models.Project, error) {
	if callerID == "" {
		return nil, nil, models.ErrUnauthenticated
	}
	column, err := r.store.GetColumnByID(ctx, columnID)
	if err != nil {
		return nil, nil, err
	}
	project, err := r.store.GetProjectByID(ctx, column.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if err := checkOwner(callerID, project); err != nil {
		return nil, nil, err
	}
	return column, project, nil
}

// Task resolves a task and its project, both owned by callerID.
func (r *Resolver) Task(ctx context.Context, callerID, taskID string) (*models.Task, *models.Project, error) {
	if callerID == "" {
		return nil, nil, models.ErrUnauthenticated
	}
	task, err := r.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	project, err := r.store.GetProjectByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if err := checkOwner(callerID, project); err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

func checkOwner(callerID string, project *models.Project) error {
	if !project.OwnedBy(callerID) {
		return fmt.Errorf("project %s: %w", project.ID, models.ErrForbidden)
	}
	return nil
}
