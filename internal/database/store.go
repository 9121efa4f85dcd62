package database

import (
	"context"

	"github.com/thenoetrevino/kanban/internal/models"
)

// UserStore persists registered users
type UserStore interface {
	InsertUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProjectStore persists projects
type ProjectStore interface {
	InsertProject(ctx context.Context, project *models.Project) error
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	ListProjectsByUser(ctx context.Context, userID string) ([]*models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id string) (int64, error)
}

// ColumnStore persists columns
type ColumnStore interface {
	InsertColumns(ctx context.Context, columns ...*models.Column) error
	GetColumnByID(ctx context.Context, id string) (*models.Column, error)
	ListColumnsByProject(ctx context.Context, projectID string) ([]*models.Column, error)
	MaxColumnOrder(ctx context.Context, projectID string) (int, bool, error)
	UpdateColumn(ctx context.Context, column *models.Column) error
	UpdateColumnOrder(ctx context.Context, id string, order int) error
	DeleteColumn(ctx context.Context, id string) (int64, error)
	DeleteColumnsByProject(ctx context.Context, projectID string) (int64, error)
}

// TaskStore persists tasks
type TaskStore interface {
	InsertTask(ctx context.Context, task *models.Task) error
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)
	ListTasksByColumn(ctx context.Context, columnID string) ([]*models.Task, error)
	ListTasksByProject(ctx context.Context, projectID string) ([]*models.Task, error)
	MaxTaskOrder(ctx context.Context, columnID string) (int, bool, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	UpdateTaskOrder(ctx context.Context, id, columnID string, order int) error
	DeleteTask(ctx context.Context, id string) (int64, error)
	DeleteTasksByColumn(ctx context.Context, columnID string) (int64, error)
	DeleteTasksByProject(ctx context.Context, projectID string) (int64, error)
}

// Store is the full persistence surface used by the services.
type Store interface {
	UserStore
	ProjectStore
	ColumnStore
	TaskStore

	// WithinTx runs fn against a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	// Calling WithinTx on a Store that is already transactional runs fn inline.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
