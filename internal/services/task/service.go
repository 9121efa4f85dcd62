package task

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/thenoetrevino/kanban/internal/cache"
	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/services/ordering"
	"github.com/thenoetrevino/kanban/internal/services/ownership"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListTasksByProject(ctx context.Context, callerID, projectID string) ([]*models.Task, error)
	ListTasksByColumn(ctx context.Context, callerID, columnID string) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, callerID string, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, callerID string, req UpdateTaskRequest) (*models.Task, error)
	MoveTask(ctx context.Context, callerID string, req MoveTaskRequest) (*models.Task, error)
	ReorderTasks(ctx context.Context, callerID string, req ReorderTasksRequest) ([]*models.Task, error)
	DeleteTask(ctx context.Context, callerID, taskID string) error
}

// CreateTaskRequest encapsulates data for creating a task.
// The task is appended at the bottom of its column.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	ColumnID    string     `json:"columnId"`
	ProjectID   string     `json:"projectId"`
}

// UpdateTaskRequest encapsulates data for editing a task.
// Nil fields are left unchanged; the column is changed with MoveTask only.
type UpdateTaskRequest struct {
	ID           string     `json:"-"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"dueDate"`
	ClearDueDate bool       `json:"clearDueDate"`
}

// MoveTaskRequest places a task in a column of the same project.
// A nil Order appends to the target column.
type MoveTaskRequest struct {
	ID       string `json:"-"`
	ColumnID string `json:"columnId"`
	Order    *int   `json:"order"`
}

// ReorderTasksRequest assigns new orders to tasks of one column
type ReorderTasksRequest struct {
	ColumnID string               `json:"columnId"`
	Tasks    []models.OrderUpdate `json:"tasks"`
}

type service struct {
	store  database.Store
	boards cache.BoardCache
	logger *log.Logger
}

// NewService creates a new task service
func NewService(store database.Store, boards cache.BoardCache, logger *log.Logger) Service {
	if boards == nil {
		boards = cache.Noop{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &service{store: store, boards: boards, logger: logger}
}

// ListTasksByProject retrieves every task of a project
func (s *service) ListTasksByProject(ctx context.Context, callerID, projectID string) ([]*models.Task, error) {
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	if _, err := ownership.NewResolver(s.store).Project(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	return s.store.ListTasksByProject(ctx, projectID)
}

// ListTasksByColumn retrieves a column's tasks in board order
func (s *service) ListTasksByColumn(ctx context.Context, callerID, columnID string) ([]*models.Task, error) {
	if columnID == "" {
		return nil, ErrInvalidColumnID
	}
	if _, _, err := ownership.NewResolver(s.store).Column(ctx, callerID, columnID); err != nil {
		return nil, err
	}
	return s.store.ListTasksByColumn(ctx, columnID)
}

// CreateTask appends a task to a column
func (s *service) CreateTask(ctx context.Context, callerID string, req CreateTaskRequest) (*models.Task, error) {
	if err := validateCreateTask(&req); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		ColumnID:    req.ColumnID,
		ProjectID:   req.ProjectID,
	}
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		column, _, err := ownership.NewResolver(tx).Column(ctx, callerID, req.ColumnID)
		if err != nil {
			return err
		}
		if column.ProjectID != req.ProjectID {
			return fmt.Errorf("column %s is not in project %s: %w", column.ID, req.ProjectID, models.ErrParentMismatch)
		}
		order, err := ordering.NewEngine(tx).NextTaskOrder(ctx, column.ID)
		if err != nil {
			return err
		}
		task.Order = order
		return tx.InsertTask(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.boards.Invalidate(ctx, task.ProjectID)
	return task, nil
}

// UpdateTask edits a task's title, description or due date
func (s *service) UpdateTask(ctx context.Context, callerID string, req UpdateTaskRequest) (*models.Task, error) {
	if err := validateUpdateTask(&req); err != nil {
		return nil, err
	}

	var task *models.Task
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		var err error
		task, _, err = ownership.NewResolver(tx).Task(ctx, callerID, req.ID)
		if err != nil {
			return err
		}
		if req.Title != nil {
			task.Title = *req.Title
		}
		if req.Description != nil {
			task.Description = *req.Description
		}
		switch {
		case req.ClearDueDate:
			task.DueDate = nil
		case req.DueDate != nil:
			task.DueDate = req.DueDate
		}
		return tx.UpdateTask(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.boards.Invalidate(ctx, task.ProjectID)
	return task, nil
}

// MoveTask places a task in another column (or position) of its project
func (s *service) MoveTask(ctx context.Context, callerID string, req MoveTaskRequest) (*models.Task, error) {
	if req.ID == "" {
		return nil, ErrInvalidTaskID
	}
	if req.ColumnID == "" {
		return nil, ErrInvalidColumnID
	}

	var task *models.Task
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		current, _, err := ownership.NewResolver(tx).Task(ctx, callerID, req.ID)
		if err != nil {
			return err
		}
		task, err = ordering.NewEngine(tx).MoveTask(ctx, current, req.ColumnID, req.Order)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.boards.Invalidate(ctx, task.ProjectID)
	return task, nil
}

// ReorderTasks assigns new orders to a column's tasks and returns them in the new order
func (s *service) ReorderTasks(ctx context.Context, callerID string, req ReorderTasksRequest) ([]*models.Task, error) {
	if req.ColumnID == "" {
		return nil, ErrInvalidColumnID
	}

	var (
		projectID string
		tasks     []*models.Task
	)
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		column, _, err := ownership.NewResolver(tx).Column(ctx, callerID, req.ColumnID)
		if err != nil {
			return err
		}
		projectID = column.ProjectID
		if err := ordering.NewEngine(tx).ReorderTasks(ctx, req.ColumnID, req.Tasks); err != nil {
			return err
		}
		tasks, err = tx.ListTasksByColumn(ctx, req.ColumnID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.boards.Invalidate(ctx, projectID)
	return tasks, nil
}

// DeleteTask removes a task
func (s *service) DeleteTask(ctx context.Context, callerID, taskID string) error {
	if taskID == "" {
		return ErrInvalidTaskID
	}

	var projectID string
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		task, _, err := ownership.NewResolver(tx).Task(ctx, callerID, taskID)
		if err != nil {
			return err
		}
		projectID = task.ProjectID
		n, err := tx.DeleteTask(ctx, taskID)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("task %s: %w", taskID, models.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.boards.Invalidate(ctx, projectID)
	return nil
}

func validateCreateTask(req *CreateTaskRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if err := validateDescription(req.Description); err != nil {
		return err
	}
	if req.ColumnID == "" {
		return ErrInvalidColumnID
	}
	if req.ProjectID == "" {
		return ErrInvalidProjectID
	}
	return nil
}

func validateUpdateTask(req *UpdateTaskRequest) error {
	if req.ID == "" {
		return ErrInvalidTaskID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validateTitle(title); err != nil {
			return err
		}
		req.Title = &title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if err := validateDescription(description); err != nil {
			return err
		}
		req.Description = &description
	}
	if req.ClearDueDate && req.DueDate != nil {
		return ErrConflictingDueDates
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTaskTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > models.MaxTaskDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
