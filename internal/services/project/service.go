package project

import (
	"context"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/thenoetrevino/kanban/internal/cache"
	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/services/cascade"
	"github.com/thenoetrevino/kanban/internal/services/ownership"
)

// Service defines all project-related business operations.
// Every operation acts on behalf of callerID and only sees that user's projects.
type Service interface {
	// Read operations
	ListProjects(ctx context.Context, callerID string) ([]*models.Project, error)
	GetBoard(ctx context.Context, callerID, projectID string) (*models.Board, error)

	// Write operations
	CreateProject(ctx context.Context, callerID string, req CreateProjectRequest) (*models.Board, error)
	UpdateProject(ctx context.Context, callerID string, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, callerID, projectID string) error
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest encapsulates data for updating a project.
// Nil fields are left unchanged.
type UpdateProjectRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type service struct {
	store  database.Store
	boards cache.BoardCache
	logger *log.Logger
}

// NewService creates a new project service
func NewService(store database.Store, boards cache.BoardCache, logger *log.Logger) Service {
	if boards == nil {
		boards = cache.Noop{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &service{store: store, boards: boards, logger: logger}
}

// ListProjects retrieves the caller's projects, newest first
func (s *service) ListProjects(ctx context.Context, callerID string) ([]*models.Project, error) {
	if callerID == "" {
		return nil, models.ErrUnauthenticated
	}
	return s.store.ListProjectsByUser(ctx, callerID)
}

// GetBoard retrieves a project with its columns and their tasks
func (s *service) GetBoard(ctx context.Context, callerID, projectID string) (*models.Board, error) {
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}

	project, err := ownership.NewResolver(s.store).Project(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}

	if board, ok := s.boards.Get(ctx, projectID); ok {
		return board, nil
	}

	generation := s.boards.Generation(ctx, projectID)

	var board *models.Board
	err = s.store.WithinTx(ctx, func(tx database.Store) error {
		columns, err := tx.ListColumnsByProject(ctx, projectID)
		if err != nil {
			return err
		}
		tasks, err := tx.ListTasksByProject(ctx, projectID)
		if err != nil {
			return err
		}
		board = models.NewBoard(project, columns, tasks)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.boards.Set(ctx, board, generation)
	return board, nil
}

// CreateProject creates a project seeded with the default columns
func (s *service) CreateProject(ctx context.Context, callerID string, req CreateProjectRequest) (*models.Board, error) {
	if callerID == "" {
		return nil, models.ErrUnauthenticated
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		UserID:      callerID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}

	var columns []*models.Column
	err = s.store.WithinTx(ctx, func(tx database.Store) error {
		if err := tx.InsertProject(ctx, project); err != nil {
			return err
		}
		columns = defaultColumns(project.ID)
		return tx.InsertColumns(ctx, columns...)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{"project": project.ID, "user": callerID}).Info("project created")
	return models.NewBoard(project, columns, nil), nil
}

// UpdateProject changes a project's name and/or description
func (s *service) UpdateProject(ctx context.Context, callerID string, req UpdateProjectRequest) (*models.Project, error) {
	if req.ID == "" {
		return nil, ErrInvalidProjectID
	}

	var name string
	if req.Name != nil {
		var err error
		if name, err = validateName(*req.Name); err != nil {
			return nil, err
		}
	}

	var project *models.Project
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		var err error
		project, err = ownership.NewResolver(tx).Project(ctx, callerID, req.ID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			project.Name = name
		}
		if req.Description != nil {
			project.Description = strings.TrimSpace(*req.Description)
		}
		return tx.UpdateProject(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	s.boards.Invalidate(ctx, project.ID)
	return project, nil
}

// DeleteProject removes a project with all its columns and tasks
func (s *service) DeleteProject(ctx context.Context, callerID, projectID string) error {
	if projectID == "" {
		return ErrInvalidProjectID
	}

	var res cascade.Result
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		if _, err := ownership.NewResolver(tx).Project(ctx, callerID, projectID); err != nil {
			return err
		}
		var err error
		res, err = cascade.NewEngine(tx).DeleteProject(ctx, projectID)
		return err
	})
	if err != nil {
		return err
	}

	s.boards.Invalidate(ctx, projectID)
	s.logger.WithFields(log.Fields{
		"project": projectID,
		"columns": res.Columns,
		"tasks":   res.Tasks,
	}).Info("project deleted")
	return nil
}

func defaultColumns(projectID string) []*models.Column {
	columns := make([]*models.Column, len(models.DefaultColumnNames))
	for i, name := range models.DefaultColumnNames {
		columns[i] = &models.Column{
			Name:      name,
			ProjectID: projectID,
			Order:     models.FirstOrder + i,
		}
	}
	return columns
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxProjectNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
