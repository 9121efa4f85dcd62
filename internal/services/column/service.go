package column

import (
	"context"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/thenoetrevino/kanban/internal/cache"
	"github.com/thenoetrevino/kanban/internal/database"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/services/cascade"
	"github.com/thenoetrevino/kanban/internal/services/ordering"
	"github.com/thenoetrevino/kanban/internal/services/ownership"
)

// Service defines all column-related business operations
type Service interface {
	// Read operations
	ListColumns(ctx context.Context, callerID, projectID string) ([]*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, callerID string, req CreateColumnRequest) (*models.Column, error)
	UpdateColumn(ctx context.Context, callerID string, req UpdateColumnRequest) (*models.Column, error)
	DeleteColumn(ctx context.Context, callerID, columnID string) error
	ReorderColumns(ctx context.Context, callerID string, req ReorderColumnsRequest) ([]*models.Column, error)
}

// CreateColumnRequest encapsulates data for creating a column.
// The column is appended after the project's last column.
type CreateColumnRequest struct {
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
}

// UpdateColumnRequest encapsulates data for renaming a column
type UpdateColumnRequest struct {
	ID   string  `json:"-"`
	Name *string `json:"name"`
}

// ReorderColumnsRequest assigns new orders to columns of one project
type ReorderColumnsRequest struct {
	ProjectID string               `json:"projectId"`
	Columns   []models.OrderUpdate `json:"columns"`
}

type service struct {
	store  database.Store
	boards cache.BoardCache
	logger *log.Logger
}

// NewService creates a new column service
func NewService(store database.Store, boards cache.BoardCache, logger *log.Logger) Service {
	if boards == nil {
		boards = cache.Noop{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &service{store: store, boards: boards, logger: logger}
}

// ListColumns retrieves a project's columns in board order
func (s *service) ListColumns(ctx context.Context, callerID, projectID string) ([]*models.Column, error) {
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	if _, err := ownership.NewResolver(s.store).Project(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	return s.store.ListColumnsByProject(ctx, projectID)
}

// CreateColumn appends a new column to a project
func (s *service) CreateColumn(ctx context.Context, callerID string, req CreateColumnRequest) (*models.Column, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.ProjectID == "" {
		return nil, ErrInvalidProjectID
	}

	column := &models.Column{Name: name, ProjectID: req.ProjectID}
	err = s.store.WithinTx(ctx, func(tx database.Store) error {
		if _, err := ownership.NewResolver(tx).Project(ctx, callerID, req.ProjectID); err != nil {
			return err
		}
		order, err := ordering.NewEngine(tx).NextColumnOrder(ctx, req.ProjectID)
		if err != nil {
			return err
		}
		column.Order = order
		return tx.InsertColumns(ctx, column)
	})
	if err != nil {
		return nil, err
	}

	s.boards.Invalidate(ctx, column.ProjectID)
	return column, nil
}

// UpdateColumn renames a column
func (s *service) UpdateColumn(ctx context.Context, callerID string, req UpdateColumnRequest) (*models.Column, error) {
	if req.ID == "" {
		return nil, ErrInvalidColumnID
	}

	var name string
	if req.Name != nil {
		var err error
		if name, err = validateName(*req.Name); err != nil {
			return nil, err
		}
	}

	var column *models.Column
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		var err error
		column, _, err = ownership.NewResolver(tx).Column(ctx, callerID, req.ID)
		if err != nil {
			return err
		}
		if req.Name == nil {
			return nil
		}
		column.Name = name
		return tx.UpdateColumn(ctx, column)
	})
	if err != nil {
		return nil, err
	}

	s.boards.Invalidate(ctx, column.ProjectID)
	return column, nil
}

// DeleteColumn removes a column and all its tasks
func (s *service) DeleteColumn(ctx context.Context, callerID, columnID string) error {
	if columnID == "" {
		return ErrInvalidColumnID
	}

	var (
		projectID string
		res       cascade.Result
	)
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		column, _, err := ownership.NewResolver(tx).Column(ctx, callerID, columnID)
		if err != nil {
			return err
		}
		projectID = column.ProjectID
		res, err = cascade.NewEngine(tx).DeleteColumn(ctx, columnID)
		return err
	})
	if err != nil {
		return err
	}

	s.boards.Invalidate(ctx, projectID)
	s.logger.WithFields(log.Fields{"column": columnID, "tasks": res.Tasks}).Info("column deleted")
	return nil
}

// ReorderColumns assigns new orders to a project's columns and returns them in the new order
func (s *service) ReorderColumns(ctx context.Context, callerID string, req ReorderColumnsRequest) ([]*models.Column, error) {
	if req.ProjectID == "" {
		return nil, ErrInvalidProjectID
	}

	var columns []*models.Column
	err := s.store.WithinTx(ctx, func(tx database.Store) error {
		if _, err := ownership.NewResolver(tx).Project(ctx, callerID, req.ProjectID); err != nil {
			return err
		}
		if err := ordering.NewEngine(tx).ReorderColumns(ctx, req.ProjectID, req.Columns); err != nil {
			return err
		}
		var err error
		columns, err = tx.ListColumnsByProject(ctx, req.ProjectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.boards.Invalidate(ctx, req.ProjectID)
	return columns, nil
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxColumnNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
