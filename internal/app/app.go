package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/thenoetrevino/kanban/internal/cache"
	"github.com/thenoetrevino/kanban/internal/config"
	"github.com/thenoetrevino/kanban/internal/database"
	columnservice "github.com/thenoetrevino/kanban/internal/services/column"
	projectservice "github.com/thenoetrevino/kanban/internal/services/project"
	taskservice "github.com/thenoetrevino/kanban/internal/services/task"
	userservice "github.com/thenoetrevino/kanban/internal/services/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	store database.Store

	Logger *log.Logger

	// Service layer (business logic)
	UserService    userservice.Service
	ProjectService projectservice.Service
	ColumnService  columnservice.Service
	TaskService    taskservice.Service

	closers []io.Closer
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(store database.Store, opts ...Option) *App {
	cfg := resolveOptions(opts)

	userOpts := []userservice.Option{userservice.WithLogger(cfg.logger)}
	if cfg.hashCost > 0 {
		userOpts = append(userOpts, userservice.WithHashCost(cfg.hashCost))
	}

	return &App{
		store:          store,
		Logger:         cfg.logger,
		UserService:    userservice.NewService(store, userOpts...),
		ProjectService: projectservice.NewService(store, cfg.boards, cfg.logger),
		ColumnService:  columnservice.NewService(store, cfg.boards, cfg.logger),
		TaskService:    taskservice.NewService(store, cfg.boards, cfg.logger),
		closers:        cfg.closers,
	}
}

// Open connects the database (and Redis when configured) described by cfg
// and builds the App around them. Close releases both.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{withCloser(db)}, opts...)

	if cfg.Cache.RedisURL != "" {
		logger := resolveOptions(opts).logger
		boards, err := cache.Connect(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL, logger)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to connect board cache: %w", err)
		}
		opts = append(opts, WithBoardCache(boards), withCloser(boards))
	}

	return New(database.NewRepository(db), opts...), nil
}

// Store returns the underlying store for direct database access.
func (a *App) Store() database.Store {
	return a.store
}

// Close releases resources acquired by Open, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
