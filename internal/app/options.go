package app

import (
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/thenoetrevino/kanban/internal/cache"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	boards   cache.BoardCache
	logger   *log.Logger
	hashCost int
	closers  []io.Closer
}

// WithBoardCache sets the cache used for board reads
func WithBoardCache(boards cache.BoardCache) Option {
	return func(cfg *appConfig) {
		cfg.boards = boards
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *log.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithPasswordCost overrides the bcrypt cost used for new accounts
func WithPasswordCost(cost int) Option {
	return func(cfg *appConfig) {
		cfg.hashCost = cost
	}
}

// resolveOptions applies opts over the defaults
func resolveOptions(opts []Option) *appConfig {
	cfg := &appConfig{
		boards: cache.Noop{},
		logger: log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.StandardLogger()
	}
	return cfg
}

func withCloser(c io.Closer) Option {
	return func(cfg *appConfig) {
		cfg.closers = append(cfg.closers, c)
	}
}
