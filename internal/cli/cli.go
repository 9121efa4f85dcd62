// Package cli holds the pieces shared by the terminal commands: the
// application handle, output formatting and board rendering.
package cli

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/thenoetrevino/kanban/internal/app"
	"github.com/thenoetrevino/kanban/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
}

// NewCLI opens the database (and cache, when configured) described by cfg.
// All services log through logger.
func NewCLI(ctx context.Context, cfg *config.Config, logger *log.Logger) (*CLI, error) {
	application, err := app.Open(ctx, cfg, app.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return &CLI{App: application, Config: cfg}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}
