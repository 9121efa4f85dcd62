package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanban/internal/auth"
	"github.com/thenoetrevino/kanban/internal/config"
	"github.com/thenoetrevino/kanban/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}

			tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
			if err != nil {
				return fmt.Errorf("auth: %w (set %s or auth.jwt_secret)", err, config.EnvJWTSecret)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := opts.openCLI(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := c.Close(); err != nil {
					opts.logger.WithError(err).Warn("failed to close application")
				}
			}()

			srv := server.New(c.App, tokens, server.WithShutdownTimeout(cfg.Server.ShutdownTimeout))
			opts.logger.WithFields(log.Fields{
				"db":    cfg.Database.Path,
				"cache": cfg.Cache.RedisURL != "",
			}).Info("kanban api ready")
			return srv.Start(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
