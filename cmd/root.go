// Package cmd wires the kanban command line.
package cmd

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/config"
	"github.com/thenoetrevino/kanban/internal/logging"
)

// rootOptions is shared by every subcommand. cfg is populated before any
// subcommand runs.
type rootOptions struct {
	configPath string

	cfg       *config.Config
	logger    *log.Logger
	logCloser io.Closer
}

// NewRootCmd builds a fresh command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "kanban",
		Short:         "Kanban - a multi-user kanban board server",
		Long:          `Kanban serves a REST API for projects, columns and tasks, and offers a few maintenance commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			logger, closer, err := logging.Init(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = logger
			opts.logCloser = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logCloser == nil {
				return nil
			}
			return opts.logCloser.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kanban/config.yaml)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newTokenCmd(opts),
		newBoardCmd(opts),
		newProjectsCmd(opts),
	)

	return rootCmd
}

// Execute runs the command tree against ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// formatter returns an OutputFormatter bound to the command's streams
func formatter(cmd *cobra.Command, jsonOutput bool) *cli.OutputFormatter {
	return &cli.OutputFormatter{
		JSON: jsonOutput,
		Out:  cmd.OutOrStdout(),
		Err:  cmd.ErrOrStderr(),
	}
}

// openCLI opens the application for one command invocation
func (o *rootOptions) openCLI(ctx context.Context) (*cli.CLI, error) {
	return cli.NewCLI(ctx, o.cfg, o.logger)
}
