package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanban/internal/auth"
	"github.com/thenoetrevino/kanban/internal/config"
)

func newTokenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an access token for an existing user (development only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := auth.NewTokens(opts.cfg.Auth.JWTSecret, opts.cfg.Auth.TokenTTL)
			if err != nil {
				return fmt.Errorf("auth: %w (set %s)", err, config.EnvJWTSecret)
			}

			c, err := opts.openCLI(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			user, err := c.App.UserService.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			token, err := tokens.Issue(user.ID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
}
