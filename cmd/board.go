package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/kanban/internal/cli"
	"github.com/thenoetrevino/kanban/internal/models"
)

var errMissingUser = fmt.Errorf("%w: --user is required", models.ErrUnauthenticated)

func newBoardCmd(opts *rootOptions) *cobra.Command {
	var (
		userID     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "board <project-id>",
		Short: "Print a project's board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter(cmd, jsonOutput)
			if userID == "" {
				return out.Fail(errMissingUser, "")
			}

			c, err := opts.openCLI(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			board, err := c.App.ProjectService.GetBoard(cmd.Context(), userID, args[0])
			if err != nil {
				suggestion := ""
				if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrForbidden) {
					suggestion = "Use 'kanban projects --user <id>' to see available projects"
				}
				return out.Fail(err, suggestion)
			}

			return out.Success(board, func() string {
				return cli.RenderBoard(board, time.Now())
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "id of the user who owns the project (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func newProjectsCmd(opts *rootOptions) *cobra.Command {
	var (
		userID     string
		jsonOutput bool
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List a user's projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter(cmd, jsonOutput)
			if userID == "" {
				return out.Fail(errMissingUser, "")
			}

			c, err := opts.openCLI(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			projects, err := c.App.ProjectService.ListProjects(cmd.Context(), userID)
			if err != nil {
				return out.Fail(err, "")
			}

			// Quiet mode: print IDs only, one per line
			if quiet {
				for _, p := range projects {
					fmt.Fprintln(cmd.OutOrStdout(), p.ID)
				}
				return nil
			}

			return out.Success(projects, func() string {
				if len(projects) == 0 {
					return "No projects found"
				}
				var b strings.Builder
				fmt.Fprintf(&b, "Found %d project(s):\n", len(projects))
				for _, p := range projects {
					fmt.Fprintf(&b, "  %s  %s\n", p.ID, p.Name)
				}
				return strings.TrimSuffix(b.String(), "\n")
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "id of the user (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print project IDs")
	return cmd
}
