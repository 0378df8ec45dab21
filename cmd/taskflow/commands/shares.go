package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmaster/taskflow/internal/application/views"
	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// NewSharesCommand manages project share links
func NewSharesCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shares [projectId]",
		Aliases: []string{"share"},
		Short:   "List share links, optionally for one project",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				links []*entities.ShareLink
				err   error
			)
			if len(args) == 1 {
				links, err = env.app.Shares.ListProjectShareLinks(ctx, args[0])
			} else {
				links, err = env.app.Shares.ListShareLinks(ctx)
			}
			if err != nil {
				return err
			}
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), links)
			}

			projects, err := env.app.Projects.ListProjects(ctx)
			if err != nil {
				return err
			}
			dir := views.NewProjectDirectory(projects)
			now := env.app.Now()
			rows := make([]views.ShareLinkView, 0, len(links))
			for _, l := range links {
				rows = append(rows, views.NewShareLinkView(l, dir, now))
			}
			renderShareLinks(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.AddCommand(newShareCreateCommand(env))
	cmd.AddCommand(newShareCopyCommand(env))
	cmd.AddCommand(newShareDeleteCommand(env))
	return cmd
}

func newShareCreateCommand(env *Env) *cobra.Command {
	var (
		permission string
		expiresIn  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create <projectId>",
		Short: "Generate a share link for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ports.CreateShareLinkRequest{
				ProjectID:  args[0],
				Permission: entities.Permission(permission),
			}
			if expiresIn != 0 {
				at := env.app.Now().Add(expiresIn)
				req.ExpiresAt = &at
			}

			link, err := env.app.Shares.CreateShareLink(cmd.Context(), req)
			if err != nil {
				return err
			}
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), link)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created share link #%s %s (%s)\n", link.ID, link.Link, link.Permission)
			return nil
		},
	}

	cmd.Flags().StringVar(&permission, "permission", string(entities.PermissionView), "Permission: view or edit")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "Expire the link after this long (default: never)")
	return cmd
}

func newShareCopyCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <shareId>",
		Short: "Print a share link for copying. Expired links are refused.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := env.app.Shares.CopyShareLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newShareDeleteCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <shareId>",
		Short: "Delete a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.app.Shares.DeleteShareLink(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted share link #%s\n", args[0])
			return nil
		},
	}
}
