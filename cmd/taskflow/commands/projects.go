package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// NewProjectsCommand lists projects and creates new ones
func NewProjectsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := env.app.LoadDashboard(cmd.Context())
			if err != nil {
				return err
			}
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), dashboard.Projects)
			}

			counts := make(map[string]int, len(dashboard.Projects))
			for _, t := range dashboard.Tasks {
				counts[t.ProjectID]++
			}
			renderProjects(cmd.OutOrStdout(), dashboard.Projects, counts)
			return nil
		},
	}

	cmd.AddCommand(newProjectCreateCommand(env))
	cmd.AddCommand(newProjectDeleteCommand(env))
	cmd.AddCommand(newProjectColorsCommand(env))
	return cmd
}

func newProjectColorsCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the colours offered for new projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), entities.ProjectPalette)
			}
			renderPalette(cmd.OutOrStdout(), entities.ProjectPalette, entities.DefaultProjectColor)
			return nil
		},
	}
}

func newProjectCreateCommand(env *Env) *cobra.Command {
	var req ports.CreateProjectRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := env.app.Projects.CreateProject(cmd.Context(), req)
			if err != nil {
				return err
			}
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), project)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project #%s %s\n", project.ID, project.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&req.Description, "description", "", "Project description")
	cmd.Flags().StringVar(&req.Color, "color", "", "Project colour as #rrggbb (see 'projects colors'; default "+entities.DefaultProjectColor+")")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectDeleteCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <projectId>",
		Short: "Delete a project. Its tasks and share links are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.app.Projects.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project #%s\n", args[0])
			return nil
		},
	}
}
