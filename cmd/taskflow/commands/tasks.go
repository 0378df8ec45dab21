package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmaster/taskflow/internal/application/views"
	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// NewTasksCommand lists tasks across all projects
func NewTasksCommand(env *Env) *cobra.Command {
	var status, project, priority string

	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "List tasks across all projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := views.ParseTaskFilters(status, project, priority)
			if err != nil {
				return err
			}

			dashboard, err := env.app.LoadDashboard(cmd.Context())
			if err != nil {
				return err
			}
			tasks := views.FilterTasks(dashboard.Tasks, filters)
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), tasks)
			}

			dir := views.NewProjectDirectory(dashboard.Projects)
			renderTaskRows(cmd.OutOrStdout(), views.TaskRows(tasks, dir, env.app.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", views.All, "Filter by status: all, todo, in-progress, done")
	cmd.Flags().StringVar(&project, "project", views.All, "Filter by project id, or all")
	cmd.Flags().StringVar(&priority, "priority", views.All, "Filter by priority: all, low, medium, high")

	cmd.AddCommand(newTaskCreateCommand(env))
	cmd.AddCommand(newTaskDeleteCommand(env))
	return cmd
}

func newTaskCreateCommand(env *Env) *cobra.Command {
	var (
		req              ports.CreateTaskRequest
		status, priority string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Status = entities.TaskStatus(status)
			req.Priority = entities.Priority(priority)

			task, err := env.app.Tasks.CreateTask(cmd.Context(), req)
			if err != nil {
				return err
			}
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), task)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%s %s (%s, %s)\n", task.ID, task.Title, task.Status, task.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&req.Description, "description", "", "Task description")
	cmd.Flags().StringVar(&req.ProjectID, "project", "", "Project id")
	cmd.Flags().StringVar(&req.DueDate, "due", "", "Due date as YYYY-MM-DD")
	cmd.Flags().StringVar(&req.AssignedTo, "assign", "", "Assignee email")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (default todo)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (default medium)")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newTaskDeleteCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <taskId>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.app.Tasks.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%s\n", args[0])
			return nil
		},
	}
}
