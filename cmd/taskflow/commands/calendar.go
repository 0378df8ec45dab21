package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmaster/taskflow/internal/application/views"
	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// NewCalendarCommand shows the month grid of due tasks
func NewCalendarCommand(env *Env) *cobra.Command {
	var month, project string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show tasks by due date for one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := env.app.Now()
			shown := now
			if month != "" {
				m, err := views.ParseMonth(month, now.Location())
				if err != nil {
					return &entities.InvalidArgumentError{Field: "month", Value: month, Reason: "expected YYYY-MM"}
				}
				shown = m
			}

			filters, err := views.ParseTaskFilters(views.All, project, views.All)
			if err != nil {
				return err
			}
			dashboard, err := env.app.LoadDashboard(cmd.Context())
			if err != nil {
				return err
			}

			grid := views.MonthGrid(shown, views.FilterTasks(dashboard.Tasks, filters), now)
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), grid)
			}
			renderCalendar(cmd.OutOrStdout(), grid, views.NewProjectDirectory(dashboard.Projects))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show as YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&project, "project", views.All, "Only show tasks of this project")

	cmd.AddCommand(newCalendarAddCommand(env))
	return cmd
}

func newCalendarAddCommand(env *Env) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "add <YYYY-MM-DD> <title>",
		Short: "Quick-add a task due on a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.Parse(entities.DueDateLayout, args[0])
			if err != nil {
				return &entities.InvalidArgumentError{Field: "date", Value: args[0], Reason: "expected YYYY-MM-DD"}
			}

			task, err := env.app.Tasks.CreateTask(cmd.Context(), ports.CreateTaskRequest{
				Title:     args[1],
				ProjectID: project,
				DueDate:   views.QuickAddDueDate(day),
			})
			if err != nil {
				return err
			}
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), task)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%s %s due %s\n", task.ID, task.Title, task.DueDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project id")
	cmd.MarkFlagRequired("project")
	return cmd
}
