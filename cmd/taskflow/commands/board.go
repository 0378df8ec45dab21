package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmaster/taskflow/internal/application/kanban"
	"github.com/taskmaster/taskflow/internal/application/views"
	"github.com/taskmaster/taskflow/internal/domain/entities"
)

// NewBoardCommand renders the kanban board of one project
func NewBoardCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "board <projectId>",
		Short: "Show a project's kanban board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := env.app.Projects.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			board, err := env.app.NewBoard(cmd.Context(), project.ID, kanban.LogNotifier{Logger: env.app.Logger()})
			if err != nil {
				return err
			}
			columns, err := board.Columns()
			if err != nil {
				return err
			}
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), columns)
			}
			ref := views.NewProjectDirectory([]*entities.Project{project}).Lookup(project.ID)
			renderBoard(cmd.OutOrStdout(), ref, columns)
			return nil
		},
	}
}

// NewMoveCommand drags a task onto another kanban column
func NewMoveCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "move <taskId> <status>",
		Short: "Move a task to another column (todo, in-progress, done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			target, err := entities.ParseTaskStatus(args[1])
			if err != nil {
				return err
			}

			task, err := env.app.Tasks.GetTask(ctx, args[0])
			if err != nil {
				return err
			}
			projects, err := env.app.Projects.ListProjects(ctx)
			if err != nil {
				return err
			}
			project := views.NewProjectDirectory(projects).Lookup(task.ProjectID)

			out := cmd.OutOrStdout()
			board, err := env.app.NewBoard(ctx, task.ProjectID, &kanban.WriterNotifier{W: out})
			if err != nil {
				return err
			}
			ctl := env.app.NewDragController(board, kanban.WithDispatch(kanban.Synchronous))
			env.logger.LogUserAction("move_task", map[string]interface{}{
				"task_id": task.ID,
				"from":    task.Status,
				"to":      target,
			})

			ctl.StartDrag(kanban.DragItem{TaskID: task.ID, Status: task.Status})
			if err := ctl.HoverTarget(target); err != nil {
				ctl.CancelDrag()
				return err
			}
			moved, err := ctl.Drop(ctx, target)
			if err != nil {
				return err
			}
			if !moved {
				d, _ := target.Display()
				fmt.Fprintf(out, "Task #%s is already in %s\n", task.ID, d.Label)
			}

			if current, ok := board.Task(task.ID); ok && current.Status != target {
				err := fmt.Errorf("task %s stayed in %s", task.ID, current.Status)
				env.logger.WithError(err).Warnw("Move not applied", "task_id", task.ID)
				return err
			}

			columns, err := board.Columns()
			if err != nil {
				return err
			}
			if env.asJSON {
				return writeJSON(out, columns)
			}
			renderBoard(out, project, columns)
			return nil
		},
	}
}
