package commands

import (
	"github.com/spf13/cobra"

	"github.com/taskmaster/taskflow/internal/domain/entities"
	"github.com/taskmaster/taskflow/internal/ports"
)

// NewSettingsCommand shows the preferences, updating any flag given
func NewSettingsCommand(env *Env) *cobra.Command {
	var (
		taskView, theme                            string
		notifications, email, push, sharing, stats bool
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req ports.UpdateSettingsRequest
			changed := false
			flags := cmd.Flags()

			if flags.Changed("task-view") {
				tv := entities.TaskView(taskView)
				req.TaskView, changed = &tv, true
			}
			if flags.Changed("theme") {
				th := entities.Theme(theme)
				req.Theme, changed = &th, true
			}
			for name, target := range map[string]struct {
				value *bool
				field **bool
			}{
				"notifications":       {&notifications, &req.Notifications},
				"email-notifications": {&email, &req.EmailNotifications},
				"push-notifications":  {&push, &req.PushNotifications},
				"data-sharing":        {&sharing, &req.DataSharing},
				"analytics":           {&stats, &req.Analytics},
			} {
				if flags.Changed(name) {
					*target.field, changed = target.value, true
				}
			}

			var (
				settings entities.Settings
				err      error
			)
			if changed {
				settings, err = env.app.Settings.UpdateSettings(cmd.Context(), req)
			} else {
				settings, err = env.app.Settings.GetSettings(cmd.Context())
			}
			if err != nil {
				return err
			}
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), settings)
			}
			renderSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}

	cmd.Flags().StringVar(&taskView, "task-view", "", "Default task view: list, kanban, calendar")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme: light or dark")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "In-app notifications")
	cmd.Flags().BoolVar(&email, "email-notifications", true, "Email notifications")
	cmd.Flags().BoolVar(&push, "push-notifications", false, "Push notifications")
	cmd.Flags().BoolVar(&sharing, "data-sharing", false, "Share usage data")
	cmd.Flags().BoolVar(&stats, "analytics", true, "Anonymous analytics")
	return cmd
}
