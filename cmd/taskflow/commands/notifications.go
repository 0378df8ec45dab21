package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmaster/taskflow/internal/domain/entities"
)

// NewNotificationsCommand lists and manages notifications
func NewNotificationsCommand(env *Env) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "List notifications, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				list []*entities.Notification
				err  error
			)
			if typ != "" {
				list, err = env.app.Notifications.ListNotificationsByType(ctx, entities.NotificationType(typ))
			} else {
				list, err = env.app.Notifications.ListNotifications(ctx)
			}
			if err != nil {
				return err
			}
			unread, err := env.app.Notifications.UnreadCount(ctx)
			if err != nil {
				return err
			}

			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"notifications": list,
					"unreadCount":   unread,
				})
			}
			renderNotifications(cmd.OutOrStdout(), list, unread)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Only show one type: mention, due_date, assignment, other")

	cmd.AddCommand(&cobra.Command{
		Use:   "read <notificationId>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := env.app.Notifications.MarkAsRead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked #%s as read\n", n.ID)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			read, err := env.app.Notifications.MarkAllAsRead(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d notifications as read\n", len(read))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <notificationId>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := env.app.Notifications.DeleteNotification(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted notification #%s\n", n.ID)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleared, err := env.app.Notifications.ClearAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d notifications\n", len(cleared))
			return nil
		},
	})
	return cmd
}
