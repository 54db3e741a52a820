package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NotificationsCommand represents the notifications command group
type NotificationsCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewNotificationsCommand creates a new notifications command
func NewNotificationsCommand(root *RootCommand) *NotificationsCommand {
	n := &NotificationsCommand{
		root: root,
	}

	n.cmd = &cobra.Command{
		Use:         "notifications",
		Short:       "Read your notifications",
		Annotations: requiresSession,
	}

	n.cmd.AddCommand(n.listCommand(), n.readAllCommand())

	return n
}

// Command returns the underlying cobra command
func (n *NotificationsCommand) Command() *cobra.Command {
	return n.cmd
}

func (n *NotificationsCommand) listCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")

			notifications, err := n.root.Container().NotificationService().List(cmd.Context(), page, limit)
			if err != nil {
				return err
			}

			return render(cmd, notifications, func(w io.Writer) error {
				if len(notifications) == 0 {
					fmt.Fprintln(w, "No notifications.")
					return nil
				}

				for _, item := range notifications {
					marker := " "
					if !item.Read {
						marker = "•"
					}
					fmt.Fprintf(w, "%s %s  %s\n", marker, item.CreatedAt.Local().Format("2006-01-02 15:04"), item.Title)
					if item.Body != "" {
						fmt.Fprintf(w, "    %s\n", item.Body)
					}
				}
				return nil
			})
		},
	}

	c.Flags().Int("page", 1, "Page number")
	c.Flags().Int("limit", 20, "Notifications per page")

	return c
}

func (n *NotificationsCommand) readAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := n.root.Container().NotificationService().MarkAllRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ All notifications marked as read")
			return nil
		},
	}
}
