package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LogoutCommand represents the logout command
type LogoutCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewLogoutCommand creates a new logout command
func NewLogoutCommand(root *RootCommand) *LogoutCommand {
	l := &LogoutCommand{
		root: root,
	}

	l.cmd = &cobra.Command{
		Use:   "logout",
		Short: "Log out from your Simply account",
		Long: `Log out from your Simply account and clear stored credentials.

This command removes your tokens from the keychain. With --forget it also
clears the remembered email and other local preferences.

Example:
  simply logout
  simply logout --forget`,
		RunE: l.Run,
	}

	l.cmd.Flags().Bool("forget", false, "Also clear local preferences")

	return l
}

// Command returns the underlying cobra command
func (l *LogoutCommand) Command() *cobra.Command {
	return l.cmd
}

// Run executes the logout command
func (l *LogoutCommand) Run(cmd *cobra.Command, args []string) error {
	authService := l.root.Container().AuthService()

	if err := authService.Logout(cmd.Context()); err != nil {
		return err
	}

	if forget, _ := cmd.Flags().GetBool("forget"); forget {
		if err := authService.ForgetDevice(); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Successfully logged out from Simply!")
	return nil
}
