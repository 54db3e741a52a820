package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/spf13/cobra"
)

// LoginCommand represents the login command
type LoginCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewLoginCommand creates a new login command
func NewLoginCommand(root *RootCommand) *LoginCommand {
	l := &LoginCommand{
		root: root,
	}

	l.cmd = &cobra.Command{
		Use:   "login",
		Short: "Log in to your Simply account",
		Long: `Log in to your Simply account with your email and password.

The access and refresh tokens are stored in the operating system keychain.
The email of the last successful login is offered as the default.

Examples:
  simply login
  simply login --email ana@example.com
  echo "$PASSWORD" | simply login --email ana@example.com --password-stdin`,
		RunE: l.Run,
	}

	l.cmd.Flags().String("email", "", "Account email")
	l.cmd.Flags().Bool("password-stdin", false, "Read the password from stdin")

	return l
}

// Command returns the underlying cobra command
func (l *LoginCommand) Command() *cobra.Command {
	return l.cmd
}

// Run executes the login command
func (l *LoginCommand) Run(cmd *cobra.Command, args []string) error {
	authService := l.root.Container().AuthService()

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		if err := survey.AskOne(&survey.Input{
			Message: "Email:",
			Default: authService.LastLoginEmail(),
		}, &email, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	password, err := readPassword(cmd, "Password:")
	if err != nil {
		return err
	}

	user, err := authService.Login(cmd.Context(), &iface.LoginInput{Email: email, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
	return nil
}

// readPassword reads a password from stdin when --password-stdin is set,
// or prompts for it.
func readPassword(cmd *cobra.Command, message string) (string, error) {
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")
	if fromStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	var password string
	if err := survey.AskOne(&survey.Password{
		Message: message,
	}, &password, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return password, nil
}
