package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/spf13/cobra"
)

// RegisterCommand represents the register command
type RegisterCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewRegisterCommand creates a new register command
func NewRegisterCommand(root *RootCommand) *RegisterCommand {
	r := &RegisterCommand{
		root: root,
	}

	r.cmd = &cobra.Command{
		Use:   "register",
		Short: "Create a Simply account",
		Long: `Create a Simply account with an interactive wizard.

Fields passed as flags are not asked for. After registering, verify your
email and run 'simply login'.

Examples:
  simply register
  simply register --email ana@example.com --first-name Ana --last-name Paz`,
		RunE: r.Run,
	}

	r.cmd.Flags().String("email", "", "Account email")
	r.cmd.Flags().String("first-name", "", "First name")
	r.cmd.Flags().String("last-name", "", "Last name")
	r.cmd.Flags().String("dni", "", "National ID number")
	r.cmd.Flags().String("phone", "", "Phone number")
	r.cmd.Flags().Bool("password-stdin", false, "Read the password from stdin")

	return r
}

// Command returns the underlying cobra command
func (r *RegisterCommand) Command() *cobra.Command {
	return r.cmd
}

// Run executes the register command
func (r *RegisterCommand) Run(cmd *cobra.Command, args []string) error {
	authService := r.root.Container().AuthService()

	input := &iface.RegisterInput{}
	fields := []struct {
		flag     string
		message  string
		target   *string
		required bool
	}{
		{"email", "Email:", &input.Email, true},
		{"first-name", "First name:", &input.FirstName, true},
		{"last-name", "Last name:", &input.LastName, true},
		{"dni", "DNI:", &input.DNI, true},
		{"phone", "Phone (optional):", &input.Phone, false},
	}

	for _, f := range fields {
		*f.target, _ = cmd.Flags().GetString(f.flag)
		if *f.target != "" {
			continue
		}
		var opts []survey.AskOpt
		if f.required {
			opts = append(opts, survey.WithValidator(survey.Required))
		}
		if err := survey.AskOne(&survey.Input{Message: f.message}, f.target, opts...); err != nil {
			return err
		}
	}

	password, err := readPassword(cmd, "Password:")
	if err != nil {
		return err
	}
	input.Password = password

	if err := authService.Register(cmd.Context(), input); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Account created for %s\n", input.Email)
	fmt.Fprintln(cmd.OutOrStdout(), "  Check your inbox to verify your email, then run: simply login")
	return nil
}
