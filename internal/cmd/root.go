// Package cmd provides the command-line interface for the Simply CLI.
// It contains all cobra commands and their implementations.
package cmd

import (
	"fmt"
	"os"

	"github.com/simply-app/simply-cli/internal/di"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"
)

// annotationRequiresSession marks commands that only run for a validated
// session. Subcommands inherit it from their group.
const annotationRequiresSession = "simply/requires-session"

var requiresSession = map[string]string{annotationRequiresSession: "true"}

// RootCommand represents the root CLI command
type RootCommand struct {
	container *di.Container
	cmd       *cobra.Command
}

// NewRootCommand creates a new root command
func NewRootCommand() *RootCommand {
	r := &RootCommand{}

	r.cmd = &cobra.Command{
		Use:   "simply",
		Short: "Simply CLI - Command line interface for the Simply wallet",
		Long: `Simply CLI is a command-line tool for your Simply account.

Check your balance, send transfers, invest, request financing and manage
your cards from the terminal.

To get started, run:
  simply login    - Authenticate with your Simply account
  simply balance  - View your wallet balance`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.initialize(cmd)
		},
	}

	// Global flags
	r.cmd.PersistentFlags().StringP("output", "o", outputText, "Output format (text, json, yaml)")

	r.cmd.AddCommand(
		NewLoginCommand(r).Command(),
		NewLogoutCommand(r).Command(),
		NewRegisterCommand(r).Command(),
		NewStatusCommand(r).Command(),
		NewBalanceCommand(r).Command(),
		NewWalletCommand(r).Command(),
		NewTransferCommand(r).Command(),
		NewInvestCommand(r).Command(),
		NewFinancingCommand(r).Command(),
		NewCardsCommand(r).Command(),
		NewNotificationsCommand(r).Command(),
		NewKYCCommand(r).Command(),
		NewSupportCommand(r).Command(),
	)

	return r
}

// initialize sets up the DI container and, for commands that need one,
// reconciles the stored session with the backend.
func (r *RootCommand) initialize(cmd *cobra.Command) error {
	if err := validateOutputFormat(cmd); err != nil {
		return err
	}

	// Skip if container is already set (e.g., for testing)
	if r.container == nil {
		var err error
		r.container, err = di.NewContainer()
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
	}

	if !needsSession(cmd) {
		return nil
	}
	return r.container.AuthService().EnsureAuthenticated(cmd.Context())
}

func needsSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationRequiresSession] == "true" {
			return true
		}
	}
	return false
}

// Execute runs the root command and disposes the container afterwards
func (r *RootCommand) Execute() error {
	err := r.cmd.Execute()
	if r.container != nil {
		if disposeErr := r.container.Dispose(); disposeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", disposeErr)
		}
	}
	return err
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Container returns the DI container
func (r *RootCommand) Container() *di.Container {
	return r.container
}

// SetContainer sets a custom container (for testing)
func (r *RootCommand) SetContainer(c *di.Container) {
	r.container = c
}

// Execute is the main entry point for the CLI
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
