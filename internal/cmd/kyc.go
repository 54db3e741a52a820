package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// KYCCommand represents the kyc command
type KYCCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewKYCCommand creates a new kyc command
func NewKYCCommand(root *RootCommand) *KYCCommand {
	k := &KYCCommand{
		root: root,
	}

	k.cmd = &cobra.Command{
		Use:   "kyc",
		Short: "Verify your identity",
		Long: `Verify your identity with our verification provider.

This command opens the provider's page in your browser and waits until the
verification is approved or rejected.

Example:
  simply kyc`,
		Annotations: requiresSession,
		RunE:        k.Run,
	}

	return k
}

// Command returns the underlying cobra command
func (k *KYCCommand) Command() *cobra.Command {
	return k.cmd
}

// Run executes the kyc command
func (k *KYCCommand) Run(cmd *cobra.Command, args []string) error {
	if _, err := k.root.Container().KYCFlow(cmd.OutOrStdout()).Run(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Identity verified!")
	return nil
}
