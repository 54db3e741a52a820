package cmd

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

const (
	supportEmail    = "soporte@paysur.com"
	supportWhatsApp = "https://wa.me/5491123456789"
)

// SupportCommand represents the support command
type SupportCommand struct {
	root    *RootCommand
	cmd     *cobra.Command
	openURL func(string) error
}

// NewSupportCommand creates a new support command
func NewSupportCommand(root *RootCommand) *SupportCommand {
	s := &SupportCommand{
		root:    root,
		openURL: browser.OpenURL,
	}

	s.cmd = &cobra.Command{
		Use:   "support",
		Short: "Get help",
		Long: `Show support contacts and open the help center in your browser.

Example:
  simply support
  simply support --no-browser`,
		RunE: s.Run,
	}

	s.cmd.Flags().Bool("no-browser", false, "Only print the contacts")

	return s
}

// Command returns the underlying cobra command
func (s *SupportCommand) Command() *cobra.Command {
	return s.cmd
}

// Run executes the support command
func (s *SupportCommand) Run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	helpURL := s.root.Container().SupportURL()

	fmt.Fprintf(out, "Email:    %s\n", supportEmail)
	fmt.Fprintf(out, "WhatsApp: %s\n", supportWhatsApp)
	if helpURL == "" {
		return nil
	}
	fmt.Fprintf(out, "Help:     %s\n", helpURL)

	if noBrowser, _ := cmd.Flags().GetBool("no-browser"); noBrowser {
		return nil
	}
	if err := s.openURL(helpURL); err != nil {
		fmt.Fprintf(out, "Failed to open browser automatically: %v\n", err)
	}
	return nil
}
