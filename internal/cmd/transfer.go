package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/spf13/cobra"
)

// TransferCommand represents the transfer command group
type TransferCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewTransferCommand creates a new transfer command
func NewTransferCommand(root *RootCommand) *TransferCommand {
	t := &TransferCommand{
		root: root,
	}

	t.cmd = &cobra.Command{
		Use:   "transfer",
		Short: "Send money",
		Long: `Send money to any CVU, CBU or alias.

Resolve a destination before sending, list saved contacts, or check your
transfer limits.`,
		Annotations: requiresSession,
	}

	t.cmd.AddCommand(t.sendCommand(), t.validateCommand(), t.contactsCommand(), t.limitsCommand())

	return t
}

// Command returns the underlying cobra command
func (t *TransferCommand) Command() *cobra.Command {
	return t.cmd
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

// confirm asks for confirmation unless --yes was given
func confirm(cmd *cobra.Command, message string) (bool, error) {
	if skip, _ := cmd.Flags().GetBool("yes"); skip {
		return true, nil
	}

	var ok bool
	if err := survey.AskOne(&survey.Confirm{
		Message: message,
		Default: false,
	}, &ok); err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
	}
	return ok, nil
}

func (t *TransferCommand) sendCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "send <destination> <amount>",
		Short: "Send money to a CVU or alias",
		Long: `Send money to a CVU, CBU or alias.

The destination is resolved first and shown for confirmation.

Examples:
  simply transfer send juan.perez.mp 1500
  simply transfer send 0000003100010000000001 250.50 --description "Alquiler" --yes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			transferService := t.root.Container().TransferService()

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			dest, err := transferService.Validate(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nTo:     %s\n", dest.Name)
			fmt.Fprintf(out, "CVU:    %s\n", dest.CVU)
			if dest.Bank != "" {
				fmt.Fprintf(out, "Bank:   %s\n", dest.Bank)
			}
			fmt.Fprintf(out, "Amount: %s\n\n", money(amount))

			ok, err := confirm(cmd, fmt.Sprintf("Send %s to %s?", money(amount), dest.Name))
			if err != nil || !ok {
				return err
			}

			description, _ := cmd.Flags().GetString("description")
			result, err := transferService.Send(ctx, &iface.TransferInput{
				DestinationCVU: dest.CVU,
				Amount:         amount,
				Description:    description,
			})
			if err != nil {
				return err
			}

			return render(cmd, result, func(w io.Writer) error {
				fmt.Fprintf(w, "✓ Sent %s to %s\n", money(result.Amount), dest.Name)
				fmt.Fprintf(w, "  Transfer ID: %s\n", result.ID)
				return nil
			})
		},
	}

	c.Flags().String("description", "", "Transfer description")
	c.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	return c
}

func (t *TransferCommand) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <destination>",
		Short: "Look up the owner of a CVU or alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := t.root.Container().TransferService().Validate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, dest, func(w io.Writer) error {
				fmt.Fprintf(w, "Name:  %s\n", dest.Name)
				fmt.Fprintf(w, "CVU:   %s\n", dest.CVU)
				fmt.Fprintf(w, "Alias: %s\n", orDash(dest.Alias))
				fmt.Fprintf(w, "Bank:  %s\n", orDash(dest.Bank))
				return nil
			})
		},
	}
}

func (t *TransferCommand) contactsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "List saved contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts, err := t.root.Container().TransferService().Contacts(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, contacts, func(w io.Writer) error {
				if len(contacts) == 0 {
					fmt.Fprintln(w, "No contacts saved.")
					return nil
				}
				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tNAME\tCVU\tALIAS")
				fmt.Fprintln(tw, "--\t----\t---\t-----")
				for _, c := range contacts {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.CVU, orDash(c.Alias))
				}
				return tw.Flush()
			})
		},
	}
}

func (t *TransferCommand) limitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show transfer limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			limits, err := t.root.Container().TransferService().Limits(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, limits, func(w io.Writer) error {
				fmt.Fprintf(w, "Daily:   %s of %s used\n", money(limits.UsedToday), money(limits.Daily))
				fmt.Fprintf(w, "Monthly: %s of %s used\n", money(limits.UsedThisMonth), money(limits.Monthly))
				return nil
			})
		},
	}
}
