package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// CardsCommand represents the cards command group
type CardsCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewCardsCommand creates a new cards command
func NewCardsCommand(root *RootCommand) *CardsCommand {
	c := &CardsCommand{
		root: root,
	}

	c.cmd = &cobra.Command{
		Use:   "cards",
		Short: "Manage your cards",
		Long: `Manage your prepaid cards.

List your cards, or block and unblock one.`,
		Annotations: requiresSession,
	}

	c.cmd.AddCommand(c.listCommand(), c.blockCommand(), c.unblockCommand())

	return c
}

// Command returns the underlying cobra command
func (c *CardsCommand) Command() *cobra.Command {
	return c.cmd
}

func (c *CardsCommand) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := c.root.Container().CardService().List(cmd.Context())
			if err != nil {
				return err
			}

			return render(cmd, cards, func(w io.Writer) error {
				if len(cards) == 0 {
					fmt.Fprintln(w, "No cards found.")
					return nil
				}

				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tTYPE\tNUMBER\tEXPIRY\tSTATUS")
				fmt.Fprintln(tw, "--\t----\t------\t------\t------")
				for _, card := range cards {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						card.ID,
						card.Type,
						card.Number,
						orDash(card.Expiry),
						card.Status,
					)
				}
				return tw.Flush()
			})
		},
	}
}

func (c *CardsCommand) blockCommand() *cobra.Command {
	block := &cobra.Command{
		Use:   "block <card-id>",
		Short: "Block a card",
		Long: `Block a card. Blocked cards reject every purchase until unblocked.

Examples:
  simply cards block card-123
  simply cards block card-123 --reason lost --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd, fmt.Sprintf("Block card %s?", args[0]))
			if err != nil || !ok {
				return err
			}

			reason, _ := cmd.Flags().GetString("reason")
			if err := c.root.Container().CardService().Block(cmd.Context(), args[0], reason); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Card %s blocked\n", args[0])
			return nil
		},
	}

	block.Flags().String("reason", "user_request", "Why the card is blocked (lost, stolen, user_request)")
	block.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	return block
}

func (c *CardsCommand) unblockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unblock <card-id>",
		Short: "Unblock a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.root.Container().CardService().Unblock(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Card %s unblocked\n", args[0])
			return nil
		},
	}
}
