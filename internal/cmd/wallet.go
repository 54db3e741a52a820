package cmd

import (
	"fmt"
	"io"

	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/spf13/cobra"
)

// BalanceCommand represents the balance command
type BalanceCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewBalanceCommand creates a new balance command
func NewBalanceCommand(root *RootCommand) *BalanceCommand {
	b := &BalanceCommand{
		root: root,
	}

	b.cmd = &cobra.Command{
		Use:   "balance",
		Short: "Show your wallet balance",
		Long: `Show your wallet balance together with invested money and debt.

Examples:
  simply balance
  simply balance -o json`,
		Annotations: requiresSession,
		RunE:        b.Run,
	}

	return b
}

// Command returns the underlying cobra command
func (b *BalanceCommand) Command() *cobra.Command {
	return b.cmd
}

// Run executes the balance command
func (b *BalanceCommand) Run(cmd *cobra.Command, args []string) error {
	dashboard, err := b.root.Container().WalletService().Dashboard(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, dashboard, func(w io.Writer) error {
		fmt.Fprintf(w, "Balance:             %s\n", money(dashboard.Balance))
		fmt.Fprintf(w, "Invested:            %s\n", money(dashboard.TotalInvested))
		fmt.Fprintf(w, "Returns:             %s\n", money(dashboard.TotalReturns))
		fmt.Fprintf(w, "Available financing: %s\n", money(dashboard.AvailableFinancing))
		if dashboard.TotalDebt > 0 {
			fmt.Fprintf(w, "Debt:                %s\n", money(dashboard.TotalDebt))
		}
		return nil
	})
}

// WalletCommand represents the wallet command group
type WalletCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewWalletCommand creates a new wallet command
func NewWalletCommand(root *RootCommand) *WalletCommand {
	wc := &WalletCommand{
		root: root,
	}

	wc.cmd = &cobra.Command{
		Use:   "wallet",
		Short: "Manage your wallet",
		Long: `Manage your Simply wallet.

Show your CVU and alias, list transactions, or change your alias.`,
		Annotations: requiresSession,
	}

	wc.cmd.AddCommand(wc.accountCommand(), wc.transactionsCommand(), wc.aliasCommand())

	return wc
}

// Command returns the underlying cobra command
func (wc *WalletCommand) Command() *cobra.Command {
	return wc.cmd
}

func (wc *WalletCommand) accountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show your CVU and alias",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := wc.root.Container().WalletService().Account(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, account, func(w io.Writer) error {
				fmt.Fprintf(w, "CVU:    %s\n", account.CVU)
				fmt.Fprintf(w, "Alias:  %s\n", orDash(account.Alias))
				if account.Holder != "" {
					fmt.Fprintf(w, "Holder: %s\n", account.Holder)
				}
				return nil
			})
		},
	}
}

func (wc *WalletCommand) transactionsCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "transactions",
		Short: "List wallet transactions",
		Long: `List wallet transactions, newest first.

Examples:
  simply wallet transactions
  simply wallet transactions --limit 50 --type transfer_in
  simply wallet transactions --from 2026-01-01 --to 2026-01-31 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := &iface.TransactionFilter{}
			filter.Page, _ = cmd.Flags().GetInt("page")
			filter.Limit, _ = cmd.Flags().GetInt("limit")
			filter.Type, _ = cmd.Flags().GetString("type")
			filter.StartDate, _ = cmd.Flags().GetString("from")
			filter.EndDate, _ = cmd.Flags().GetString("to")

			transactions, err := wc.root.Container().WalletService().Transactions(cmd.Context(), filter)
			if err != nil {
				return err
			}

			return render(cmd, transactions, func(w io.Writer) error {
				if len(transactions) == 0 {
					fmt.Fprintln(w, "No transactions found.")
					return nil
				}

				tw := newTable(w)
				fmt.Fprintln(tw, "DATE\tTYPE\tDESCRIPTION\tAMOUNT\tSTATUS")
				fmt.Fprintln(tw, "----\t----\t-----------\t------\t------")
				for _, tx := range transactions {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						tx.CreatedAt.Local().Format("2006-01-02 15:04"),
						tx.Type,
						tx.Description,
						money(tx.Amount),
						orDash(tx.Status),
					)
				}
				return tw.Flush()
			})
		},
	}

	c.Flags().Int("page", 1, "Page number")
	c.Flags().Int("limit", 20, "Transactions per page")
	c.Flags().String("type", "", "Filter by transaction type")
	c.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	c.Flags().String("to", "", "End date (YYYY-MM-DD)")

	return c
}

func (wc *WalletCommand) aliasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alias <new-alias>",
		Short: "Change your wallet alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := wc.root.Container().WalletService().UpdateAlias(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Alias changed to %s\n", account.Alias)
			return nil
		},
	}
}
