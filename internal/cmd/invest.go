package cmd

import (
	"fmt"
	"io"

	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/spf13/cobra"
)

// InvestCommand represents the invest command group
type InvestCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewInvestCommand creates a new invest command
func NewInvestCommand(root *RootCommand) *InvestCommand {
	i := &InvestCommand{
		root: root,
	}

	i.cmd = &cobra.Command{
		Use:   "invest",
		Short: "Manage investments",
		Long: `Manage your investments.

Invested money earns daily returns and backs the financing you can request.`,
		Annotations: requiresSession,
	}

	i.cmd.AddCommand(i.listCommand(), i.simulateCommand(), i.createCommand(), i.redeemCommand())

	return i
}

// Command returns the underlying cobra command
func (i *InvestCommand) Command() *cobra.Command {
	return i.cmd
}

func (i *InvestCommand) listCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List investments",
		Long: `List your active investments, or past ones with --history.

Examples:
  simply invest list
  simply invest list --history -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			investmentService := i.root.Container().InvestmentService()

			history, _ := cmd.Flags().GetBool("history")
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")

			var investments []iface.Investment
			var err error
			if history {
				investments, err = investmentService.History(cmd.Context(), page, limit)
			} else {
				investments, err = investmentService.Active(cmd.Context())
			}
			if err != nil {
				return err
			}

			return render(cmd, investments, func(w io.Writer) error {
				if len(investments) == 0 {
					fmt.Fprintln(w, "No investments found.")
					fmt.Fprintln(w, "\nStart investing with: simply invest create <amount>")
					return nil
				}

				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tINVESTED\tCURRENT\tRETURNS\tRATE\tSTATUS")
				fmt.Fprintln(tw, "--\t--------\t-------\t-------\t----\t------")
				for _, inv := range investments {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f%%\t%s\n",
						inv.ID,
						money(inv.InitialAmount),
						money(inv.CurrentAmount),
						money(inv.TotalReturns),
						inv.YearlyRate*100,
						inv.Status,
					)
				}
				return tw.Flush()
			})
		},
	}

	c.Flags().Bool("history", false, "Show finished investments")
	c.Flags().Int("page", 0, "Page number (with --history)")
	c.Flags().Int("limit", 0, "Results per page (with --history)")

	return c
}

func (i *InvestCommand) simulateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <amount>",
		Short: "Project the returns of an investment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			sim, err := i.root.Container().InvestmentService().Simulate(cmd.Context(), amount)
			if err != nil {
				return err
			}

			return render(cmd, sim, func(w io.Writer) error {
				fmt.Fprintf(w, "Amount:              %s\n", money(sim.Amount))
				fmt.Fprintf(w, "Yearly rate:         %.2f%%\n", sim.YearlyRate*100)
				fmt.Fprintf(w, "Monthly return:      %s\n", money(sim.MonthlyReturn))
				fmt.Fprintf(w, "Yearly return:       %s\n", money(sim.YearlyReturn))
				fmt.Fprintf(w, "Available financing: %s\n", money(sim.AvailableFinancing))
				return nil
			})
		},
	}
}

func (i *InvestCommand) createCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "create <amount>",
		Short: "Invest money from your wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			ok, err := confirm(cmd, fmt.Sprintf("Invest %s from your wallet?", money(amount)))
			if err != nil || !ok {
				return err
			}

			inv, err := i.root.Container().InvestmentService().Create(cmd.Context(), amount)
			if err != nil {
				return err
			}

			return render(cmd, inv, func(w io.Writer) error {
				fmt.Fprintf(w, "✓ Invested %s\n", money(inv.InitialAmount))
				fmt.Fprintf(w, "  Investment ID: %s\n", inv.ID)
				return nil
			})
		},
	}

	c.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	return c
}

func (i *InvestCommand) redeemCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "redeem <investment-id> <amount>",
		Short: "Withdraw money from an investment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			ok, err := confirm(cmd, fmt.Sprintf("Redeem %s from investment %s?", money(amount), args[0]))
			if err != nil || !ok {
				return err
			}

			inv, err := i.root.Container().InvestmentService().Redeem(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}

			return render(cmd, inv, func(w io.Writer) error {
				fmt.Fprintf(w, "✓ Redeemed %s\n", money(amount))
				fmt.Fprintf(w, "  Remaining: %s\n", money(inv.CurrentAmount))
				return nil
			})
		},
	}

	c.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	return c
}
