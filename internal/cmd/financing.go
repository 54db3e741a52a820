package cmd

import (
	"fmt"
	"io"
	"strconv"

	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/spf13/cobra"
)

// FinancingCommand represents the financing command group
type FinancingCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewFinancingCommand creates a new financing command
func NewFinancingCommand(root *RootCommand) *FinancingCommand {
	f := &FinancingCommand{
		root: root,
	}

	f.cmd = &cobra.Command{
		Use:   "financing",
		Short: "Manage financing",
		Long: `Manage financing backed by your investments.

Check how much you can borrow, simulate a loan, request it, and follow its
installments.`,
		Annotations: requiresSession,
	}

	f.cmd.AddCommand(
		f.listCommand(),
		f.eligibilityCommand(),
		f.simulateCommand(),
		f.requestCommand(),
		f.installmentsCommand(),
	)

	return f
}

// Command returns the underlying cobra command
func (f *FinancingCommand) Command() *cobra.Command {
	return f.cmd
}

func parseFinancingRequest(args []string) (*iface.FinancingRequest, error) {
	amount, err := parseAmount(args[0])
	if err != nil {
		return nil, err
	}
	installments, err := strconv.Atoi(args[1])
	if err != nil || installments <= 0 {
		return nil, fmt.Errorf("invalid number of installments %q", args[1])
	}
	return &iface.FinancingRequest{Amount: amount, Installments: installments}, nil
}

func (f *FinancingCommand) listCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List financing",
		RunE: func(cmd *cobra.Command, args []string) error {
			financingService := f.root.Container().FinancingService()

			history, _ := cmd.Flags().GetBool("history")
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")

			var loans []iface.Financing
			var err error
			if history {
				loans, err = financingService.History(cmd.Context(), page, limit)
			} else {
				loans, err = financingService.Active(cmd.Context())
			}
			if err != nil {
				return err
			}

			return render(cmd, loans, func(w io.Writer) error {
				if len(loans) == 0 {
					fmt.Fprintln(w, "No financing found.")
					return nil
				}

				tw := newTable(w)
				fmt.Fprintln(tw, "ID\tAMOUNT\tREMAINING\tINSTALLMENTS\tSTATUS")
				fmt.Fprintln(tw, "--\t------\t---------\t------------\t------")
				for _, loan := range loans {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\n",
						loan.ID,
						money(loan.OriginalAmount),
						money(loan.RemainingAmount),
						loan.PaidInstallments,
						loan.TotalInstallments,
						loan.Status,
					)
				}
				return tw.Flush()
			})
		},
	}

	c.Flags().Bool("history", false, "Show repaid financing")
	c.Flags().Int("page", 0, "Page number (with --history)")
	c.Flags().Int("limit", 0, "Results per page (with --history)")

	return c
}

func (f *FinancingCommand) eligibilityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eligibility",
		Short: "Show how much you can borrow",
		RunE: func(cmd *cobra.Command, args []string) error {
			eligibility, err := f.root.Container().FinancingService().Eligibility(cmd.Context())
			if err != nil {
				return err
			}

			return render(cmd, eligibility, func(w io.Writer) error {
				if !eligibility.Eligible {
					fmt.Fprintln(w, "You are not eligible for financing yet.")
					if eligibility.Reason != "" {
						fmt.Fprintf(w, "  %s\n", eligibility.Reason)
					}
					return nil
				}
				fmt.Fprintf(w, "Available:        %s\n", money(eligibility.MaxAmount))
				fmt.Fprintf(w, "Max installments: %d\n", eligibility.MaxInstallments)
				return nil
			})
		},
	}
}

func (f *FinancingCommand) simulateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <amount> <installments>",
		Short: "Project the cost of a loan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseFinancingRequest(args)
			if err != nil {
				return err
			}

			sim, err := f.root.Container().FinancingService().Simulate(cmd.Context(), req)
			if err != nil {
				return err
			}

			return render(cmd, sim, func(w io.Writer) error {
				fmt.Fprintf(w, "Amount:       %s\n", money(sim.Amount))
				fmt.Fprintf(w, "Installments: %d x %s\n", sim.Installments, money(sim.InstallmentAmount))
				fmt.Fprintf(w, "Total:        %s\n", money(sim.TotalAmount))
				fmt.Fprintf(w, "Rate:         %.2f%%\n", sim.Rate*100)
				return nil
			})
		},
	}
}

func (f *FinancingCommand) requestCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "request <amount> <installments>",
		Short: "Request financing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseFinancingRequest(args)
			if err != nil {
				return err
			}

			ok, err := confirm(cmd, fmt.Sprintf("Request %s in %d installments?", money(req.Amount), req.Installments))
			if err != nil || !ok {
				return err
			}

			loan, err := f.root.Container().FinancingService().Request(cmd.Context(), req)
			if err != nil {
				return err
			}

			return render(cmd, loan, func(w io.Writer) error {
				fmt.Fprintf(w, "✓ Financing of %s approved\n", money(loan.OriginalAmount))
				fmt.Fprintf(w, "  Financing ID: %s\n", loan.ID)
				return nil
			})
		},
	}

	c.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	return c
}

func (f *FinancingCommand) installmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "installments <financing-id>",
		Short: "List the installments of a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			installments, err := f.root.Container().FinancingService().Installments(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd, installments, func(w io.Writer) error {
				tw := newTable(w)
				fmt.Fprintln(tw, "#\tDUE\tAMOUNT\tSTATUS")
				fmt.Fprintln(tw, "-\t---\t------\t------")
				for _, in := range installments {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", in.Number, in.DueDate, money(in.Amount), in.Status)
				}
				return tw.Flush()
			})
		},
	}
}
