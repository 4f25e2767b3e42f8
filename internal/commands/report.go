package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/report"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	var keepUnread bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the last seven days by source and category",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			st := a.session.State()
			weekly := report.ComputeWeekly(st.Transactions, a.session.Now(), a.session.Resolver())
			lang := st.Language

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Weekly report %s to %s\n\n", a.localDate(weekly.Start), a.localDate(weekly.End))

			w := newTable(out)
			fmt.Fprintf(w, "Income:\t%s\n", formatAmount(weekly.TotalIncome))
			for _, b := range weekly.IncomeBySource {
				fmt.Fprintf(w, "  %s\t%s\n", entryLabel(b.Entry, lang), formatAmount(b.Amount))
			}
			fmt.Fprintf(w, "Expense:\t%s\n", formatAmount(weekly.TotalExpense))
			for _, b := range weekly.ExpenseByCategory {
				fmt.Fprintf(w, "  %s\t%s\n", entryLabel(b.Entry, lang), formatAmount(b.Amount))
			}
			fmt.Fprintf(w, "Balance:\t%s\n", formatAmount(weekly.Balance()))
			if err := w.Flush(); err != nil {
				return err
			}

			if keepUnread {
				return nil
			}
			return a.session.MarkReportRead(cmd.Context())
		}),
	}

	cmd.Flags().BoolVar(&keepUnread, "keep-unread", false, "do not clear the unread report flag")

	return cmd
}
