package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/report"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the ledger summary",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			st := a.session.State()
			totals := report.ComputeTotals(st.Transactions)

			password := "set"
			if !st.Configured() {
				password = "not set (run init)"
			}
			unread := "none"
			if st.HasUnreadReport {
				unread = "unread (run report)"
			}
			last := st.LastNotificationDate
			if last == "" {
				last = "never"
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "Password:\t%s\n", password)
			fmt.Fprintf(w, "Storage:\t%s %s\n", a.cfg.Storage.Backend, a.cfg.Storage.Path)
			fmt.Fprintf(w, "Language:\t%s\n", st.Language)
			fmt.Fprintf(w, "Transactions:\t%d\n", len(st.Transactions))
			fmt.Fprintf(w, "Income:\t%s\n", formatAmount(totals.Income))
			fmt.Fprintf(w, "Expense:\t%s\n", formatAmount(totals.Expense))
			fmt.Fprintf(w, "Balance:\t%s\n", formatAmount(totals.Balance))
			fmt.Fprintf(w, "Weekly report:\t%s\n", unread)
			fmt.Fprintf(w, "Last notification:\t%s\n", last)
			return w.Flush()
		}),
	}
}
