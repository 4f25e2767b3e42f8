package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/ledger"
	"github.com/expensenote/expensenote/internal/model"
	"github.com/expensenote/expensenote/internal/report"
)

// DashboardSize is the number of entries history shows by default.
const DashboardSize = 10

func newAddCommand(opts *rootOptions) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record income or an expense",
	}
	addCmd.AddCommand(
		newAddKindCommand(opts, model.KindIncome, "income <amount> <source-id>", "Record income from a source"),
		newAddKindCommand(opts, model.KindExpense, "expense <amount> <category-id>", "Record an expense in a category"),
	)
	return addCmd
}

func newAddKindCommand(opts *rootOptions, kind model.Kind, use, short string) *cobra.Command {
	var note string
	var at string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[0], err)
			}
			ts, err := parseTimestamp(at, a.loc)
			if err != nil {
				return err
			}

			tx, err := a.session.AddTransaction(cmd.Context(), ledger.AddTransactionParams{
				Kind:               kind,
				Amount:             amount,
				CategoryOrSourceID: args[1],
				Timestamp:          ts,
				Note:               note,
			})
			if err != nil {
				return err
			}

			label := a.session.Resolver().Label(tx, a.lang())
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s) %s\n", tx.Kind, formatAmount(tx.Amount), label, tx.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&note, "note", "", "free-text note")
	cmd.Flags().StringVar(&at, "at", "", "when it happened: RFC 3339 or YYYY-MM-DD (default now)")

	return cmd
}

// parseTimestamp accepts RFC 3339 or a bare date in loc. Empty means now.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("parsing time %q: want RFC 3339 or YYYY-MM-DD", s)
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			removed, err := a.session.DeleteTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No transaction %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		}),
	}
}

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int
	var all bool
	var kind string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			txs := a.session.State().Transactions
			if kind != "" {
				k := model.Kind(kind)
				if !k.Valid() {
					return errors.New("--kind must be income or expense")
				}
				txs = filterKind(txs, k)
			}
			if !all {
				txs = report.Recent(txs, limit)
			}
			if len(txs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions")
				return nil
			}

			resolver := a.session.Resolver()
			lang := a.lang()
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tCATEGORY\tNOTE\tID")
			for _, tx := range txs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					a.localDate(tx.Timestamp), tx.Kind, formatAmount(tx.Amount),
					resolver.Label(tx, lang), tx.Note, tx.ID)
			}
			return w.Flush()
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", DashboardSize, "number of entries to show")
	cmd.Flags().BoolVar(&all, "all", false, "show every entry")
	cmd.Flags().StringVar(&kind, "kind", "", "only income or only expense")

	return cmd
}

func filterKind(txs []model.Transaction, kind model.Kind) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if tx.Kind == kind {
			out = append(out, tx)
		}
	}
	return out
}

func newTotalsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show all-time income, expense and balance",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			totals := report.ComputeTotals(a.session.State().Transactions)
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "Income:\t%s\n", formatAmount(totals.Income))
			fmt.Fprintf(w, "Expense:\t%s\n", formatAmount(totals.Expense))
			fmt.Fprintf(w, "Balance:\t%s\n", formatAmount(totals.Balance))
			return w.Flush()
		}),
	}
}
