// Package report derives totals and weekly breakdowns from the transaction
// log. Nothing here is cached or stored; every call recomputes from the log.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expensenote/expensenote/internal/catalog"
	"github.com/expensenote/expensenote/internal/model"
)

// Window is the length of the weekly report.
const Window = 7 * 24 * time.Hour

// Totals is the all-time summary of a log.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// ComputeTotals sums income and expense over txs. Balance is income minus
// expense.
func ComputeTotals(txs []model.Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, tx := range txs {
		switch tx.Kind {
		case model.KindIncome:
			income = income.Add(tx.Amount)
		case model.KindExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// Bucket is the summed amount for one source or category.
type Bucket struct {
	ID       string
	Amount   decimal.Decimal
	Count    int
	Entry    catalog.Entry
	Resolved bool // false when the id matches no catalog entry
}

// Weekly is the breakdown of the last seven days.
type Weekly struct {
	Start             time.Time // inclusive
	End               time.Time // exclusive
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	IncomeBySource    []Bucket
	ExpenseByCategory []Bucket
}

// Balance returns income minus expense for the week.
func (w Weekly) Balance() decimal.Decimal {
	return w.TotalIncome.Sub(w.TotalExpense)
}

// ComputeWeekly keeps entries with now-7d <= timestamp < now and groups them
// by source or category in first-seen order. The comparison is on instants,
// not calendar days.
func ComputeWeekly(txs []model.Transaction, now time.Time, resolver *catalog.Resolver) Weekly {
	w := Weekly{
		Start:        now.Add(-Window),
		End:          now,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	income := newGrouper(model.KindIncome, resolver)
	expense := newGrouper(model.KindExpense, resolver)
	for _, tx := range InWindow(txs, w.Start, w.End) {
		switch tx.Kind {
		case model.KindIncome:
			w.TotalIncome = w.TotalIncome.Add(tx.Amount)
			income.add(tx)
		case model.KindExpense:
			w.TotalExpense = w.TotalExpense.Add(tx.Amount)
			expense.add(tx)
		}
	}
	w.IncomeBySource = income.buckets
	w.ExpenseByCategory = expense.buckets
	return w
}

// InWindow returns the entries with start <= timestamp < end, in log order.
func InWindow(txs []model.Transaction, start, end time.Time) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if !tx.Timestamp.Before(start) && tx.Timestamp.Before(end) {
			out = append(out, tx)
		}
	}
	return out
}

// Recent returns up to n entries from the head of the log (newest inserted
// first).
func Recent(txs []model.Transaction, n int) []model.Transaction {
	if n < 0 || n >= len(txs) {
		return txs
	}
	return txs[:n]
}

type grouper struct {
	kind     model.Kind
	resolver *catalog.Resolver
	index    map[string]int
	buckets  []Bucket
}

func newGrouper(kind model.Kind, resolver *catalog.Resolver) *grouper {
	return &grouper{kind: kind, resolver: resolver, index: make(map[string]int)}
}

func (g *grouper) add(tx model.Transaction) {
	i, ok := g.index[tx.CategoryOrSourceID]
	if !ok {
		entry, resolved := catalog.Unknown(tx.CategoryOrSourceID), false
		if g.resolver != nil {
			entry, resolved = g.resolver.Resolve(g.kind, tx.CategoryOrSourceID)
		}
		g.buckets = append(g.buckets, Bucket{ID: tx.CategoryOrSourceID, Amount: decimal.Zero, Entry: entry, Resolved: resolved})
		i = len(g.buckets) - 1
		g.index[tx.CategoryOrSourceID] = i
	}
	g.buckets[i].Amount = g.buckets[i].Amount.Add(tx.Amount)
	g.buckets[i].Count++
}
