package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensenote/expensenote/internal/catalog"
	"github.com/expensenote/expensenote/internal/model"
)

var now = time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func daysAgo(d float64) time.Time {
	return now.Add(-time.Duration(d * float64(24*time.Hour)))
}

func income(id, src, amount string, at time.Time) model.Transaction {
	return model.Transaction{ID: id, Kind: model.KindIncome, Amount: dec(amount), CategoryOrSourceID: src, Timestamp: at}
}

func expense(id, cat, amount string, at time.Time) model.Transaction {
	return model.Transaction{ID: id, Kind: model.KindExpense, Amount: dec(amount), CategoryOrSourceID: cat, Timestamp: at}
}

func resolverFor(st model.AppState) *catalog.Resolver {
	if st.ExpenseCategories == nil {
		st.ExpenseCategories = catalog.DefaultExpenseCategories()
	}
	return catalog.NewResolver(st)
}

func TestComputeTotals_Empty(t *testing.T) {
	got := ComputeTotals(nil)
	assert.True(t, got.Income.IsZero())
	assert.True(t, got.Expense.IsZero())
	assert.True(t, got.Balance.IsZero())
}

func TestComputeTotals_BalanceIsIncomeMinusExpense(t *testing.T) {
	logs := [][]model.Transaction{
		{income("1", "father", "500", daysAgo(2)), expense("2", "snacks", "200", daysAgo(10))},
		{expense("1", "snacks", "0.1", now), expense("2", "snacks", "0.2", now)},
		{income("1", "mother", "19.99", now), income("2", "other", "0.01", now), expense("3", "transport", "25", now)},
	}
	for _, txs := range logs {
		got := ComputeTotals(txs)
		assert.True(t, got.Balance.Equal(got.Income.Sub(got.Expense)))
	}

	// Decimal sums are exact.
	got := ComputeTotals(logs[1])
	assert.True(t, got.Expense.Equal(dec("0.3")), "got %s", got.Expense)
}

func TestScenario_TwoTransactions(t *testing.T) {
	txs := []model.Transaction{
		income("1", "father", "500", daysAgo(2)),
		expense("2", "snacks", "200", daysAgo(10)),
	}

	totals := ComputeTotals(txs)
	assert.True(t, totals.Income.Equal(dec("500")))
	assert.True(t, totals.Expense.Equal(dec("200")))
	assert.True(t, totals.Balance.Equal(dec("300")))

	weekly := ComputeWeekly(txs, now, resolverFor(model.AppState{}))
	assert.True(t, weekly.TotalIncome.Equal(dec("500")))
	assert.True(t, weekly.TotalExpense.IsZero(), "the 10-day-old expense is outside the window")
	assert.Empty(t, weekly.ExpenseByCategory)
	require.Len(t, weekly.IncomeBySource, 1)
	assert.Equal(t, "father", weekly.IncomeBySource[0].ID)
	assert.True(t, weekly.Balance().Equal(dec("500")))
}

func TestComputeWeekly_WindowBounds(t *testing.T) {
	txs := []model.Transaction{
		expense("start", "snacks", "1", now.Add(-Window)),
		expense("before", "snacks", "2", now.Add(-Window-time.Nanosecond)),
		expense("end", "snacks", "4", now),
		expense("inside", "snacks", "8", now.Add(-time.Nanosecond)),
		expense("future", "snacks", "16", now.Add(time.Hour)),
	}

	weekly := ComputeWeekly(txs, now, resolverFor(model.AppState{}))
	// start is inclusive and end is exclusive, so only start and inside count.
	assert.True(t, weekly.TotalExpense.Equal(dec("9")), "got %s", weekly.TotalExpense)
	assert.Equal(t, now.Add(-Window), weekly.Start)
	assert.Equal(t, now, weekly.End)
}

func TestComputeWeekly_InstantNotCalendarDay(t *testing.T) {
	// Seven days and one minute ago is the same calendar day as the window
	// start but still before it.
	txs := []model.Transaction{expense("1", "snacks", "5", now.Add(-Window-time.Minute))}
	weekly := ComputeWeekly(txs, now, resolverFor(model.AppState{}))
	assert.True(t, weekly.TotalExpense.IsZero())
}

func TestComputeWeekly_GroupsInFirstSeenOrder(t *testing.T) {
	txs := []model.Transaction{
		expense("5", "transport", "10", daysAgo(1)),
		income("4", "mother", "100", daysAgo(1)),
		expense("3", "snacks", "5", daysAgo(2)),
		expense("2", "transport", "15", daysAgo(3)),
		income("1", "father", "50", daysAgo(4)),
		income("0", "mother", "25", daysAgo(5)),
	}

	weekly := ComputeWeekly(txs, now, resolverFor(model.AppState{}))

	require.Len(t, weekly.ExpenseByCategory, 2)
	assert.Equal(t, "transport", weekly.ExpenseByCategory[0].ID)
	assert.True(t, weekly.ExpenseByCategory[0].Amount.Equal(dec("25")))
	assert.Equal(t, 2, weekly.ExpenseByCategory[0].Count)
	assert.Equal(t, "snacks", weekly.ExpenseByCategory[1].ID)

	require.Len(t, weekly.IncomeBySource, 2)
	assert.Equal(t, "mother", weekly.IncomeBySource[0].ID)
	assert.True(t, weekly.IncomeBySource[0].Amount.Equal(dec("125")))
	assert.Equal(t, "father", weekly.IncomeBySource[1].ID)

	assert.True(t, weekly.TotalIncome.Equal(dec("175")))
	assert.True(t, weekly.TotalExpense.Equal(dec("30")))
}

func TestComputeWeekly_UnresolvedBucket(t *testing.T) {
	txs := []model.Transaction{
		expense("2", "custom_cat_gone", "40", daysAgo(1)),
		expense("1", "custom_cat_gone", "2", daysAgo(2)),
		expense("0", "snacks", "3", daysAgo(2)),
	}

	weekly := ComputeWeekly(txs, now, resolverFor(model.AppState{}))
	require.Len(t, weekly.ExpenseByCategory, 2)

	gone := weekly.ExpenseByCategory[0]
	assert.False(t, gone.Resolved)
	assert.True(t, gone.Amount.Equal(dec("42")))
	assert.Equal(t, "Unknown", gone.Entry.NameEn)
	assert.Equal(t, "custom_cat_gone", gone.Entry.ID)

	snacks := weekly.ExpenseByCategory[1]
	assert.True(t, snacks.Resolved)
	assert.Equal(t, "Snacks", snacks.Entry.NameEn)
}

func TestComputeWeekly_NilResolver(t *testing.T) {
	txs := []model.Transaction{income("1", "father", "5", daysAgo(1))}
	weekly := ComputeWeekly(txs, now, nil)
	require.Len(t, weekly.IncomeBySource, 1)
	assert.False(t, weekly.IncomeBySource[0].Resolved)
	assert.True(t, weekly.IncomeBySource[0].Amount.Equal(dec("5")))
}

func TestRecent(t *testing.T) {
	txs := []model.Transaction{{ID: "c"}, {ID: "b"}, {ID: "a"}}
	assert.Len(t, Recent(txs, 2), 2)
	assert.Equal(t, "c", Recent(txs, 2)[0].ID)
	assert.Len(t, Recent(txs, 10), 3)
	assert.Len(t, Recent(txs, -1), 3)
	assert.Empty(t, Recent(txs, 0))
	assert.Empty(t, Recent(nil, 5))
}
