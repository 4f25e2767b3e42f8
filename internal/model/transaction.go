package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind tells whether a transaction brings money in or takes it out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is one ledger entry. Entries are appended or deleted, never edited.
type Transaction struct {
	ID                 string          `json:"id"`
	Kind               Kind            `json:"type"`
	Amount             decimal.Decimal `json:"amount"` // never negative; sign comes from Kind
	CategoryOrSourceID string          `json:"categoryOrSourceId"`
	Timestamp          time.Time       `json:"date"`
	Note               string          `json:"note,omitempty"`
}

// IsIncome reports whether the entry is income.
func (t Transaction) IsIncome() bool {
	return t.Kind == KindIncome
}

// IsExpense reports whether the entry is an expense.
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}
