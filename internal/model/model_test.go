package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindIncome, true},
		{KindExpense, true},
		{"", false},
		{"transfer", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Valid(), "Valid(%q)", tt.kind)
	}
}

func TestSourceName(t *testing.T) {
	src := IncomeSource{NameEn: "Father", NameBn: "বাবা", NameAr: "الأب"}
	assert.Equal(t, "Father", src.Name(LanguageEnglish))
	assert.Equal(t, "বাবা", src.Name(LanguageBangla))
	assert.Equal(t, "الأب", src.Name(LanguageArabic))

	// Missing translations fall back to English.
	cat := ExpenseCategory{NameEn: "Snacks"}
	assert.Equal(t, "Snacks", cat.Name(LanguageArabic))
	assert.Equal(t, "Snacks", cat.Name(LanguageBangla))
}

func TestStateLookups(t *testing.T) {
	s := AppState{
		Transactions:    []Transaction{{ID: "a"}, {ID: "b"}},
		HiddenSourceIDs: []string{"father"},
		ActiveEffects:   []Effect{"rain"},
	}

	tx, ok := s.FindTransaction("b")
	assert.True(t, ok)
	assert.Equal(t, "b", tx.ID)
	_, ok = s.FindTransaction("zzz")
	assert.False(t, ok)

	assert.True(t, s.IsSourceHidden("father"))
	assert.False(t, s.IsSourceHidden("mother"))
	assert.True(t, s.HasEffect("rain"))
	assert.False(t, s.HasEffect("snow"))

	assert.False(t, s.Configured())
	s.Password = "1234"
	assert.True(t, s.Configured())
}
