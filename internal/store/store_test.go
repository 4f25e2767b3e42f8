package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensenote/expensenote/internal/catalog"
	"github.com/expensenote/expensenote/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func populatedState() model.AppState {
	st := Default()
	st.Password = "1234"
	st.Language = model.LanguageEnglish
	st.IsDarkMode = true
	st.Transactions = []model.Transaction{
		{ID: "tx2", Kind: model.KindExpense, Amount: dec("200"), CategoryOrSourceID: "snacks",
			Timestamp: time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC)},
		{ID: "tx1", Kind: model.KindIncome, Amount: dec("500.5"), CategoryOrSourceID: "father",
			Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), Note: "pocket money"},
	}
	st.CustomSources = []model.IncomeSource{{ID: "custom_x", NameEn: "Uncle", NameBn: "Uncle", NameAr: "Uncle", Icon: "🧔", IsCustom: true}}
	st.HiddenSourceIDs = []string{"friend"}
	st.AboutInfo = model.AboutInfo{Name: "Student", Description: "Saving up"}
	st.ShowEffects = true
	st.ActiveEffects = []model.Effect{"rain", "stars"}
	st.UIScale = 70
	st.LastNotificationDate = "2025-03-07"
	st.HasUnreadReport = true
	return st
}

func TestLoad_Absent(t *testing.T) {
	s := New(NewMemoryBackend())

	st, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.False(t, st.Configured(), "fresh state is in first-run mode")
	assert.Equal(t, catalog.DefaultLanguage, st.Language)
	assert.Equal(t, "#10b981", st.ThemeColor)
	assert.Empty(t, st.Transactions)
	assert.Empty(t, st.CustomSources)
	assert.Equal(t, catalog.DefaultExpenseCategories(), st.ExpenseCategories)
	assert.False(t, st.ShowEffects)
	assert.Empty(t, st.ActiveEffects)
	assert.Equal(t, 50, st.UIScale)
	assert.False(t, st.HasUnreadReport)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryBackend())

	for _, st := range []model.AppState{Default(), populatedState()} {
		require.NoError(t, s.Save(ctx, st))
		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
}

func TestLoadSaveIsStable(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend)
	require.NoError(t, s.Save(ctx, populatedState()))

	first, _, err := backend.Get(ctx, DefaultKey)
	require.NoError(t, err)

	st, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, st))

	second, _, err := backend.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

// legacyPayload has the shape written before expense categories, effect
// lists, UI scale and the unread flag existed.
const legacyPayload = `{
  "password": "4321",
  "language": "en",
  "themeColor": "#3b82f6",
  "isDarkMode": false,
  "transactions": [
    {"id": "1709280000000", "type": "income", "amount": 500, "categoryOrSourceId": "mother", "date": "2024-03-01T08:00:00.000Z"},
    {"id": "1709193600000", "type": "expense", "amount": 12.5, "categoryOrSourceId": "snacks", "date": "2024-02-29T08:00:00.000Z", "note": "tea"}
  ],
  "customSources": [],
  "hiddenSourceIds": ["other"],
  "aboutInfo": {"name": "A", "description": "B"},
  "showEffects": true
}`

func TestLoad_LegacySnapshot(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Put(ctx, DefaultKey, []byte(legacyPayload)))

	st, err := New(backend).Load(ctx)
	require.NoError(t, err)

	// Back-filled.
	assert.Equal(t, catalog.DefaultExpenseCategories(), st.ExpenseCategories)
	assert.Equal(t, []model.Effect{}, st.ActiveEffects)
	assert.Equal(t, 50, st.UIScale)
	assert.False(t, st.HasUnreadReport)

	// Untouched.
	assert.Equal(t, "4321", st.Password)
	assert.Equal(t, model.LanguageEnglish, st.Language)
	assert.Equal(t, "#3b82f6", st.ThemeColor)
	assert.True(t, st.ShowEffects)
	assert.Equal(t, []string{"other"}, st.HiddenSourceIDs)
	assert.Equal(t, model.AboutInfo{Name: "A", Description: "B"}, st.AboutInfo)
	require.Len(t, st.Transactions, 2)
	assert.Equal(t, "1709280000000", st.Transactions[0].ID)
	assert.True(t, st.Transactions[0].Amount.Equal(dec("500")))
	assert.True(t, st.Transactions[1].Amount.Equal(dec("12.5")))
	assert.Equal(t, "tea", st.Transactions[1].Note)
	assert.True(t, st.Transactions[0].Timestamp.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))
}

func TestDecode_ReportsDefaultedFields(t *testing.T) {
	_, applied, err := Decode([]byte(legacyPayload))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"expenseCategories", "activeEffects", "uiScale", "hasUnreadReport"}, applied)

	data, err := Encode(populatedState())
	require.NoError(t, err)
	_, applied, err = Decode(data)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestDecode_PresentZeroValuesKept(t *testing.T) {
	st, applied, err := Decode([]byte(`{"expenseCategories": [], "activeEffects": [], "uiScale": 30, "hasUnreadReport": true}`))
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Empty(t, st.ExpenseCategories, "an explicitly empty catalog is not re-seeded")
	assert.NotNil(t, st.ExpenseCategories)
	assert.Equal(t, 30, st.UIScale)
	assert.True(t, st.HasUnreadReport)
}

func TestLoad_Corrupt(t *testing.T) {
	payloads := []string{
		`{"transactions": [`,
		`not json at all`,
		`null`,
		`[]`,
		`{"transactions": "oops"}`,
		``,
	}
	for _, p := range payloads {
		ctx := context.Background()
		backend := NewMemoryBackend()
		require.NoError(t, backend.Put(ctx, DefaultKey, []byte(p)))

		_, err := New(backend).Load(ctx)
		require.Error(t, err, "payload %q", p)
		assert.ErrorIs(t, err, ErrCorrupt, "payload %q", p)
	}
}

func TestWithKey(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend, WithKey("other_slot"))
	assert.Equal(t, "other_slot", s.Key())

	require.NoError(t, s.Save(ctx, Default()))

	_, ok, err := backend.Get(ctx, "other_slot")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = backend.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}
