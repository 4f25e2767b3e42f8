package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensenote/expensenote/internal/clock"
	"github.com/expensenote/expensenote/internal/model"
	"github.com/expensenote/expensenote/internal/notify"
	"github.com/expensenote/expensenote/internal/store"
)

// flakyStore wraps a real store and fails saves on demand.
type flakyStore struct {
	*store.Store
	failSave bool
	saves    int
}

func (f *flakyStore) Save(ctx context.Context, st model.AppState) error {
	if f.failSave {
		return errors.New("disk full")
	}
	f.saves++
	return f.Store.Save(ctx, st)
}

func newStore() *flakyStore {
	return &flakyStore{Store: store.New(store.NewMemoryBackend())}
}

var friday = time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

func openSession(t *testing.T, st StateStore, now time.Time) *Session {
	t.Helper()
	s, err := Open(context.Background(), st,
		WithClock(clock.Fixed{T: now}),
		WithScheduler(&notify.Scheduler{Weekday: time.Friday, Location: time.UTC}),
	)
	require.NoError(t, err)
	return s
}

func TestOpen_FirstRun(t *testing.T) {
	s := openSession(t, newStore(), friday)
	assert.False(t, s.State().Configured())
	assert.Equal(t, store.Default(), s.State())
}

func TestOpen_Corrupt(t *testing.T) {
	backend := store.NewMemoryBackend()
	require.NoError(t, backend.Put(context.Background(), store.DefaultKey, []byte("not json")))

	_, err := Open(context.Background(), store.New(backend))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestSession_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	s := openSession(t, st, friday)

	require.NoError(t, s.SetPassword(ctx, "1234"))
	tx, err := s.AddTransaction(ctx, AddTransactionParams{
		Kind:               model.KindIncome,
		Amount:             dec("500"),
		CategoryOrSourceID: "father",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.True(t, tx.Timestamp.Equal(friday), "zero timestamp defaults to the clock")

	reopened := openSession(t, st, friday)
	assert.True(t, reopened.VerifyPassword("1234"))
	require.Len(t, reopened.State().Transactions, 1)
	assert.Equal(t, tx, reopened.State().Transactions[0])
}

func TestSession_FailedSaveKeepsState(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	s := openSession(t, st, friday)
	require.NoError(t, s.SetPassword(ctx, "1234"))
	before := s.State()

	st.failSave = true
	_, err := s.AddTransaction(ctx, AddTransactionParams{
		Kind:               model.KindExpense,
		Amount:             dec("20"),
		CategoryOrSourceID: "snacks",
	})
	require.Error(t, err)
	assert.False(t, IsValidation(err))
	assert.Equal(t, before, s.State())

	st.failSave = false
	reopened := openSession(t, st, friday)
	assert.Empty(t, reopened.State().Transactions)
}

func TestSession_RejectionDoesNotSave(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	s := openSession(t, st, friday)
	require.NoError(t, s.SetPassword(ctx, "1234"))
	saves := st.saves

	err := s.ChangePassword(ctx, "wrong", "newpass", "newpass")
	assertRejected(t, err, ErrIncorrectPassword)
	assert.Equal(t, saves, st.saves)
	assert.True(t, s.VerifyPassword("1234"))
}

func TestSession_DeleteTransaction(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, newStore(), friday)
	tx, err := s.AddTransaction(ctx, AddTransactionParams{
		Kind:               model.KindExpense,
		Amount:             dec("3"),
		CategoryOrSourceID: "transport",
		Timestamp:          friday.Add(-time.Hour),
	})
	require.NoError(t, err)

	removed, err := s.DeleteTransaction(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = s.DeleteTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, s.State().Transactions)
}

func TestSession_CustomEntries(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, newStore(), friday)

	src, err := s.AddSource(ctx, "Uncle", "🧔")
	require.NoError(t, err)
	assert.Contains(t, src.ID, "custom_")
	_, ok := s.Resolver().Source(src.ID)
	assert.True(t, ok)

	cat, err := s.AddCategory(ctx, "Books", "")
	require.NoError(t, err)
	assert.Contains(t, cat.ID, "custom_cat_")

	require.NoError(t, s.ToggleSourceHidden(ctx, src.ID))
	assert.True(t, s.State().IsSourceHidden(src.ID))

	require.NoError(t, s.DeleteSource(ctx, src.ID))
	require.NoError(t, s.DeleteCategory(ctx, cat.ID))
	assert.Empty(t, s.State().CustomSources)
	assert.Empty(t, s.State().HiddenSourceIDs)

	assertRejected(t, s.DeleteSource(ctx, "father"), ErrProtectedEntry)
	assertRejected(t, s.DeleteCategory(ctx, "snacks"), ErrProtectedEntry)
}

func TestSession_Settings(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, newStore(), friday)

	require.NoError(t, s.SetLanguage(ctx, model.LanguageEnglish))
	require.NoError(t, s.SetTheme(ctx, "rose"))
	require.NoError(t, s.SetDarkMode(ctx, true))
	scale, err := s.SetUIScale(ctx, 5)
	require.NoError(t, err)
	require.NoError(t, s.SetEffectsEnabled(ctx, true))
	require.NoError(t, s.ToggleEffect(ctx, "rain"))
	require.NoError(t, s.SetAboutInfo(ctx, model.AboutInfo{Name: "Nadia"}))

	got := s.State()
	assert.Equal(t, model.LanguageEnglish, got.Language)
	assert.Equal(t, "#f43f5e", got.ThemeColor)
	assert.True(t, got.IsDarkMode)
	assert.Equal(t, 30, scale)
	assert.Equal(t, 30, got.UIScale)
	assert.True(t, got.ShowEffects)
	assert.True(t, got.HasEffect("rain"))
	assert.Equal(t, "Nadia", got.AboutInfo.Name)

	assertRejected(t, s.SetLanguage(ctx, "de"), ErrUnknownLanguage)
	assert.Equal(t, model.LanguageEnglish, s.State().Language)
}

func TestSession_CheckNotifications(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	s := openSession(t, st, friday)

	fired, err := s.CheckNotifications(ctx)
	require.NoError(t, err)
	assert.True(t, fired)
	assert.True(t, s.State().HasUnreadReport)
	assert.Equal(t, "2025-03-07", s.State().LastNotificationDate)
	saves := st.saves

	fired, err = s.CheckNotifications(ctx)
	require.NoError(t, err)
	assert.False(t, fired, "fires at most once per day")
	assert.Equal(t, saves, st.saves)

	require.NoError(t, s.MarkReportRead(ctx))
	assert.False(t, s.State().HasUnreadReport)
	assert.Equal(t, "2025-03-07", s.State().LastNotificationDate)

	saves = st.saves
	require.NoError(t, s.MarkReportRead(ctx))
	assert.Equal(t, saves, st.saves, "already read is a no-op")
}

func TestSession_CheckNotificationsNotFriday(t *testing.T) {
	s := openSession(t, newStore(), friday.AddDate(0, 0, 1))
	fired, err := s.CheckNotifications(context.Background())
	require.NoError(t, err)
	assert.False(t, fired)
	assert.Empty(t, s.State().LastNotificationDate)
}

func TestSession_CheckNotificationsSaveFails(t *testing.T) {
	st := newStore()
	s := openSession(t, st, friday)
	st.failSave = true

	fired, err := s.CheckNotifications(context.Background())
	require.Error(t, err)
	assert.False(t, fired)
	assert.False(t, s.State().HasUnreadReport)
}

func TestSession_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, store.New(store.NewMemoryBackend()), friday)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddTransaction(ctx, AddTransactionParams{
				Kind:               model.KindExpense,
				Amount:             dec("1"),
				CategoryOrSourceID: "snacks",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, s.State().Transactions, 20)
}
