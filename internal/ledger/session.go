package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/expensenote/expensenote/internal/catalog"
	"github.com/expensenote/expensenote/internal/clock"
	"github.com/expensenote/expensenote/internal/id"
	"github.com/expensenote/expensenote/internal/model"
	"github.com/expensenote/expensenote/internal/notify"
)

// StateStore persists the whole AppState.
type StateStore interface {
	Load(ctx context.Context) (model.AppState, error)
	Save(ctx context.Context, st model.AppState) error
}

// Session owns the in-memory AppState and is its only writer. Each method runs
// one operation, saves the result and only then publishes it; a rejected
// operation or a failed save leaves the previous state in place.
type Session struct {
	mu        sync.Mutex
	store     StateStore
	state     model.AppState
	ids       *id.Generator
	clock     clock.Clock
	scheduler *notify.Scheduler
	log       zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used for default timestamps and notifications.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithIDs sets the id generator.
func WithIDs(g *id.Generator) Option {
	return func(s *Session) { s.ids = g }
}

// WithScheduler sets the weekly report scheduler.
func WithScheduler(sch *notify.Scheduler) Option {
	return func(s *Session) { s.scheduler = sch }
}

// Open loads the state from st. A corrupt store is returned as an error and
// no session is created.
func Open(ctx context.Context, st StateStore, opts ...Option) (*Session, error) {
	s := &Session{
		store:     st,
		ids:       id.NewGenerator(),
		clock:     clock.System{},
		scheduler: notify.NewScheduler(),
		log:       zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}

	state, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	s.state = state
	return s, nil
}

// State returns the current snapshot. Callers must not modify its slices.
func (s *Session) State() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resolver returns a catalog resolver for the current snapshot.
func (s *Session) Resolver() *catalog.Resolver {
	return catalog.NewResolver(s.State())
}

// Now returns the session clock's current instant.
func (s *Session) Now() time.Time {
	return s.clock.Now()
}

func (s *Session) apply(ctx context.Context, op string, fn func(model.AppState) (model.AppState, error)) (model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil {
		s.log.Debug().Str("op", op).Err(err).Msg("operation rejected")
		return s.state, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return s.state, fmt.Errorf("%s: %w", op, err)
	}
	s.state = next
	s.log.Debug().Str("op", op).Msg("operation applied")
	return next, nil
}

func pure(fn func(model.AppState) model.AppState) func(model.AppState) (model.AppState, error) {
	return func(st model.AppState) (model.AppState, error) {
		return fn(st), nil
	}
}

// SetPassword sets the password and leaves first-run mode.
func (s *Session) SetPassword(ctx context.Context, pwd string) error {
	_, err := s.apply(ctx, "set password", pure(func(st model.AppState) model.AppState {
		return SetPassword(st, pwd)
	}))
	return err
}

// ChangePassword replaces the password after checking the current one.
func (s *Session) ChangePassword(ctx context.Context, current, pwd, confirm string) error {
	_, err := s.apply(ctx, "change password", func(st model.AppState) (model.AppState, error) {
		return ChangePassword(st, current, pwd, confirm)
	})
	return err
}

// VerifyPassword compares pwd with the stored password.
func (s *Session) VerifyPassword(pwd string) bool {
	return VerifyPassword(s.State(), pwd)
}

// AddTransactionParams holds the caller-supplied part of a new entry.
type AddTransactionParams struct {
	Kind               model.Kind
	Amount             decimal.Decimal // zero means missing
	CategoryOrSourceID string
	Timestamp          time.Time // zero means now
	Note               string
}

// AddTransaction records a new entry and returns it with its generated id.
func (s *Session) AddTransaction(ctx context.Context, params AddTransactionParams) (model.Transaction, error) {
	txID, err := s.ids.Transaction()
	if err != nil {
		return model.Transaction{}, err
	}
	ts := params.Timestamp
	if ts.IsZero() {
		ts = s.clock.Now()
	}

	next, err := s.apply(ctx, "add transaction", func(st model.AppState) (model.AppState, error) {
		return AddTransaction(st, model.Transaction{
			ID:                 txID,
			Kind:               params.Kind,
			Amount:             params.Amount,
			CategoryOrSourceID: params.CategoryOrSourceID,
			Timestamp:          ts,
			Note:               params.Note,
		})
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return next.Transactions[0], nil
}

// DeleteTransaction removes an entry. It reports whether anything was removed.
func (s *Session) DeleteTransaction(ctx context.Context, txID string) (bool, error) {
	before := len(s.State().Transactions)
	next, err := s.apply(ctx, "delete transaction", pure(func(st model.AppState) model.AppState {
		return DeleteTransaction(st, txID)
	}))
	if err != nil {
		return false, err
	}
	return len(next.Transactions) < before, nil
}

// AddSource creates a custom income source.
func (s *Session) AddSource(ctx context.Context, name, icon string) (model.IncomeSource, error) {
	sourceID, err := s.ids.Source()
	if err != nil {
		return model.IncomeSource{}, err
	}
	next, err := s.apply(ctx, "add source", func(st model.AppState) (model.AppState, error) {
		return AddSource(st, sourceID, name, icon)
	})
	if err != nil {
		return model.IncomeSource{}, err
	}
	return next.CustomSources[len(next.CustomSources)-1], nil
}

// AddCategory creates a custom expense category.
func (s *Session) AddCategory(ctx context.Context, name, icon string) (model.ExpenseCategory, error) {
	categoryID, err := s.ids.Category()
	if err != nil {
		return model.ExpenseCategory{}, err
	}
	next, err := s.apply(ctx, "add category", func(st model.AppState) (model.AppState, error) {
		return AddCategory(st, categoryID, name, icon)
	})
	if err != nil {
		return model.ExpenseCategory{}, err
	}
	return next.ExpenseCategories[len(next.ExpenseCategories)-1], nil
}

// DeleteSource removes a custom income source.
func (s *Session) DeleteSource(ctx context.Context, sourceID string) error {
	_, err := s.apply(ctx, "delete source", func(st model.AppState) (model.AppState, error) {
		return DeleteSource(st, sourceID)
	})
	return err
}

// DeleteCategory removes a custom expense category.
func (s *Session) DeleteCategory(ctx context.Context, categoryID string) error {
	_, err := s.apply(ctx, "delete category", func(st model.AppState) (model.AppState, error) {
		return DeleteCategory(st, categoryID)
	})
	return err
}

// ToggleSourceHidden hides or shows a source.
func (s *Session) ToggleSourceHidden(ctx context.Context, sourceID string) error {
	_, err := s.apply(ctx, "toggle source hidden", pure(func(st model.AppState) model.AppState {
		return ToggleSourceHidden(st, sourceID)
	}))
	return err
}

// SetLanguage switches the display locale.
func (s *Session) SetLanguage(ctx context.Context, lang model.Language) error {
	_, err := s.apply(ctx, "set language", func(st model.AppState) (model.AppState, error) {
		return SetLanguage(st, lang)
	})
	return err
}

// SetTheme sets the accent color by palette id or hex.
func (s *Session) SetTheme(ctx context.Context, idOrHex string) error {
	_, err := s.apply(ctx, "set theme", func(st model.AppState) (model.AppState, error) {
		return SetTheme(st, idOrHex)
	})
	return err
}

// SetDarkMode turns dark mode on or off.
func (s *Session) SetDarkMode(ctx context.Context, on bool) error {
	_, err := s.apply(ctx, "set dark mode", pure(func(st model.AppState) model.AppState {
		return SetDarkMode(st, on)
	}))
	return err
}

// SetUIScale stores the UI scale, clamped, and returns the stored value.
func (s *Session) SetUIScale(ctx context.Context, pct int) (int, error) {
	next, err := s.apply(ctx, "set ui scale", pure(func(st model.AppState) model.AppState {
		return SetUIScale(st, pct)
	}))
	return next.UIScale, err
}

// SetEffectsEnabled turns the decorative overlay on or off.
func (s *Session) SetEffectsEnabled(ctx context.Context, on bool) error {
	_, err := s.apply(ctx, "set effects enabled", pure(func(st model.AppState) model.AppState {
		return SetEffectsEnabled(st, on)
	}))
	return err
}

// ToggleEffect adds or removes one decorative effect.
func (s *Session) ToggleEffect(ctx context.Context, e model.Effect) error {
	_, err := s.apply(ctx, "toggle effect", func(st model.AppState) (model.AppState, error) {
		return ToggleEffect(st, e)
	})
	return err
}

// SetAboutInfo replaces the profile.
func (s *Session) SetAboutInfo(ctx context.Context, about model.AboutInfo) error {
	_, err := s.apply(ctx, "set about", pure(func(st model.AppState) model.AppState {
		return SetAboutInfo(st, about)
	}))
	return err
}

// CheckNotifications runs the weekly scheduler against the clock. The state
// is only saved when the scheduler fires.
func (s *Session) CheckNotifications(ctx context.Context) (bool, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	next, fired := s.scheduler.Evaluate(s.state, now)
	if !fired {
		return false, nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		return false, fmt.Errorf("weekly notification: %w", err)
	}
	s.state = next
	s.log.Info().Str("date", next.LastNotificationDate).Msg("weekly report is ready")
	return true, nil
}

// MarkReportRead clears the unread report flag.
func (s *Session) MarkReportRead(ctx context.Context) error {
	if !s.State().HasUnreadReport {
		return nil
	}
	_, err := s.apply(ctx, "mark report read", pure(notify.MarkReportRead))
	return err
}
