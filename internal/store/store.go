package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/expensenote/expensenote/internal/catalog"
	"github.com/expensenote/expensenote/internal/model"
)

// DefaultKey is the slot the state lives under.
const DefaultKey = "expense_note_data_v2"

// ErrCorrupt is returned by Load when the stored payload cannot be decoded.
// It is fatal: the store never falls back to defaults over existing data.
var ErrCorrupt = errors.New("stored state is corrupt")

// Store loads and saves the AppState through a Backend.
type Store struct {
	backend Backend
	key     string
	log     zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for load/save events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a Store over backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, key: DefaultKey, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Load returns the stored state with defaults applied, or Default() when
// nothing has been stored yet.
func (s *Store) Load(ctx context.Context) (model.AppState, error) {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return model.AppState{}, fmt.Errorf("loading state: %w", err)
	}
	if !ok {
		s.log.Info().Str("key", s.key).Msg("no stored state, starting fresh")
		return Default(), nil
	}

	state, applied, err := Decode(data)
	if err != nil {
		return model.AppState{}, err
	}
	if len(applied) > 0 {
		s.log.Info().Str("key", s.key).Strs("defaulted", applied).Msg("back-filled fields missing from stored state")
	}
	s.log.Debug().Str("key", s.key).Int("transactions", len(state.Transactions)).Msg("state loaded")
	return state, nil
}

// Save replaces the stored state with st.
func (s *Store) Save(ctx context.Context, st model.AppState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	s.log.Debug().Str("key", s.key).Int("bytes", len(data)).Msg("state saved")
	return nil
}

// Default returns the first-run state: no password, default locale and theme,
// an empty ledger and the starter expense categories.
func Default() model.AppState {
	return model.AppState{
		Language:          catalog.DefaultLanguage,
		ThemeColor:        catalog.DefaultThemeColor(),
		Transactions:      []model.Transaction{},
		CustomSources:     []model.IncomeSource{},
		HiddenSourceIDs:   []string{},
		ExpenseCategories: catalog.DefaultExpenseCategories(),
		ActiveEffects:     []model.Effect{},
		UIScale:           catalog.DefaultUIScale,
	}
}

// Encode serializes st.
func Encode(st model.AppState) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// snapshot decodes the fields added after the first release as pointers so
// their absence can be told apart from a zero value. The outer fields shadow
// the embedded ones with the same JSON name.
type snapshot struct {
	model.AppState
	ExpenseCategories *[]model.ExpenseCategory `json:"expenseCategories"`
	ActiveEffects     *[]model.Effect          `json:"activeEffects"`
	UIScale           *int                     `json:"uiScale"`
	HasUnreadReport   *bool                    `json:"hasUnreadReport"`
}

// Decode parses a stored payload and runs the defaulting pass. It returns the
// names of the fields that were back-filled.
func Decode(data []byte) (model.AppState, []string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return model.AppState{}, nil, fmt.Errorf("%w: payload is not an object", ErrCorrupt)
	}

	var snap snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return model.AppState{}, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	st, applied := applyDefaults(snap)
	return st, applied, nil
}

func applyDefaults(snap snapshot) (model.AppState, []string) {
	st := snap.AppState
	var applied []string

	if snap.ExpenseCategories != nil {
		st.ExpenseCategories = *snap.ExpenseCategories
	}
	if st.ExpenseCategories == nil {
		st.ExpenseCategories = catalog.DefaultExpenseCategories()
		applied = append(applied, "expenseCategories")
	}

	if snap.ActiveEffects != nil {
		st.ActiveEffects = *snap.ActiveEffects
	}
	if st.ActiveEffects == nil {
		st.ActiveEffects = []model.Effect{}
		applied = append(applied, "activeEffects")
	}

	if snap.UIScale != nil {
		st.UIScale = *snap.UIScale
	} else {
		st.UIScale = catalog.DefaultUIScale
		applied = append(applied, "uiScale")
	}

	if snap.HasUnreadReport != nil {
		st.HasUnreadReport = *snap.HasUnreadReport
	} else {
		st.HasUnreadReport = false
		applied = append(applied, "hasUnreadReport")
	}

	// Fields present since the first release; only normalised, not reported.
	if st.Language == "" {
		st.Language = catalog.DefaultLanguage
	}
	if st.ThemeColor == "" {
		st.ThemeColor = catalog.DefaultThemeColor()
	}
	if st.Transactions == nil {
		st.Transactions = []model.Transaction{}
	}
	if st.CustomSources == nil {
		st.CustomSources = []model.IncomeSource{}
	}
	if st.HiddenSourceIDs == nil {
		st.HiddenSourceIDs = []string{}
	}

	return st, applied
}
