package ledger

import (
	"crypto/subtle"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expensenote/expensenote/internal/catalog"
	"github.com/expensenote/expensenote/internal/id"
	"github.com/expensenote/expensenote/internal/model"
)

// Every function here takes a state and returns a new one. Slices are always
// rebuilt, never written through, so the caller's snapshot stays valid.

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 4

const (
	defaultSourceIcon   = "💰"
	defaultCategoryIcon = "💸"
)

// SetPassword sets the password. A state with a password is configured.
func SetPassword(s model.AppState, pwd string) model.AppState {
	s.Password = pwd
	return s
}

// CheckNewPassword applies the length and confirmation rules to a new password.
func CheckNewPassword(pwd, confirm string) error {
	if reason := newPasswordProblem(pwd, confirm); reason != nil {
		return reject("set password", reason)
	}
	return nil
}

func newPasswordProblem(pwd, confirm string) error {
	if len(pwd) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if pwd != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// ChangePassword replaces the password once current matches and the new one
// passes CheckNewPassword.
func ChangePassword(s model.AppState, current, pwd, confirm string) (model.AppState, error) {
	if !VerifyPassword(s, current) {
		return s, reject("change password", ErrIncorrectPassword)
	}
	if reason := newPasswordProblem(pwd, confirm); reason != nil {
		return s, reject("change password", reason)
	}
	s.Password = pwd
	return s, nil
}

// VerifyPassword compares pwd with the stored password. It is always false in
// first-run mode.
func VerifyPassword(s model.AppState, pwd string) bool {
	if !s.Configured() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.Password), []byte(pwd)) == 1
}

// AddTransaction validates tx and prepends it to the log. A zero amount counts
// as missing. The referenced source or category is not checked for existence.
func AddTransaction(s model.AppState, tx model.Transaction) (model.AppState, error) {
	const op = "add transaction"
	switch {
	case tx.ID == "":
		return s, reject(op, ErrMissingID)
	case !tx.Kind.Valid():
		return s, rejectValue(op, ErrInvalidKind, string(tx.Kind))
	case tx.Amount.IsZero():
		return s, reject(op, ErrMissingAmount)
	case tx.Amount.IsNegative():
		return s, rejectValue(op, ErrNegativeAmount, tx.Amount.String())
	case strings.TrimSpace(tx.CategoryOrSourceID) == "":
		return s, reject(op, ErrMissingCategory)
	case tx.Timestamp.IsZero():
		return s, reject(op, ErrMissingTimestamp)
	}
	if _, exists := s.FindTransaction(tx.ID); exists {
		return s, rejectValue(op, ErrDuplicateID, tx.ID)
	}

	// Canonical forms reload identically after a save.
	tx.Amount = decimal.RequireFromString(tx.Amount.String())
	tx.Timestamp = tx.Timestamp.UTC()
	tx.Note = strings.TrimSpace(tx.Note)

	txs := make([]model.Transaction, 0, len(s.Transactions)+1)
	txs = append(txs, tx)
	txs = append(txs, s.Transactions...)
	s.Transactions = txs
	return s, nil
}

// DeleteTransaction removes the entry with txID. Unknown ids are a no-op.
func DeleteTransaction(s model.AppState, txID string) model.AppState {
	if _, ok := s.FindTransaction(txID); !ok {
		return s
	}
	txs := make([]model.Transaction, 0, len(s.Transactions)-1)
	for _, tx := range s.Transactions {
		if tx.ID != txID {
			txs = append(txs, tx)
		}
	}
	s.Transactions = txs
	return s
}

// AddSource appends a custom income source under sourceID.
func AddSource(s model.AppState, sourceID, name, icon string) (model.AppState, error) {
	const op = "add source"
	name = strings.TrimSpace(name)
	if name == "" {
		return s, reject(op, ErrEmptyName)
	}
	if sourceID == "" {
		return s, reject(op, ErrMissingID)
	}
	if _, exists := catalog.NewResolver(s).Source(sourceID); exists {
		return s, rejectValue(op, ErrDuplicateID, sourceID)
	}
	if icon == "" {
		icon = defaultSourceIcon
	}

	src := model.IncomeSource{ID: sourceID, NameEn: name, NameBn: name, NameAr: name, Icon: icon, IsCustom: true}
	sources := make([]model.IncomeSource, 0, len(s.CustomSources)+1)
	sources = append(sources, s.CustomSources...)
	s.CustomSources = append(sources, src)
	return s, nil
}

// AddCategory appends a custom expense category under categoryID.
func AddCategory(s model.AppState, categoryID, name, icon string) (model.AppState, error) {
	const op = "add category"
	name = strings.TrimSpace(name)
	if name == "" {
		return s, reject(op, ErrEmptyName)
	}
	if categoryID == "" {
		return s, reject(op, ErrMissingID)
	}
	if _, exists := catalog.NewResolver(s).Category(categoryID); exists {
		return s, rejectValue(op, ErrDuplicateID, categoryID)
	}
	if icon == "" {
		icon = defaultCategoryIcon
	}

	cat := model.ExpenseCategory{ID: categoryID, NameEn: name, NameBn: name, NameAr: name, Icon: icon, IsCustom: true}
	cats := make([]model.ExpenseCategory, 0, len(s.ExpenseCategories)+1)
	cats = append(cats, s.ExpenseCategories...)
	s.ExpenseCategories = append(cats, cat)
	return s, nil
}

// DeleteSource removes a custom income source. Transactions that reference it
// are kept and later resolve as unknown.
func DeleteSource(s model.AppState, sourceID string) (model.AppState, error) {
	src, ok := catalog.NewResolver(s).Source(sourceID)
	if !ok {
		return s, nil
	}
	if !src.IsCustom {
		return s, rejectValue("delete source", ErrProtectedEntry, sourceID)
	}

	sources := make([]model.IncomeSource, 0, len(s.CustomSources))
	for _, cs := range s.CustomSources {
		if cs.ID != sourceID {
			sources = append(sources, cs)
		}
	}
	s.CustomSources = sources
	s.HiddenSourceIDs = without(s.HiddenSourceIDs, sourceID)
	return s, nil
}

// DeleteCategory removes a custom expense category. Transactions that
// reference it are kept and later resolve as unknown.
func DeleteCategory(s model.AppState, categoryID string) (model.AppState, error) {
	cat, ok := catalog.NewResolver(s).Category(categoryID)
	if !ok {
		return s, nil
	}
	// Entries seeded before the custom flag existed are recognised by id.
	if !cat.IsCustom && !id.IsCustomCategory(categoryID) {
		return s, rejectValue("delete category", ErrProtectedEntry, categoryID)
	}

	cats := make([]model.ExpenseCategory, 0, len(s.ExpenseCategories))
	for _, c := range s.ExpenseCategories {
		if c.ID != categoryID {
			cats = append(cats, c)
		}
	}
	s.ExpenseCategories = cats
	return s, nil
}

// ToggleSourceHidden flips whether a source is offered for selection. Unknown
// ids are a no-op.
func ToggleSourceHidden(s model.AppState, sourceID string) model.AppState {
	if _, ok := catalog.NewResolver(s).Source(sourceID); !ok {
		return s
	}
	if s.IsSourceHidden(sourceID) {
		s.HiddenSourceIDs = without(s.HiddenSourceIDs, sourceID)
		return s
	}
	hidden := make([]string, 0, len(s.HiddenSourceIDs)+1)
	hidden = append(hidden, s.HiddenSourceIDs...)
	s.HiddenSourceIDs = append(hidden, sourceID)
	return s
}

// SetLanguage switches the display locale.
func SetLanguage(s model.AppState, lang model.Language) (model.AppState, error) {
	if !catalog.ValidLanguage(lang) {
		return s, rejectValue("set language", ErrUnknownLanguage, string(lang))
	}
	s.Language = lang
	return s, nil
}

// SetTheme accepts a palette id or hex value and stores the hex.
func SetTheme(s model.AppState, idOrHex string) (model.AppState, error) {
	c, ok := catalog.LookupTheme(strings.ToLower(strings.TrimSpace(idOrHex)))
	if !ok {
		return s, rejectValue("set theme", ErrUnknownTheme, idOrHex)
	}
	s.ThemeColor = c.Hex
	return s, nil
}

// SetDarkMode toggles dark mode on or off.
func SetDarkMode(s model.AppState, on bool) model.AppState {
	s.IsDarkMode = on
	return s
}

// SetUIScale stores pct clamped into the supported range.
func SetUIScale(s model.AppState, pct int) model.AppState {
	s.UIScale = ClampUIScale(pct)
	return s
}

// ClampUIScale bounds pct to [catalog.MinUIScale, catalog.MaxUIScale].
func ClampUIScale(pct int) int {
	return max(catalog.MinUIScale, min(catalog.MaxUIScale, pct))
}

// SetEffectsEnabled turns the decorative overlay on or off.
func SetEffectsEnabled(s model.AppState, on bool) model.AppState {
	s.ShowEffects = on
	return s
}

// ToggleEffect adds e to the active effects, or removes it if present.
func ToggleEffect(s model.AppState, e model.Effect) (model.AppState, error) {
	if !catalog.ValidEffect(e) {
		return s, rejectValue("toggle effect", ErrUnknownEffect, string(e))
	}
	effects := make([]model.Effect, 0, len(s.ActiveEffects)+1)
	found := false
	for _, a := range s.ActiveEffects {
		if a == e {
			found = true
			continue
		}
		effects = append(effects, a)
	}
	if !found {
		effects = append(effects, e)
	}
	s.ActiveEffects = effects
	return s, nil
}

// SetAboutInfo replaces the profile.
func SetAboutInfo(s model.AppState, about model.AboutInfo) model.AppState {
	s.AboutInfo = model.AboutInfo{
		Name:        strings.TrimSpace(about.Name),
		Description: strings.TrimSpace(about.Description),
	}
	return s
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}
