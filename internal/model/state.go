package model

// Language is a supported display locale.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageBangla  Language = "bn"
	LanguageArabic  Language = "ar"
)

// Effect identifies a decorative overlay the UI may draw.
type Effect string

// AboutInfo is the freeform profile shown on the about screen.
type AboutInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AppState is the single root aggregate persisted for an installation.
//
// Transactions are ordered newest-inserted first, independent of Timestamp.
// LastNotificationDate is a YYYY-MM-DD calendar date, empty until the weekly
// scheduler first fires.
type AppState struct {
	Password             string            `json:"password,omitempty"`
	Language             Language          `json:"language"`
	ThemeColor           string            `json:"themeColor"`
	IsDarkMode           bool              `json:"isDarkMode"`
	Transactions         []Transaction     `json:"transactions"`
	CustomSources        []IncomeSource    `json:"customSources"`
	HiddenSourceIDs      []string          `json:"hiddenSourceIds"`
	ExpenseCategories    []ExpenseCategory `json:"expenseCategories"`
	AboutInfo            AboutInfo         `json:"aboutInfo"`
	ShowEffects          bool              `json:"showEffects"`
	ActiveEffects        []Effect          `json:"activeEffects"`
	UIScale              int               `json:"uiScale"`
	LastNotificationDate string            `json:"lastNotificationDate,omitempty"`
	HasUnreadReport      bool              `json:"hasUnreadReport"`
}

// Configured reports whether a password has been set. An unconfigured state
// means first-run mode.
func (s AppState) Configured() bool {
	return s.Password != ""
}

// FindTransaction returns the transaction with id.
func (s AppState) FindTransaction(id string) (Transaction, bool) {
	for _, tx := range s.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return Transaction{}, false
}

// IsSourceHidden reports whether id is in the hidden list.
func (s AppState) IsSourceHidden(id string) bool {
	for _, h := range s.HiddenSourceIDs {
		if h == id {
			return true
		}
	}
	return false
}

// HasEffect reports whether e is active.
func (s AppState) HasEffect(e Effect) bool {
	for _, a := range s.ActiveEffects {
		if a == e {
			return true
		}
	}
	return false
}
