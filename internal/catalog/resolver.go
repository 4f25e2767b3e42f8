package catalog

import "github.com/expensenote/expensenote/internal/model"

// Entry is a display view of a source or category, regardless of which
// catalog it came from.
type Entry struct {
	ID       string
	NameEn   string
	NameBn   string
	NameAr   string
	Icon     string
	IsCustom bool
	IsHidden bool
}

// Name returns the display name for lang, falling back to English.
func (e Entry) Name(lang model.Language) string {
	switch lang {
	case model.LanguageBangla:
		if e.NameBn != "" {
			return e.NameBn
		}
	case model.LanguageArabic:
		if e.NameAr != "" {
			return e.NameAr
		}
	}
	return e.NameEn
}

// Unknown returns the placeholder shown for an id that no catalog entry
// matches, typically because the entry was deleted.
func Unknown(id string) Entry {
	return Entry{ID: id, NameEn: "Unknown", NameBn: "অজানা", NameAr: "غير معروف", Icon: "❔"}
}

// Resolver looks up catalog entries for one AppState snapshot. Both the
// display paths and the report builder go through it.
type Resolver struct {
	sources      []model.IncomeSource
	categories   []model.ExpenseCategory
	sourceByID   map[string]model.IncomeSource
	categoryByID map[string]model.ExpenseCategory
}

// NewResolver indexes the system sources, the custom sources and the expense
// categories of s. Source IsHidden is taken from s.HiddenSourceIDs.
func NewResolver(s model.AppState) *Resolver {
	defaults := DefaultSources()
	sources := make([]model.IncomeSource, 0, len(defaults)+len(s.CustomSources))
	sources = append(sources, defaults...)
	sources = append(sources, s.CustomSources...)

	sourceByID := make(map[string]model.IncomeSource, len(sources))
	for i := range sources {
		sources[i].IsHidden = s.IsSourceHidden(sources[i].ID)
		sourceByID[sources[i].ID] = sources[i]
	}

	categoryByID := make(map[string]model.ExpenseCategory, len(s.ExpenseCategories))
	for _, c := range s.ExpenseCategories {
		categoryByID[c.ID] = c
	}

	return &Resolver{
		sources:      sources,
		categories:   s.ExpenseCategories,
		sourceByID:   sourceByID,
		categoryByID: categoryByID,
	}
}

// Sources returns system sources followed by custom ones.
func (r *Resolver) Sources() []model.IncomeSource {
	return r.sources
}

// VisibleSources returns the sources offered for selection (not hidden).
func (r *Resolver) VisibleSources() []model.IncomeSource {
	var result []model.IncomeSource
	for _, s := range r.sources {
		if !s.IsHidden {
			result = append(result, s)
		}
	}
	return result
}

// Categories returns the expense categories in catalog order.
func (r *Resolver) Categories() []model.ExpenseCategory {
	return r.categories
}

// Source returns an income source by id.
func (r *Resolver) Source(id string) (model.IncomeSource, bool) {
	s, ok := r.sourceByID[id]
	return s, ok
}

// Category returns an expense category by id.
func (r *Resolver) Category(id string) (model.ExpenseCategory, bool) {
	c, ok := r.categoryByID[id]
	return c, ok
}

// Resolve maps a transaction reference to its catalog entry. An id that
// resolves to nothing yields Unknown(id) and false.
func (r *Resolver) Resolve(kind model.Kind, id string) (Entry, bool) {
	switch kind {
	case model.KindIncome:
		if s, ok := r.sourceByID[id]; ok {
			return Entry{ID: s.ID, NameEn: s.NameEn, NameBn: s.NameBn, NameAr: s.NameAr, Icon: s.Icon, IsCustom: s.IsCustom, IsHidden: s.IsHidden}, true
		}
	case model.KindExpense:
		if c, ok := r.categoryByID[id]; ok {
			return Entry{ID: c.ID, NameEn: c.NameEn, NameBn: c.NameBn, NameAr: c.NameAr, Icon: c.Icon, IsCustom: c.IsCustom}, true
		}
	}
	return Unknown(id), false
}

// Label returns the display name of the entry tx points at.
func (r *Resolver) Label(tx model.Transaction, lang model.Language) string {
	e, _ := r.Resolve(tx.Kind, tx.CategoryOrSourceID)
	return e.Name(lang)
}
