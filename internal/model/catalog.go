package model

// IncomeSource is a catalog entry that income transactions point at.
type IncomeSource struct {
	ID       string `json:"id"`
	NameEn   string `json:"nameEn"`
	NameBn   string `json:"nameBn"`
	NameAr   string `json:"nameAr"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"isCustom"`
	IsHidden bool   `json:"isHidden"`
}

// ExpenseCategory is a catalog entry that expense transactions point at.
type ExpenseCategory struct {
	ID       string `json:"id"`
	NameEn   string `json:"nameEn"`
	NameBn   string `json:"nameBn"`
	NameAr   string `json:"nameAr"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"isCustom,omitempty"`
}

// Name returns the display name for lang, falling back to English.
func (s IncomeSource) Name(lang Language) string {
	return pickName(lang, s.NameEn, s.NameBn, s.NameAr)
}

// Name returns the display name for lang, falling back to English.
func (c ExpenseCategory) Name(lang Language) string {
	return pickName(lang, c.NameEn, c.NameBn, c.NameAr)
}

func pickName(lang Language, en, bn, ar string) string {
	switch lang {
	case LanguageBangla:
		if bn != "" {
			return bn
		}
	case LanguageArabic:
		if ar != "" {
			return ar
		}
	}
	return en
}
