package catalog

import "github.com/expensenote/expensenote/internal/model"

// ThemeColor is one entry of the fixed accent palette.
type ThemeColor struct {
	ID   string
	Name string
	Hex  string
}

const (
	// DefaultLanguage is used on first run and when a snapshot has none.
	DefaultLanguage = model.LanguageBangla
	// DefaultUIScale is the midpoint UI scale.
	DefaultUIScale = 50
	// MinUIScale and MaxUIScale bound the UI scale percentage.
	MinUIScale = 30
	MaxUIScale = 100
)

// Languages lists the supported locales.
func Languages() []model.Language {
	return []model.Language{model.LanguageEnglish, model.LanguageBangla, model.LanguageArabic}
}

// ValidLanguage reports whether lang is supported.
func ValidLanguage(lang model.Language) bool {
	for _, l := range Languages() {
		if l == lang {
			return true
		}
	}
	return false
}

// DefaultSources returns the system income sources. They are not stored in
// AppState and can never be deleted.
func DefaultSources() []model.IncomeSource {
	return []model.IncomeSource{
		{ID: "father", NameEn: "Father", NameBn: "বাবা", NameAr: "الأب", Icon: "👨‍👦"},
		{ID: "mother", NameEn: "Mother", NameBn: "মা", NameAr: "الأم", Icon: "👩‍👦"},
		{ID: "brother", NameEn: "Brother", NameBn: "ভাই", NameAr: "الأخ", Icon: "👦"},
		{ID: "sister", NameEn: "Sister", NameBn: "বোন", NameAr: "الأخت", Icon: "👧"},
		{ID: "friend", NameEn: "Friend", NameBn: "বন্ধু", NameAr: "الصديق", Icon: "🤝"},
		{ID: "other", NameEn: "Other", NameBn: "অন্যান্য", NameAr: "آخر", Icon: "📦"},
	}
}

// DefaultExpenseCategories returns the starter expense categories seeded into
// a fresh AppState.
func DefaultExpenseCategories() []model.ExpenseCategory {
	return []model.ExpenseCategory{
		{ID: "transport", NameEn: "Transportation", NameBn: "যাতায়াত", NameAr: "المواصلات", Icon: "🚌"},
		{ID: "education", NameEn: "Stationery & Books", NameBn: "বই ও খাতা", NameAr: "القرطاسية والكتب", Icon: "📚"},
		{ID: "salary", NameEn: "Teacher Salary", NameBn: "শিক্ষকের বেতন", NameAr: "راتب المعلم", Icon: "🎓"},
		{ID: "snacks", NameEn: "Snacks", NameBn: "নাস্তা", NameAr: "وجبات خفيفة", Icon: "🍪"},
		{ID: "other_exp", NameEn: "Other", NameBn: "অন্যান্য", NameAr: "أخرى", Icon: "💸"},
	}
}

// Effects lists every decorative effect id the UI knows how to draw.
func Effects() []model.Effect {
	return []model.Effect{
		"winter", "rain", "autumn", "flowers", "fog", "glow", "sunset", "stars",
		"confetti", "balloons", "fireflies", "sparks", "shootingstars", "rainbow",
		"droplets", "wind", "bubbles", "aurora",
	}
}

// ValidEffect reports whether e is a known effect id.
func ValidEffect(e model.Effect) bool {
	for _, known := range Effects() {
		if known == e {
			return true
		}
	}
	return false
}

// ThemeColors returns the accent palette. The first entry is the default.
func ThemeColors() []ThemeColor {
	return []ThemeColor{
		{ID: "emerald", Name: "Emerald", Hex: "#10b981"},
		{ID: "blue", Name: "Blue", Hex: "#3b82f6"},
		{ID: "indigo", Name: "Indigo", Hex: "#6366f1"},
		{ID: "violet", Name: "Violet", Hex: "#8b5cf6"},
		{ID: "purple", Name: "Purple", Hex: "#a855f7"},
		{ID: "fuchsia", Name: "Fuchsia", Hex: "#d946ef"},
		{ID: "pink", Name: "Pink", Hex: "#ec4899"},
		{ID: "rose", Name: "Rose", Hex: "#f43f5e"},
		{ID: "orange", Name: "Orange", Hex: "#f97316"},
		{ID: "amber", Name: "Amber", Hex: "#f59e0b"},
		{ID: "teal", Name: "Teal", Hex: "#14b8a6"},
		{ID: "sky", Name: "Sky", Hex: "#0ea5e9"},
		{ID: "slate", Name: "Slate", Hex: "#64748b"},
		{ID: "red", Name: "Crimson", Hex: "#ef4444"},
		{ID: "yellow", Name: "Sunshine", Hex: "#eab308"},
		{ID: "lime", Name: "Lime", Hex: "#84cc16"},
		{ID: "cyan", Name: "Cyan", Hex: "#06b6d4"},
		{ID: "lavender", Name: "Lavender", Hex: "#a78bfa"},
		{ID: "gold", Name: "Gold", Hex: "#d4af37"},
		{ID: "mint", Name: "Mint", Hex: "#2dd4bf"},
		{ID: "ruby", Name: "Ruby", Hex: "#e11d48"},
		{ID: "coffee", Name: "Coffee", Hex: "#78350f"},
		{ID: "royal", Name: "Royal", Hex: "#1e3a8a"},
		{ID: "midnight", Name: "Midnight", Hex: "#0f172a"},
		{ID: "forest", Name: "Forest", Hex: "#064e3b"},
		{ID: "coral", Name: "Coral", Hex: "#ff7f50"},
		{ID: "orchid", Name: "Orchid", Hex: "#da70d6"},
		{ID: "steel", Name: "Steel", Hex: "#71717a"},
		{ID: "clay", Name: "Clay", Hex: "#a8a29e"},
		{ID: "sand", Name: "Sand", Hex: "#fde68a"},
		{ID: "deepsea", Name: "Deep Sea", Hex: "#0c4a6e"},
		{ID: "plum", Name: "Plum", Hex: "#4c1d95"},
		{ID: "bronze", Name: "Bronze", Hex: "#92400e"},
		{ID: "sunflower", Name: "Sunflower", Hex: "#fbbf24"},
		{ID: "ocean", Name: "Ocean", Hex: "#0284c7"},
		{ID: "matcha", Name: "Matcha", Hex: "#a3e635"},
		{ID: "terracotta", Name: "Terracotta", Hex: "#ea580c"},
		{ID: "charcoal", Name: "Charcoal", Hex: "#334155"},
		{ID: "turquoise", Name: "Turquoise", Hex: "#2dd4bf"},
		{ID: "burgundy", Name: "Burgundy", Hex: "#991b1b"},
		{ID: "softpink", Name: "Sakura", Hex: "#f9a8d4"},
		{ID: "electric", Name: "Electric", Hex: "#7c3aed"},
		{ID: "graphite", Name: "Graphite", Hex: "#18181b"},
	}
}

// DefaultThemeColor returns the hex of the first palette entry.
func DefaultThemeColor() string {
	return ThemeColors()[0].Hex
}

// LookupTheme finds a palette entry by id or hex value.
func LookupTheme(idOrHex string) (ThemeColor, bool) {
	for _, c := range ThemeColors() {
		if c.ID == idOrHex || c.Hex == idOrHex {
			return c, true
		}
	}
	return ThemeColor{}, false
}
