package catalog

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/expensenote/expensenote/internal/model"
)

// MatchLanguage maps a BCP 47 tag such as "bn-BD" or "EN" to a supported
// locale by its base language.
func MatchLanguage(tag string) (model.Language, bool) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return "", false
	}
	base, conf := t.Base()
	if conf == language.No {
		return "", false
	}
	lang := model.Language(base.String())
	return lang, ValidLanguage(lang)
}
