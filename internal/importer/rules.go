package importer

import (
	"fmt"
	"strings"

	"github.com/ryanuber/go-glob"

	"github.com/expensenote/expensenote/internal/model"
)

// MatchRule routes rows whose note matches a glob pattern to a source or
// category. Kind limits the rule to income or expense rows; empty matches
// both. Matching ignores case.
type MatchRule struct {
	Match     string     `yaml:"match"`
	Kind      model.Kind `yaml:"kind,omitempty"`
	Reference string     `yaml:"reference"`
}

// ParseRule reads "pattern=reference" or "kind:pattern=reference".
func ParseRule(s string) (MatchRule, error) {
	pattern, ref, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(pattern) == "" || strings.TrimSpace(ref) == "" {
		return MatchRule{}, fmt.Errorf("rule %q: want pattern=reference", s)
	}
	rule := MatchRule{Match: strings.TrimSpace(pattern), Reference: strings.TrimSpace(ref)}
	if kind, rest, found := strings.Cut(rule.Match, ":"); found && model.Kind(kind).Valid() {
		rule.Kind = model.Kind(kind)
		rule.Match = rest
	}
	return rule, nil
}

func (r MatchRule) matches(kind model.Kind, note string) bool {
	if r.Kind != "" && r.Kind != kind {
		return false
	}
	return glob.Glob(strings.ToLower(r.Match), strings.ToLower(note))
}

// Apply rewrites the reference of every row that a rule matches. Rules are
// tried in order and the first match wins. Rows that named their own
// reference in the file are left alone.
func Apply(rows []Row, rules []MatchRule) []Row {
	if len(rules) == 0 {
		return rows
	}
	out := make([]Row, len(rows))
	for i, row := range rows {
		if !row.Explicit {
			for _, rule := range rules {
				if rule.matches(row.Kind, row.Note) {
					row.CategoryOrSourceID = rule.Reference
					break
				}
			}
		}
		out[i] = row
	}
	return out
}
