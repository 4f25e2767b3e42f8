package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// SourcePrefix marks user-created income sources.
	SourcePrefix = "custom_"
	// CategoryPrefix marks user-created expense categories.
	CategoryPrefix = "custom_cat_"
)

// Generator hands out time-ordered ids. Values from one Generator sort in
// creation order and are never repeated.
type Generator struct {
	newUUID func() (uuid.UUID, error)
}

// NewGenerator returns a Generator backed by UUIDv7.
func NewGenerator() *Generator {
	return &Generator{newUUID: uuid.NewV7}
}

// Transaction returns a new transaction id.
func (g *Generator) Transaction() (string, error) {
	return g.next("")
}

// Source returns a new id for a user-created income source.
func (g *Generator) Source() (string, error) {
	return g.next(SourcePrefix)
}

// Category returns a new id for a user-created expense category.
func (g *Generator) Category() (string, error) {
	return g.next(CategoryPrefix)
}

func (g *Generator) next(prefix string) (string, error) {
	u, err := g.newUUID()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return prefix + u.String(), nil
}

// IsCustom reports whether id was generated for a user-created catalog entry.
// System entries use fixed ids without the prefix.
func IsCustom(id string) bool {
	return strings.HasPrefix(id, SourcePrefix)
}

// IsCustomCategory reports whether id was generated for a user-created expense category.
func IsCustomCategory(id string) bool {
	return strings.HasPrefix(id, CategoryPrefix)
}
