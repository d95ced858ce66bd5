package usecase

import (
	"strings"

	"tastepost-core/internal/domain/entity"
)

// Names that carry no information on their own.
var genericNames = map[string]struct{}{
	"food":       {},
	"dish":       {},
	"dishes":     {},
	"order":      {},
	"meal":       {},
	"menu":       {},
	"place":      {},
	"restaurant": {},
	"service":    {},
	"everything": {},
}

// Single-word results that are adjectives rather than dishes.
var vagueAdjectives = map[string]struct{}{
	"good":      {},
	"great":     {},
	"bad":       {},
	"nice":      {},
	"amazing":   {},
	"delicious": {},
	"tasty":     {},
	"awesome":   {},
	"excellent": {},
	"fresh":     {},
}

// FilterMenuItems drops generic and low-information entries. It is a pure
// predicate over the already-scored slice and never re-sorts.
func FilterMenuItems(items []entity.MenuItem) []entity.MenuItem {
	kept := make([]entity.MenuItem, 0, len(items))
	for _, item := range items {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		if len(name) < 3 {
			continue
		}
		if _, generic := genericNames[name]; generic {
			continue
		}
		if !strings.Contains(name, " ") {
			if _, vague := vagueAdjectives[name]; vague {
				continue
			}
		}
		kept = append(kept, item)
	}
	return kept
}
