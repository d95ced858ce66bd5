package usecase

import (
	"regexp"
	"sort"
	"strings"

	"tastepost-core/internal/domain/entity"
)

// Lexical patterns for the deterministic fallback: capitalized multi-word
// phrases ending in a common dish-category noun, and phrases following
// recommendation verbs. Trades recall and field richness for availability.
var dishPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b((?:[A-Z][a-zA-Z']+\s+)+(?i:pizza|burger|sandwich|pasta|salad|soup|taco|tacos|curry|steak|roll|rolls|ramen|wings|fries|cake|noodles|bowl))\b`),
	regexp.MustCompile(`(?:\b(?i:try|tried|recommend|recommended|order|ordered|best)\b)\s+(?:the\s+)?([A-Z][a-zA-Z']+(?:\s+[A-Z][a-zA-Z']+){0,3})`),
}

const fallbackResultLimit = 10

// extractWithPatterns is the deterministic fallback path. It never performs
// network I/O and produces sparser items: mention counts only, no price,
// portion or sentiment enrichment.
func extractWithPatterns(reviews []entity.Review) []entity.MenuItem {
	counts := make(map[string]int)
	var order []string

	for _, review := range reviews {
		// Both patterns can hit the same phrase; a review contributes at most
		// one mention per dish.
		seenHere := make(map[string]struct{})
		var inReview []string
		for _, pattern := range dishPatterns {
			for _, match := range pattern.FindAllStringSubmatch(review.Text, -1) {
				name := trimArticle(match[1])
				if len(name) < 3 {
					continue
				}
				if _, dup := seenHere[name]; dup {
					continue
				}
				seenHere[name] = struct{}{}
				inReview = append(inReview, name)
			}
		}
		for _, name := range inReview {
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	items := make([]entity.MenuItem, 0, len(order))
	for _, name := range order {
		mentions := counts[name]
		items = append(items, entity.MenuItem{
			Name:        name,
			Mentions:    mentions,
			Ingredients: []string{},
			Sentiment:   entity.SentimentPositive,
			Score:       entity.ClampScore(float64(mentions) * 10),
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Mentions > items[j].Mentions })
	if len(items) > fallbackResultLimit {
		items = items[:fallbackResultLimit]
	}
	return items
}

func trimArticle(name string) string {
	for _, prefix := range []string{"The ", "A ", "An "} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			return rest
		}
	}
	return name
}
