package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"tastepost-core/internal/domain/entity"
	"tastepost-core/internal/domain/repository"
	"tastepost-core/internal/metrics"

	"go.uber.org/zap"
)

// Extractor mines rankable menu items out of a review corpus. The primary path
// asks the model for a JSON array; any parse or provider failure degrades to
// the deterministic lexical fallback, so Extract never fails outward.
type Extractor struct {
	model   repository.ChatModel
	modelID string
	log     *zap.Logger
}

func NewExtractor(model repository.ChatModel, modelID string, log *zap.Logger) *Extractor {
	return &Extractor{model: model, modelID: modelID, log: log}
}

type extractionPath string

const (
	pathPrimary  extractionPath = "primary"
	pathFallback extractionPath = "fallback"
)

func (e *Extractor) Extract(ctx context.Context, reviews []entity.Review, restaurantName, cuisineType string) []entity.MenuItem {
	items, _ := e.extract(ctx, reviews, restaurantName, cuisineType)
	return items
}

// extract tags the executed path so tests can tell primary and fallback apart.
func (e *Extractor) extract(ctx context.Context, reviews []entity.Review, restaurantName, cuisineType string) ([]entity.MenuItem, extractionPath) {
	if len(reviews) == 0 {
		return []entity.MenuItem{}, pathPrimary
	}

	items, err := e.extractWithModel(ctx, reviews, restaurantName, cuisineType)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues(string(pathFallback)).Inc()
		e.log.Warn("model extraction degraded to lexical fallback",
			zap.String("restaurant", restaurantName),
			zap.Int("reviews", len(reviews)),
			zap.Error(err))
		return extractWithPatterns(reviews), pathFallback
	}

	metrics.ExtractionsTotal.WithLabelValues(string(pathPrimary)).Inc()
	return items, pathPrimary
}

func (e *Extractor) extractWithModel(ctx context.Context, reviews []entity.Review, restaurantName, cuisineType string) ([]entity.MenuItem, error) {
	resp, err := e.model.Complete(ctx, entity.ChatRequest{
		ModelID:         e.modelID,
		Prompt:          buildExtractionPrompt(reviews, restaurantName, cuisineType),
		Temperature:     0.2,
		MaxOutputTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction request: %w", err)
	}

	items, err := decodeMenuItems(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("extraction response: %w", err)
	}
	return items, nil
}

func buildExtractionPrompt(reviews []entity.Review, restaurantName, cuisineType string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are analyzing customer reviews for %q", restaurantName)
	if cuisineType != "" {
		fmt.Fprintf(&b, " (%s cuisine)", cuisineType)
	}
	b.WriteString(".\n\nReviews:\n")

	for i, r := range reviews {
		fmt.Fprintf(&b, "%d. [%.0f stars] %s\n", i+1, r.Rating, strings.TrimSpace(r.Text))
	}

	b.WriteString(`
Extract every specific dish or menu item mentioned in the reviews. Return ONLY a JSON array, no other text. Each element must have this shape:
{"name": string, "mentions": int, "priceHint": string|null, "portionInfo": string|null, "description": string|null, "ingredients": [string], "sentiment": "positive"|"negative"|"mixed", "score": number}

Rules:
- "name" must be a real dish name (e.g. "Funghi Pizza"), never a category like "pizza" or "food".
- Include price mentions (e.g. "$12") in priceHint and portion remarks (e.g. "huge") in portionInfo when present.
- "mentions" counts how many reviews reference the dish.
- "score" is 0-100: mention frequency 40%, positive sentiment 30%, specificity of praise 20%, recency 10%.
- Sort the array by score descending.
- If no dishes are found, return the literal empty array [].`)

	return b.String()
}

// menuItemPayload tolerates missing and loosely typed fields in model output.
type menuItemPayload struct {
	Name        string   `json:"name"`
	Mentions    *int     `json:"mentions"`
	PriceHint   string   `json:"priceHint"`
	PortionInfo string   `json:"portionInfo"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Sentiment   string   `json:"sentiment"`
	Score       *float64 `json:"score"`
}

func decodeMenuItems(raw string) ([]entity.MenuItem, error) {
	var payloads []menuItemPayload
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &payloads); err != nil {
		return nil, err
	}

	items := make([]entity.MenuItem, 0, len(payloads))
	for _, p := range payloads {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}

		mentions := 1
		if p.Mentions != nil && *p.Mentions >= 1 {
			mentions = *p.Mentions
		}

		sentiment := entity.Sentiment(p.Sentiment)
		switch sentiment {
		case entity.SentimentPositive, entity.SentimentNegative, entity.SentimentMixed:
		default:
			sentiment = entity.SentimentPositive
		}

		score := entity.ClampScore(float64(mentions) * 10)
		if p.Score != nil {
			score = entity.ClampScore(*p.Score)
		}

		ingredients := p.Ingredients
		if ingredients == nil {
			ingredients = []string{}
		}

		items = append(items, entity.MenuItem{
			Name:        name,
			Mentions:    mentions,
			PriceHint:   strings.TrimSpace(p.PriceHint),
			PortionInfo: strings.TrimSpace(p.PortionInfo),
			Description: strings.TrimSpace(p.Description),
			Ingredients: ingredients,
			Sentiment:   sentiment,
			Score:       score,
		})
	}

	// Do not trust the model's ordering; ties keep relative input order.
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	return items, nil
}

// stripCodeFences removes markdown fence wrapping. Models frequently wrap JSON
// in ```json fences despite instructions.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
