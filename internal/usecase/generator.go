package usecase

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"tastepost-core/internal/domain/entity"
	"tastepost-core/internal/domain/repository"
	"tastepost-core/internal/metrics"

	"go.uber.org/zap"
)

// Generator turns a bot persona plus prompts into a board post. It performs a
// single provider round trip and no retries; retry policy belongs to the caller.
type Generator struct {
	model   repository.ChatModel
	catalog *entity.Catalog
	decoder postDecoder
	log     *zap.Logger
}

func NewGenerator(model repository.ChatModel, catalog *entity.Catalog, log *zap.Logger) *Generator {
	return &Generator{model: model, catalog: catalog, log: log}
}

// generationTemperature is deliberately elevated to favor content diversity.
const generationTemperature = 0.8

func (g *Generator) Generate(ctx context.Context, bot entity.BotConfig, systemPrompt, userPrompt string) (*entity.Post, error) {
	profile := g.catalog.ProfileFor(bot.ModelID)

	resp, err := g.model.Complete(ctx, entity.ChatRequest{
		ModelID:         bot.ModelID,
		System:          systemPrompt,
		Prompt:          userPrompt,
		Temperature:     generationTemperature,
		MaxOutputTokens: profile.MaxOutputTokens,
	})
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("upstream_error").Inc()
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	title, content, err := g.decoder.Decode(resp.Text)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("format_error").Inc()
		return nil, err
	}

	post := &entity.Post{
		Title:    title,
		BodyHTML: formatBody(content),
		Usage:    resp.Usage,
		CostUSD:  g.catalog.EstimateCost(resp.Usage),
	}

	metrics.GenerationsTotal.WithLabelValues("ok").Inc()
	g.log.Info("post generated",
		zap.String("bot_id", bot.ID),
		zap.String("model", resp.Usage.ModelID),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return post, nil
}

var (
	titlePattern   = regexp.MustCompile(`(?mi)^[^\S\n]*TITLE:[^\S\n]*(.+)$`)
	contentPattern = regexp.MustCompile(`(?si)CONTENT:\s*(.+)\z`)
)

// postDecoder parses the fixed two-marker response format. Both markers must
// match; a partial match is a format error, not a best-effort guess.
type postDecoder struct{}

func (postDecoder) Decode(raw string) (title, content string, err error) {
	titleMatch := titlePattern.FindStringSubmatch(raw)
	contentMatch := contentPattern.FindStringSubmatch(raw)
	if titleMatch == nil || contentMatch == nil {
		return "", "", fmt.Errorf("%w: raw response %q", entity.ErrBadFormat, truncate(raw, 200))
	}

	title = strings.TrimSpace(titleMatch[1])
	content = strings.TrimSpace(contentMatch[1])
	if title == "" || content == "" {
		return "", "", fmt.Errorf("%w: empty title or content", entity.ErrBadFormat)
	}
	return title, content, nil
}

var blankLinePattern = regexp.MustCompile(`\n\s*\n`)

// formatBody wraps blank-line-delimited blocks in <p> tags, escaping HTML and
// keeping internal single line breaks as <br> soft breaks.
func formatBody(content string) string {
	blocks := blankLinePattern.Split(strings.TrimSpace(content), -1)
	paragraphs := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		escaped := html.EscapeString(block)
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
		paragraphs = append(paragraphs, "<p>"+escaped+"</p>")
	}
	return strings.Join(paragraphs, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
