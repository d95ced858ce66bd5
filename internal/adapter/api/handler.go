package api

import (
	"context"
	"errors"
	"time"

	"tastepost-core/internal/domain/entity"
	"tastepost-core/internal/domain/repository"
	"tastepost-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// requestTimeout caps the single in-flight provider call per request.
const requestTimeout = 25 * time.Second

type Handler struct {
	generator *usecase.Generator
	extractor *usecase.Extractor
	alerts    repository.AlertStore
	usage     repository.UsageTracker
	log       *zap.Logger
}

func NewHandler(generator *usecase.Generator, extractor *usecase.Extractor, alerts repository.AlertStore, usage repository.UsageTracker, log *zap.Logger) *Handler {
	return &Handler{generator: generator, extractor: extractor, alerts: alerts, usage: usage, log: log}
}

type generateRequest struct {
	Bot          entity.BotConfig `json:"bot"`
	SystemPrompt string           `json:"system_prompt"`
	UserPrompt   string           `json:"user_prompt"`
}

func (h *Handler) GeneratePost(c *fiber.Ctx) error {
	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Bot.ModelID == "" || req.UserPrompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": entity.ErrInvalidRequest.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	post, err := h.generator.Generate(ctx, req.Bot, req.SystemPrompt, req.UserPrompt)
	if err != nil {
		h.escalateGenerationFailure(req.Bot, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "content generation failed, try again or use the manual editorial flow",
		})
	}

	// Usage accounting happens off the request path; the request context may
	// already be gone by the time it runs.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.usage.Add(bgCtx, req.Bot.ID, post.Usage, post.CostUSD); err != nil {
			h.log.Warn("usage tracking failed", zap.String("bot_id", req.Bot.ID), zap.Error(err))
		}
	}()

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *Handler) escalateGenerationFailure(bot entity.BotConfig, genErr error) {
	severity := entity.SeverityHigh
	if errors.Is(genErr, entity.ErrBadFormat) {
		severity = entity.SeverityMedium
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := h.alerts.Record(ctx, &entity.Alert{
		Type:        entity.AlertTypeBotFailure,
		Severity:    severity,
		Title:       "Board post generation failed",
		Message:     genErr.Error(),
		SourceBotID: bot.ID,
		Metadata:    map[string]any{"model": bot.ModelID, "bot_name": bot.Name},
	})
	if err != nil {
		h.log.Error("failed to record alert", zap.Error(err))
	}
}

type extractRequest struct {
	Reviews        []entity.Review `json:"reviews"`
	RestaurantName string          `json:"restaurant_name"`
	CuisineType    string          `json:"cuisine_type"`
}

func (h *Handler) ExtractMenu(c *fiber.Ctx) error {
	var req extractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.RestaurantName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": entity.ErrInvalidRequest.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	items := h.extractor.Extract(ctx, req.Reviews, req.RestaurantName, req.CuisineType)
	items = usecase.FilterMenuItems(items)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"items": items})
}

func (h *Handler) ListAlerts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	unreadOnly := c.QueryBool("unread_only", false)

	alerts, err := h.alerts.Recent(c.Context(), limit, unreadOnly)
	if err != nil {
		h.log.Error("failed to list alerts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list alerts"})
	}
	if alerts == nil {
		alerts = []entity.Alert{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"alerts": alerts})
}

func (h *Handler) UnreadAlertCount(c *fiber.Ctx) error {
	count, err := h.alerts.UnreadCount(c.Context())
	if err != nil {
		h.log.Error("failed to count unread alerts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to count alerts"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"unread": count})
}

type markReadRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) MarkAlertRead(c *fiber.Ctx) error {
	var req markReadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	alert, err := h.alerts.MarkRead(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("failed to mark alert read", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to mark alert read"})
	}
	return c.Status(fiber.StatusOK).JSON(alert)
}

func (h *Handler) BotUsage(c *fiber.Ctx) error {
	totals, err := h.usage.Totals(c.Context(), c.Params("id"))
	if err != nil {
		h.log.Error("failed to read bot usage", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read usage"})
	}
	return c.Status(fiber.StatusOK).JSON(totals)
}
