package repository

import (
	"context"

	"tastepost-core/internal/domain/entity"
)

// ChatModel is the injectable handle to the LLM provider. One call is one
// blocking round trip; no retries happen behind this interface.
type ChatModel interface {
	Complete(ctx context.Context, req entity.ChatRequest) (*entity.ChatResponse, error)
}

// AlertStore is the durable failure escalation store.
type AlertStore interface {
	Record(ctx context.Context, alert *entity.Alert) (string, error)
	UnreadCount(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int, unreadOnly bool) ([]entity.Alert, error)
	MarkRead(ctx context.Context, id, byUser string) (*entity.Alert, error)
}

// UsageTracker accumulates per-bot token and cost totals.
type UsageTracker interface {
	Add(ctx context.Context, botID string, usage entity.Usage, costUSD float64) error
	Totals(ctx context.Context, botID string) (entity.BotUsage, error)
}
