package store

import (
	"context"
	"strconv"

	"tastepost-core/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

// RedisUsageTracker accumulates per-bot token and cost totals for the
// operator usage surface. Written after the fact; never consulted on the
// generation hot path.
type RedisUsageTracker struct {
	client *redis.Client
}

func NewRedisUsageTracker(client *redis.Client) *RedisUsageTracker {
	return &RedisUsageTracker{client: client}
}

func tokensKey(botID string) string { return "bot:usage:tokens:" + botID }
func costKey(botID string) string   { return "bot:usage:cost:" + botID }

func (r *RedisUsageTracker) Add(ctx context.Context, botID string, usage entity.Usage, costUSD float64) error {
	if err := r.client.IncrBy(ctx, tokensKey(botID), int64(usage.TotalTokens)).Err(); err != nil {
		return err
	}
	return r.client.IncrByFloat(ctx, costKey(botID), costUSD).Err()
}

func (r *RedisUsageTracker) Totals(ctx context.Context, botID string) (entity.BotUsage, error) {
	var out entity.BotUsage

	tokens, err := r.client.Get(ctx, tokensKey(botID)).Result()
	if err != nil && err != redis.Nil {
		return out, err
	}
	if err == nil {
		out.TotalTokens, _ = strconv.ParseInt(tokens, 10, 64)
	}

	cost, err := r.client.Get(ctx, costKey(botID)).Result()
	if err != nil && err != redis.Nil {
		return out, err
	}
	if err == nil {
		out.CostUSD, _ = strconv.ParseFloat(cost, 64)
	}

	return out, nil
}
