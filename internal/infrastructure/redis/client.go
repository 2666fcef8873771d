package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewClient connects to redisURL and verifies the connection. An empty URL
// means Redis is not configured and yields a nil client.
func NewClient(ctx context.Context, redisURL string, logger zerolog.Logger) (*redis.Client, error) {
	if redisURL == "" {
		logger.Info().Msg("redis not configured; idempotency keys disabled")
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	logger.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("redis connected")
	return client, nil
}
