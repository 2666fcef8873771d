package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/finwise/internal/usecase"
)

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "finwise:idempotency:",
	}
}

type storedRecord struct {
	Pending    bool   `json:"pending"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       []byte `json:"body,omitempty"`
}

// Reserve claims key for a new request. If the key was already claimed it
// returns the stored record and false.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (*usecase.IdempotencyRecord, bool, error) {
	fullKey := s.prefix + key

	placeholder, err := json.Marshal(storedRecord{Pending: true})
	if err != nil {
		return nil, false, err
	}

	set, err := s.client.SetNX(ctx, fullKey, placeholder, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if set {
		return nil, true, nil
	}

	raw, err := s.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET; the caller may retry
		return &usecase.IdempotencyRecord{Pending: true}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read idempotency key: %w", err)
	}

	var rec storedRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, fmt.Errorf("corrupt idempotency record: %w", err)
	}

	return &usecase.IdempotencyRecord{
		Pending:    rec.Pending,
		StatusCode: rec.StatusCode,
		Body:       rec.Body,
	}, false, nil
}

// Complete stores the final response for key.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, rec usecase.IdempotencyRecord, ttl time.Duration) error {
	raw, err := json.Marshal(storedRecord{StatusCode: rec.StatusCode, Body: rec.Body})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, raw, ttl).Err()
}

// Release drops a reservation so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
