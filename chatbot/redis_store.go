package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "smartcare:chat:draft:"

// RedisStore keeps drafts as JSON values whose key TTL is refreshed on every
// save.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(userID string) string {
	return redisKeyPrefix + userID
}

func (r *RedisStore) Load(ctx context.Context, userID string) (State, error) {
	raw, err := r.client.Get(ctx, redisKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Idle{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chat draft: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode chat draft: %w", err)
	}
	return d.State()
}

func (r *RedisStore) Save(ctx context.Context, userID string, state State) error {
	if state.Stage() == StageIdle {
		if err := r.client.Del(ctx, redisKey(userID)).Err(); err != nil {
			return fmt.Errorf("failed to delete chat draft: %w", err)
		}
		return nil
	}
	raw, err := json.Marshal(DraftOf(state))
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, redisKey(userID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save chat draft: %w", err)
	}
	return nil
}
