// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/authgate/internal/platform/constants"
)

// RedisCommands is the slice of the Redis API the flow store needs.
// *redis.Client and *redis.ClusterClient both satisfy it.
type RedisCommands interface {
	Set(context context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(context context.Context, key string) *redis.StringCmd
}

var _ RedisCommands = (*redis.Client)(nil)

// RedisFlowStore shares pending flows between gateway instances.
type RedisFlowStore struct {
	client RedisCommands
}

// NewRedisFlowStore constructs a [RedisFlowStore].
func NewRedisFlowStore(client RedisCommands) *RedisFlowStore {
	return &RedisFlowStore{client: client}
}

func flowKey(id string) string {
	return constants.RedisPrefixFlow + id
}

// Save implements [FlowStore].
func (store *RedisFlowStore) Save(context context.Context, id, verifier string, ttl time.Duration) error {
	if err := store.client.Set(context, flowKey(id), verifier, ttl).Err(); err != nil {
		return fmt.Errorf("redis_flow_save_failed: %w", err)
	}
	return nil
}

// Take implements [FlowStore] with GETDEL so a flow is consumed atomically.
func (store *RedisFlowStore) Take(context context.Context, id string) (string, error) {
	verifier, err := store.client.GetDel(context, flowKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrFlowNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis_flow_take_failed: %w", err)
	}
	return verifier, nil
}
