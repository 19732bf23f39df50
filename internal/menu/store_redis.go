package menu

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore holds ephemeral menus in Redis with an idle TTL, so abandoned
// sessions reclaim themselves. The durable order record is the system of
// record once an order is reconciled; menus here are disposable.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{client: client, ttl: ttl}
}

func menuKey(sessionID string) string {
	return "ephemeral_menu:" + sessionID
}

func (s *RedisStore) Save(ctx context.Context, m *EphemeralMenu) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, menuKey(m.SessionID), payload, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*EphemeralMenu, error) {
	payload, err := s.client.Get(ctx, menuKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var m EphemeralMenu
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, err
	}
	m.buildIndex()
	return &m, nil
}

func (s *RedisStore) Expire(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, menuKey(sessionID)).Err()
}
