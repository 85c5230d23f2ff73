package leadcapture

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) key(sessionID string) string {
	return "leadCapture_shown:" + sessionID
}

func (s *RedisSessionStore) Shown(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.client.Get(ctx, s.key(sessionID)).Result()

	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *RedisSessionStore) MarkShown(ctx context.Context, sessionID string) error {
	return s.client.Set(ctx, s.key(sessionID), "true", SessionTTL).Err()
}
