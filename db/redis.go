package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is nil when REDIS_ADDR is not configured; callers fall back to
// in-memory stores in that case.
var Redis *redis.Client

func ConnectRedis(addr, password string) error {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	Redis = client
	return nil
}
