package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetTokenTTL bounds how long a password-reset token stays valid.
const ResetTokenTTL = time.Hour

var ErrTokenNotFound = errors.New("reset token not found or expired")

// ResetTokenStore holds single-use password-reset tokens.
type ResetTokenStore interface {
	Save(ctx context.Context, token string, userID uint) error
	// Consume returns the user the token was issued for and deletes it.
	Consume(ctx context.Context, token string) (uint, error)
}

type RedisResetTokenStore struct {
	client *redis.Client
}

func NewRedisResetTokenStore(client *redis.Client) *RedisResetTokenStore {
	return &RedisResetTokenStore{client: client}
}

func (s *RedisResetTokenStore) key(token string) string {
	return "password_reset:" + token
}

func (s *RedisResetTokenStore) Save(ctx context.Context, token string, userID uint) error {
	return s.client.Set(ctx, s.key(token), strconv.FormatUint(uint64(userID), 10), ResetTokenTTL).Err()
}

func (s *RedisResetTokenStore) Consume(ctx context.Context, token string) (uint, error) {
	val, err := s.client.GetDel(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("corrupt reset token value: %w", err)
	}

	return uint(userID), nil
}

type memoryResetToken struct {
	userID    uint
	expiresAt time.Time
}

// MemoryResetTokenStore backs deployments without redis and the tests.
type MemoryResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryResetToken
}

func NewMemoryResetTokenStore() *MemoryResetTokenStore {
	return &MemoryResetTokenStore{tokens: make(map[string]memoryResetToken)}
}

func (s *MemoryResetTokenStore) Save(_ context.Context, token string, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = memoryResetToken{userID: userID, expiresAt: time.Now().Add(ResetTokenTTL)}
	return nil
}

func (s *MemoryResetTokenStore) Consume(_ context.Context, token string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return 0, ErrTokenNotFound
	}

	delete(s.tokens, token)

	if time.Now().After(entry.expiresAt) {
		return 0, ErrTokenNotFound
	}

	return entry.userID, nil
}
