package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResetTokenStoreConsumeOnce(t *testing.T) {
	store := NewMemoryResetTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-1", 7))

	userID, err := store.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	_, err = store.Consume(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMemoryResetTokenStoreUnknownToken(t *testing.T) {
	store := NewMemoryResetTokenStore()

	_, err := store.Consume(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMemoryResetTokenStoreExpired(t *testing.T) {
	store := NewMemoryResetTokenStore()

	store.mu.Lock()
	store.tokens["stale"] = memoryResetToken{userID: 3, expiresAt: time.Now().Add(-time.Minute)}
	store.mu.Unlock()

	_, err := store.Consume(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
