package leadcapture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	shown, err := store.Shown(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, shown)

	require.NoError(t, store.MarkShown(ctx, "sess-1"))

	shown, err = store.Shown(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, shown)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()

	store.mu.Lock()
	store.shown["stale"] = time.Now().Add(-time.Minute)
	store.mu.Unlock()

	shown, err := store.Shown(context.Background(), "stale")
	require.NoError(t, err)
	assert.False(t, shown)
}
