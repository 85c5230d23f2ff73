package leadcapture

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSignalShowsOncePerSession(t *testing.T) {
	c := NewCoordinator(NewMemorySessionStore())
	ctx := context.Background()

	show, err := c.HandleSignal(ctx, "sess-1", "/", VariantScroll, false, SignalScroll, 90)
	require.NoError(t, err)
	assert.True(t, show)

	// Every later signal in the same session is ignored.
	show, err = c.HandleSignal(ctx, "sess-1", "/", VariantScroll, false, SignalScroll, 100)
	require.NoError(t, err)
	assert.False(t, show)

	// A different session still gets its popup.
	show, err = c.HandleSignal(ctx, "sess-2", "/", VariantScroll, false, SignalScroll, 90)
	require.NoError(t, err)
	assert.True(t, show)
}

func TestHandleSignalRespectsStoredFlag(t *testing.T) {
	store := NewMemorySessionStore()
	require.NoError(t, store.MarkShown(context.Background(), "sess-1"))

	c := NewCoordinator(store)

	show, err := c.HandleSignal(context.Background(), "sess-1", "/", VariantScroll, false, SignalScroll, 90)
	require.NoError(t, err)
	assert.False(t, show)
}

func TestHandleSignalAuthenticatedVisitor(t *testing.T) {
	c := NewCoordinator(NewMemorySessionStore())

	show, err := c.HandleSignal(context.Background(), "sess-1", "/", VariantScroll, true, SignalScroll, 90)
	require.NoError(t, err)
	assert.False(t, show)
}

func TestHandleSignalBelowThresholdThenAbove(t *testing.T) {
	c := NewCoordinator(NewMemorySessionStore())
	ctx := context.Background()

	show, err := c.HandleSignal(ctx, "sess-1", "/blog", VariantScroll, false, SignalScroll, 40)
	require.NoError(t, err)
	assert.False(t, show)

	show, err = c.HandleSignal(ctx, "sess-1", "/blog", VariantScroll, false, SignalScroll, 88)
	require.NoError(t, err)
	assert.True(t, show)
}

func TestConcurrentSignalsShowExactlyOnce(t *testing.T) {
	c := NewCoordinator(NewMemorySessionStore())
	ctx := context.Background()

	const workers = 16

	var wg sync.WaitGroup
	var mu sync.Mutex
	shown := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			show, err := c.HandleSignal(ctx, "sess-1", "/", VariantMultiple, false, SignalExitIntent, 0)
			if err != nil {
				return
			}
			if show {
				mu.Lock()
				shown++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, shown)
}

// Dismiss drops the session's machine; the store flag alone keeps the popup
// from reappearing.
func TestDismissEvictsMachine(t *testing.T) {
	c := NewCoordinator(NewMemorySessionStore())
	ctx := context.Background()

	show, err := c.HandleSignal(ctx, "sess-1", "/", VariantScroll, false, SignalScroll, 90)
	require.NoError(t, err)
	require.True(t, show)

	c.Dismiss("sess-1")

	c.mu.Lock()
	_, ok := c.sessions["sess-1"]
	c.mu.Unlock()

	assert.False(t, ok)

	show, err = c.HandleSignal(ctx, "sess-1", "/", VariantScroll, false, SignalScroll, 95)
	require.NoError(t, err)
	assert.False(t, show)
}

// A session whose flag is already set sheds its machine on the next signal,
// so the registry does not accumulate finished sessions.
func TestHandleSignalEvictsFinishedSession(t *testing.T) {
	store := NewMemorySessionStore()
	c := NewCoordinator(store)
	ctx := context.Background()

	show, err := c.HandleSignal(ctx, "sess-1", "/", VariantScroll, false, SignalScroll, 40)
	require.NoError(t, err)
	require.False(t, show)

	c.mu.Lock()
	_, ok := c.sessions["sess-1"]
	c.mu.Unlock()
	require.True(t, ok)

	require.NoError(t, store.MarkShown(ctx, "sess-1"))

	show, err = c.HandleSignal(ctx, "sess-1", "/", VariantScroll, false, SignalScroll, 90)
	require.NoError(t, err)
	assert.False(t, show)

	c.mu.Lock()
	_, ok = c.sessions["sess-1"]
	c.mu.Unlock()

	assert.False(t, ok)
}
