package leadcapture

import (
	"context"
	"sync"
	"time"
)

// SessionTTL approximates the lifetime of a browser session.
const SessionTTL = 12 * time.Hour

// SessionStore persists the "popup already shown" flag per visitor session.
// The flag is written the instant the popup shows, which guarantees at most
// one popup per session no matter which trigger conditions fire later.
type SessionStore interface {
	Shown(ctx context.Context, sessionID string) (bool, error)
	MarkShown(ctx context.Context, sessionID string) error
}

type MemorySessionStore struct {
	mu    sync.Mutex
	shown map[string]time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{shown: make(map[string]time.Time)}
}

func (s *MemorySessionStore) Shown(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.shown[sessionID]

	if !ok {
		return false, nil
	}

	if time.Now().After(expiry) {
		delete(s.shown, sessionID)
		return false, nil
	}

	return true, nil
}

func (s *MemorySessionStore) MarkShown(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shown[sessionID] = time.Now().Add(SessionTTL)
	return nil
}
