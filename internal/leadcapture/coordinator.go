package leadcapture

import (
	"context"
	"sync"
)

// Coordinator keeps one Machine per visitor session, guarded by a mutex the
// same way the websocket handler guards its client registry.
type Coordinator struct {
	store    SessionStore
	mu       sync.Mutex
	sessions map[string]*Machine
}

func NewCoordinator(store SessionStore) *Coordinator {
	return &Coordinator{
		store:    store,
		sessions: make(map[string]*Machine),
	}
}

func (c *Coordinator) machine(sessionID, variant string) *Machine {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.sessions[sessionID]; ok {
		return m
	}

	m := NewMachine(DefaultConfig(variant))
	c.sessions[sessionID] = m
	return m
}

// HandleSignal runs one event through the session's machine and reports
// whether the popup should be shown. The session flag is written before
// returning true, so a concurrent or later signal can never show it again.
func (c *Coordinator) HandleSignal(ctx context.Context, sessionID, page, variant string, authenticated bool, sig Signal, scrollPercent float64) (bool, error) {
	shown, err := c.store.Shown(ctx, sessionID)

	if err != nil {
		return false, err
	}

	// The flag makes the machine dead weight; drop it so the registry
	// doesn't accumulate finished sessions.
	if shown {
		c.mu.Lock()
		delete(c.sessions, sessionID)
		c.mu.Unlock()
		return false, nil
	}

	m := c.machine(sessionID, variant)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !m.Arm(page, shown, authenticated) {
		return false, nil
	}

	if !m.Trigger(sig, scrollPercent) {
		return false, nil
	}

	if err := c.store.MarkShown(ctx, sessionID); err != nil {
		return false, err
	}

	return true, nil
}

// Dismiss closes the popup and drops the session's machine; the store flag
// alone keeps the popup from showing again.
func (c *Coordinator) Dismiss(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.sessions[sessionID]; ok {
		m.Close()
		delete(c.sessions, sessionID)
	}
}
