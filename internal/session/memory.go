package session

import (
	"log"
	"sync"
	"time"

	"github.com/vitracka/concierge/internal/domain"
)

// MemoryStore is the in-process Store implementation. Snapshots are
// cloned on both Put and Get so no caller aliases stored state.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*domain.AgentContext
}

// NewMemoryStore creates a store evicting sessions idle longer than ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*domain.AgentContext),
	}
}

// Get returns a copy of the stored context, or nil when unknown.
func (m *MemoryStore) Get(sessionID string) *domain.AgentContext {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[sessionID].Clone()
}

// Put stores a snapshot of the context under its session ID.
func (m *MemoryStore) Put(ctx *domain.AgentContext) {
	if ctx == nil || ctx.SessionID == "" {
		return
	}
	snapshot := ctx.Clone()
	m.mu.Lock()
	m.sessions[ctx.SessionID] = snapshot
	m.mu.Unlock()
}

// RemoveExpired evicts sessions whose last interaction is older than
// the TTL and returns how many were removed.
func (m *MemoryStore) RemoveExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, ctx := range m.sessions {
		if now.Sub(ctx.LastInteractionTime) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of active sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartSweeper runs RemoveExpired on the interval until stop is closed.
func (m *MemoryStore) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := m.RemoveExpired(time.Now()); n > 0 {
					log.Printf("INFO: evicted %d expired sessions", n)
				}
			case <-stop:
				return
			}
		}
	}()
}
