// Package session holds per-conversation state keyed by session ID.
package session

import (
	"time"

	"github.com/vitracka/concierge/internal/domain"
)

// Store is the session-store abstraction injected into the
// orchestrator. Implementations return and accept snapshots; callers
// never share a live context with the store.
type Store interface {
	// Get returns a copy of the stored context, or nil when unknown.
	Get(sessionID string) *domain.AgentContext

	// Put stores a snapshot of the context under its session ID.
	Put(ctx *domain.AgentContext)

	// RemoveExpired evicts sessions idle longer than the TTL and
	// returns how many were removed.
	RemoveExpired(now time.Time) int
}
