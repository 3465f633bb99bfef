package application

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jumpypanter/serverforms/internal/domain"
)

// SessionRegistry maps each player identity to at most one in-progress form
// session. It is the sole guard preventing a player from holding two
// simultaneous interviews. The registry is owned by the engine and injected
// where needed; nothing here is global state.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.FormSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[uuid.UUID]*domain.FormSession)}
}

// TryBegin registers the session iff the player has no active session.
// Returns false without mutation otherwise.
func (r *SessionRegistry) TryBegin(playerID uuid.UUID, session *domain.FormSession) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, active := r.sessions[playerID]; active {
		return false
	}
	r.sessions[playerID] = session
	return true
}

// End removes the player's session unconditionally.
func (r *SessionRegistry) End(playerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, playerID)
}

// Active returns the player's in-progress session, if any.
func (r *SessionRegistry) Active(playerID uuid.UUID) (*domain.FormSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[playerID]
	return session, ok
}

// Len reports the number of active sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
