package store

import (
	"log/slog"
	"sync"

	"github.com/bluereef/campaignforge/internal/models"
)

// InMemoryStore keeps sessions in a mutex-guarded map. Safe for concurrent
// access across distinct session ids; callers serialize turns for a single id.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.ConversationState
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	slog.Debug("InMemoryStore.NewInMemoryStore: creating in-memory session store")
	return &InMemoryStore{sessions: make(map[string]*models.ConversationState)}
}

// SaveSession stores the state under its session id.
func (s *InMemoryStore) SaveSession(state *models.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.SessionID] = state
	slog.Debug("InMemoryStore.SaveSession: saved", "sessionID", state.SessionID, "stage", state.CurrentStage)
	return nil
}

// GetSession returns the stored state or nil when the id is unknown.
func (s *InMemoryStore) GetSession(sessionID string) (*models.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return state, nil
}

// DeleteSession removes the session, reporting whether it existed.
func (s *InMemoryStore) DeleteSession(sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	slog.Debug("InMemoryStore.DeleteSession: done", "sessionID", sessionID, "existed", ok)
	return ok, nil
}

// ListSessionIDs returns the ids of all stored sessions.
func (s *InMemoryStore) ListSessionIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

// Close is a no-op for the in-memory backend.
func (s *InMemoryStore) Close() error { return nil }
