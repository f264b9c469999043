package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bluereef/campaignforge/internal/models"
)

// Constants for file store configuration
const (
	// DefaultDirPermissions defines the default permissions for session directories
	DefaultDirPermissions = 0755
	// DefaultFilePermissions defines the default permissions for session files
	DefaultFilePermissions = 0644
)

// FileStore persists each session as one JSON file named <session_id>.json.
// The on-disk object mirrors ConversationState verbatim; there is no schema
// version field. Sessions idle past the timeout are expired on load.
type FileStore struct {
	dir     string
	timeout time.Duration
	mu      sync.Mutex
}

// NewFileStore creates a JSON-file session store rooted at the configured directory.
func NewFileStore(opts ...Option) (*FileStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("FileStore.NewFileStore: creating file store", "dir", cfg.Dir)

	if cfg.Dir == "" {
		slog.Error("FileStore directory not set")
		return nil, fmt.Errorf("session directory not set")
	}
	if err := os.MkdirAll(cfg.Dir, DefaultDirPermissions); err != nil {
		slog.Error("FileStore failed to create session directory", "error", err, "dir", cfg.Dir)
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	timeout := cfg.SessionTimeout
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &FileStore{dir: cfg.Dir, timeout: timeout}, nil
}

func (s *FileStore) sessionPath(sessionID string) string {
	return filepath.Join(s.dir, sessionID+".json")
}

// SaveSession writes the state to its session file.
func (s *FileStore) SaveSession(state *models.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		slog.Error("FileStore.SaveSession: marshal failed", "error", err, "sessionID", state.SessionID)
		return fmt.Errorf("failed to marshal session %s: %w", state.SessionID, err)
	}
	if err := os.WriteFile(s.sessionPath(state.SessionID), data, DefaultFilePermissions); err != nil {
		slog.Error("FileStore.SaveSession: write failed", "error", err, "sessionID", state.SessionID)
		return fmt.Errorf("failed to write session %s: %w", state.SessionID, err)
	}
	slog.Debug("FileStore.SaveSession: saved", "sessionID", state.SessionID, "stage", state.CurrentStage)
	return nil
}

// GetSession loads a session from disk, returning nil when absent or expired.
// Expired sessions are deleted as a side effect.
func (s *FileStore) GetSession(sessionID string) (*models.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.sessionPath(sessionID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		slog.Error("FileStore.GetSession: read failed", "error", err, "sessionID", sessionID)
		return nil, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}

	var state models.ConversationState
	if err := json.Unmarshal(data, &state); err != nil {
		slog.Error("FileStore.GetSession: unmarshal failed", "error", err, "sessionID", sessionID)
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}

	if s.expired(&state) {
		slog.Info("FileStore.GetSession: session expired", "sessionID", sessionID, "lastUpdated", state.UpdatedAt)
		if err := os.Remove(s.sessionPath(sessionID)); err != nil && !os.IsNotExist(err) {
			slog.Warn("FileStore.GetSession: failed to remove expired session", "error", err, "sessionID", sessionID)
		}
		return nil, nil
	}
	return &state, nil
}

// DeleteSession removes the session file, reporting whether it existed.
func (s *FileStore) DeleteSession(sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.sessionPath(sessionID))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		slog.Error("FileStore.DeleteSession: remove failed", "error", err, "sessionID", sessionID)
		return false, fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return true, nil
}

// ListSessionIDs returns the ids of all session files in the directory.
func (s *FileStore) ListSessionIDs() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list session directory: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// CleanupExpiredSessions deletes all session files past the idle timeout and
// returns how many were removed.
func (s *FileStore) CleanupExpiredSessions() (int, error) {
	ids, err := s.ListSessionIDs()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, id := range ids {
		state, err := s.GetSession(id)
		if err != nil {
			slog.Warn("FileStore.CleanupExpiredSessions: skipping unreadable session", "error", err, "sessionID", id)
			continue
		}
		// GetSession deletes expired sessions and returns nil for them.
		if state == nil {
			removed++
		}
	}
	if removed > 0 {
		slog.Info("FileStore.CleanupExpiredSessions: removed expired sessions", "count", removed)
	}
	return removed, nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) expired(state *models.ConversationState) bool {
	return time.Now().After(state.UpdatedAt.Add(s.timeout))
}
