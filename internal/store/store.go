// Package store provides session storage backends for CampaignForge.
//
// It includes an in-memory store for ephemeral sessions, a JSON-file store
// mirroring the persisted session format, and SQLite/PostgreSQL backends.
package store

import (
	"strings"
	"time"

	"github.com/bluereef/campaignforge/internal/models"
)

// DefaultSessionTimeout is how long a session may sit idle before it is
// considered expired by backends that enforce expiry on load.
const DefaultSessionTimeout = 24 * time.Hour

// Store defines the session persistence interface consumed by the orchestrator.
type Store interface {
	// SaveSession persists the full conversation state, overwriting any
	// previous state for the same session id.
	SaveSession(state *models.ConversationState) error

	// GetSession returns the state for a session id, or nil when absent.
	GetSession(sessionID string) (*models.ConversationState, error)

	// DeleteSession removes a session. Returns true iff it existed.
	DeleteSession(sessionID string) (bool, error)

	// ListSessionIDs returns the ids of all stored sessions.
	ListSessionIDs() ([]string, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	// DSN is the database connection string (SQLite file path or Postgres URL).
	DSN string
	// Dir is the directory for the JSON-file backend.
	Dir string
	// SessionTimeout overrides the idle expiry window.
	SessionTimeout time.Duration
}

// Option configures store backends.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithDir sets the directory for file-based session storage.
func WithDir(dir string) Option {
	return func(o *Opts) { o.Dir = dir }
}

// WithSessionTimeout sets the idle expiry window.
func WithSessionTimeout(d time.Duration) Option {
	return func(o *Opts) { o.SessionTimeout = d }
}

// DetectDSNType classifies a DSN as "postgres" or "sqlite". Anything that is
// not a Postgres URL or key-value connection string is treated as a SQLite
// file path.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}
