// Package recovery restores a healthy session store after a restart.
//
// Sessions abandoned mid-conversation accumulate in persistent backends; the
// sweeper removes those whose idle time exceeds the session timeout. It runs
// once at startup and periodically via the scheduler.
package recovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bluereef/campaignforge/internal/store"
)

// Sweeper removes expired sessions from a store.
type Sweeper struct {
	store   store.Store
	timeout time.Duration
}

// Opts holds sweeper configuration options.
type Opts struct {
	SessionTimeout time.Duration
}

// Option configures the sweeper.
type Option func(*Opts)

// WithSessionTimeout overrides the idle expiry window.
func WithSessionTimeout(d time.Duration) Option {
	return func(o *Opts) {
		if d > 0 {
			o.SessionTimeout = d
		}
	}
}

// NewSweeper creates a sweeper over the given store.
func NewSweeper(st store.Store, opts ...Option) *Sweeper {
	cfg := Opts{SessionTimeout: store.DefaultSessionTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Sweeper{store: st, timeout: cfg.SessionTimeout}
}

// Sweep deletes every session idle for longer than the timeout and returns
// how many were removed. Backends that expire sessions on load count too.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	ids, err := s.store.ListSessionIDs()
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	removed := 0
	cutoff := time.Now().Add(-s.timeout)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return removed, err
		}

		state, err := s.store.GetSession(id)
		if err != nil {
			slog.Warn("Sweeper.Sweep: session load failed", "error", err, "sessionID", id)
			continue
		}
		if state == nil {
			// The backend already expired it on load.
			removed++
			continue
		}
		if state.UpdatedAt.Before(cutoff) {
			if _, err := s.store.DeleteSession(id); err != nil {
				slog.Warn("Sweeper.Sweep: session delete failed", "error", err, "sessionID", id)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		slog.Info("Sweeper.Sweep: expired sessions removed", "count", removed)
	}
	return removed, nil
}
