package session

import (
	"errors"
	"sync"

	"github.com/hxnx/jukebot/internal/spotify"
)

var ErrNotAuthenticated = errors.New("no spotify session installed")

// Guard owns the single shared Spotify session and the global freeze
// flag. The session sits behind a reader/writer lock so concurrent
// commands can read while authentication replaces it exclusively. The
// freeze flag uses its own independent lock so toggling it is never
// blocked by in-flight playback calls.
//
// Callers must never hold the session lock across a wait on user input:
// WithSession scopes the read lock to a single remote call, and every
// interactive wait happens between WithSession calls.
type Guard struct {
	mu      sync.RWMutex
	current *spotify.Session

	freezeMu sync.RWMutex
	frozen   bool
}

func NewGuard() *Guard {
	return &Guard{}
}

// WithSession runs fn with the shared read lock held. It returns
// ErrNotAuthenticated when no session is installed; fn's error is
// returned as-is otherwise.
func (g *Guard) WithSession(fn func(*spotify.Session) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.current == nil {
		return ErrNotAuthenticated
	}
	return fn(g.current)
}

// Install replaces the current session unconditionally. Supports
// re-authentication; the prior session, if any, is discarded.
func (g *Guard) Install(s *spotify.Session) {
	g.mu.Lock()
	g.current = s
	g.mu.Unlock()
}

func (g *Guard) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.current != nil
}

func (g *Guard) Frozen() bool {
	g.freezeMu.RLock()
	defer g.freezeMu.RUnlock()
	return g.frozen
}

// ToggleFreeze flips the freeze flag and returns the new state.
func (g *Guard) ToggleFreeze() bool {
	g.freezeMu.Lock()
	defer g.freezeMu.Unlock()
	g.frozen = !g.frozen
	return g.frozen
}
