package app

import (
	"context"
	"strconv"

	"github.com/hxnx/jukebot/config"
	"github.com/hxnx/jukebot/internal/database"
	"github.com/hxnx/jukebot/internal/features/modals"
	"github.com/hxnx/jukebot/internal/gate"
	"github.com/hxnx/jukebot/internal/session"
	"github.com/hxnx/jukebot/internal/spotify"
	"github.com/hxnx/jukebot/internal/trackcache"
)

// App bundles the shared state every command handler needs: the session
// guard, the permission store, the OAuth authenticator, the metadata
// cache and the interaction awaiter. Handlers receive it explicitly;
// nothing here is package-global.
type App struct {
	Config  *config.Config
	Guard   *session.Guard
	Users   *database.UserRepository
	Auth    *spotify.Authenticator
	Cache   *trackcache.Cache
	Awaiter *modals.Awaiter

	admins map[int64]struct{}
	gate   *gate.Gate
}

func New(
	cfg *config.Config,
	guard *session.Guard,
	users *database.UserRepository,
	auth *spotify.Authenticator,
	cache *trackcache.Cache,
) *App {
	admins := make(map[int64]struct{}, len(cfg.AdminUserIDs))
	for _, raw := range cfg.AdminUserIDs {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			admins[id] = struct{}{}
		}
	}

	a := &App{
		Config:  cfg,
		Guard:   guard,
		Users:   users,
		Auth:    auth,
		Cache:   cache,
		Awaiter: modals.NewAwaiter(),
		admins:  admins,
	}

	a.gate = &gate.Gate{
		Frozen:  guard.Frozen,
		Active:  a.playbackActive,
		IsAdmin: a.isAdmin,
		Perms:   users,
	}
	return a
}

// playbackActive probes the linked account for an active item. Errors
// (including a missing session) surface to the caller unchanged so they
// are not mistaken for a clean denial.
func (a *App) playbackActive(ctx context.Context) (bool, error) {
	active := false
	err := a.Guard.WithSession(func(s *spotify.Session) error {
		playing, err := s.Client().PlayerCurrentlyPlaying(ctx)
		if err != nil {
			return err
		}
		active = playing != nil && playing.Item != nil
		return nil
	})
	if err != nil {
		return false, err
	}
	return active, nil
}

func (a *App) isAdmin(userID int64) bool {
	_, ok := a.admins[userID]
	return ok
}

// IsAdmin reports whether the Discord snowflake belongs to a configured
// administrator.
func (a *App) IsAdmin(userID string) bool {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return false
	}
	return a.isAdmin(id)
}

// AllowPlayback runs the playback gate for the calling user.
func (a *App) AllowPlayback(ctx context.Context, callerID string, minLevel int16) (gate.Decision, error) {
	id, err := strconv.ParseInt(callerID, 10, 64)
	if err != nil {
		return gate.Decision{Reason: gate.DeniedNoPermission}, nil
	}
	return a.gate.Allow(ctx, id, minLevel)
}
