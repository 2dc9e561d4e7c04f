package gate

import (
	"context"
)

// Reason classifies a gate decision. Each denial maps to a distinct
// user-visible message; the check order is fixed and tested.
type Reason int

const (
	Allowed Reason = iota
	DeniedFrozen
	DeniedInactive
	DeniedNoPermission
)

func (r Reason) Message() string {
	switch r {
	case DeniedFrozen:
		return "Playback changes are frozen"
	case DeniedInactive:
		return "Nothing playing; can't modify playback."
	case DeniedNoPermission:
		return "You don't have permission to run this command"
	default:
		return ""
	}
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

// PermissionSource reads a user's stored permission level. The second
// return reports whether a record exists at all.
type PermissionSource interface {
	GetPermission(ctx context.Context, userID int64) (int16, bool, error)
}

// Gate decides whether a mutating playback command may run. Checks run
// in a fixed order: freeze first (administrators included), then
// activity, then the administrator bypass, then the permission lookup.
type Gate struct {
	Frozen  func() bool
	Active  func(ctx context.Context) (bool, error)
	IsAdmin func(userID int64) bool
	Perms   PermissionSource
}

func (g *Gate) Allow(ctx context.Context, userID int64, minLevel int16) (Decision, error) {
	if g.Frozen() {
		return Decision{Reason: DeniedFrozen}, nil
	}

	active, err := g.Active(ctx)
	if err != nil {
		return Decision{}, err
	}
	if !active {
		return Decision{Reason: DeniedInactive}, nil
	}

	if g.IsAdmin(userID) {
		return Decision{Allowed: true}, nil
	}

	level, ok, err := g.Perms.GetPermission(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	if !ok || level < minLevel {
		return Decision{Reason: DeniedNoPermission}, nil
	}

	return Decision{Allowed: true}, nil
}
