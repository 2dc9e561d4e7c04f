package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePerms struct {
	levels map[int64]int16
	err    error
}

func (f *fakePerms) GetPermission(_ context.Context, userID int64) (int16, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	level, ok := f.levels[userID]
	return level, ok, nil
}

func newGate(frozen, active bool, admins map[int64]bool, perms *fakePerms) *Gate {
	return &Gate{
		Frozen:  func() bool { return frozen },
		Active:  func(context.Context) (bool, error) { return active, nil },
		IsAdmin: func(id int64) bool { return admins[id] },
		Perms:   perms,
	}
}

func TestAllow_PermittedUser(t *testing.T) {
	g := newGate(false, true, nil, &fakePerms{levels: map[int64]int16{42: 1}})

	decision, err := g.Allow(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestAllow_FrozenDeniesEveryone(t *testing.T) {
	admins := map[int64]bool{1: true}
	g := newGate(true, true, admins, &fakePerms{levels: map[int64]int16{42: 1}})

	for _, id := range []int64{1, 42} {
		decision, err := g.Allow(context.Background(), id, 1)
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, DeniedFrozen, decision.Reason)
	}
}

func TestAllow_InactiveBeatsAdminBypass(t *testing.T) {
	admins := map[int64]bool{1: true}
	g := newGate(false, false, admins, &fakePerms{})

	decision, err := g.Allow(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, DeniedInactive, decision.Reason)
}

func TestAllow_FrozenCheckedBeforeActivity(t *testing.T) {
	probeErr := errors.New("remote unavailable")
	g := &Gate{
		Frozen:  func() bool { return true },
		Active:  func(context.Context) (bool, error) { return false, probeErr },
		IsAdmin: func(int64) bool { return false },
		Perms:   &fakePerms{},
	}

	// The freeze denial short-circuits; the failing probe never runs.
	decision, err := g.Allow(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, DeniedFrozen, decision.Reason)
}

func TestAllow_AdminBypassesPermissionLookup(t *testing.T) {
	admins := map[int64]bool{1: true}
	g := newGate(false, true, admins, &fakePerms{err: errors.New("db down")})

	decision, err := g.Allow(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestAllow_MissingRecordDenied(t *testing.T) {
	g := newGate(false, true, nil, &fakePerms{levels: map[int64]int16{}})

	decision, err := g.Allow(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, DeniedNoPermission, decision.Reason)
}

func TestAllow_LevelBelowMinimumDenied(t *testing.T) {
	g := newGate(false, true, nil, &fakePerms{levels: map[int64]int16{42: 1}})

	decision, err := g.Allow(context.Background(), 42, 2)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, DeniedNoPermission, decision.Reason)
}

func TestAllow_ActivityProbeErrorPropagates(t *testing.T) {
	probeErr := errors.New("remote unavailable")
	g := &Gate{
		Frozen:  func() bool { return false },
		Active:  func(context.Context) (bool, error) { return false, probeErr },
		IsAdmin: func(int64) bool { return false },
		Perms:   &fakePerms{},
	}

	_, err := g.Allow(context.Background(), 42, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, probeErr)
}

func TestAllow_PermissionLookupErrorPropagates(t *testing.T) {
	lookupErr := errors.New("db down")
	g := newGate(false, true, nil, &fakePerms{err: lookupErr})

	_, err := g.Allow(context.Background(), 42, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
}

func TestReason_Messages(t *testing.T) {
	assert.Equal(t, "Playback changes are frozen", DeniedFrozen.Message())
	assert.Equal(t, "Nothing playing; can't modify playback.", DeniedInactive.Message())
	assert.Equal(t, "You don't have permission to run this command", DeniedNoPermission.Message())
	assert.Empty(t, Allowed.Message())
}
