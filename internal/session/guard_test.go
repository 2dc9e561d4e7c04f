package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxnx/jukebot/internal/spotify"
)

func TestWithSession_NotAuthenticated(t *testing.T) {
	g := NewGuard()

	err := g.WithSession(func(*spotify.Session) error {
		t.Fatal("fn must not run without a session")
		return nil
	})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, g.Authenticated())
}

func TestWithSession_RunsAfterInstall(t *testing.T) {
	g := NewGuard()
	g.Install(&spotify.Session{})

	ran := false
	err := g.WithSession(func(s *spotify.Session) error {
		require.NotNil(t, s)
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.True(t, g.Authenticated())
}

func TestInstall_ReplacesSession(t *testing.T) {
	g := NewGuard()

	first := &spotify.Session{}
	second := &spotify.Session{}
	g.Install(first)
	g.Install(second)

	err := g.WithSession(func(s *spotify.Session) error {
		assert.Same(t, second, s)
		return nil
	})
	require.NoError(t, err)
}

func TestToggleFreeze(t *testing.T) {
	g := NewGuard()

	assert.False(t, g.Frozen())
	assert.True(t, g.ToggleFreeze())
	assert.True(t, g.Frozen())
	assert.False(t, g.ToggleFreeze())
	assert.False(t, g.Frozen())
}

func TestFreeze_IndependentOfSessionLock(t *testing.T) {
	g := NewGuard()
	g.Install(&spotify.Session{})

	// Toggle the freeze while a session read is in flight.
	inSession := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = g.WithSession(func(*spotify.Session) error {
			close(inSession)
			<-release
			return nil
		})
	}()

	<-inSession
	assert.True(t, g.ToggleFreeze())
	close(release)
	<-done
}

func TestGuard_ConcurrentReaders(t *testing.T) {
	g := NewGuard()
	g.Install(&spotify.Session{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := g.WithSession(func(*spotify.Session) error { return nil })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
