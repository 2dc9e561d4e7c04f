package spotify

import (
	"context"
	"fmt"

	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

// Scopes requested for the shared account. Playback control needs
// user-modify-playback-state; the rest cover the read paths.
var Scopes = []string{
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserReadCurrentlyPlaying,
	spotifyauth.ScopeUserModifyPlaybackState,
	spotifyauth.ScopeUserReadRecentlyPlayed,
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Authenticator wraps the Spotify OAuth authorization-code handshake.
// It is safe for concurrent use; all mutable state lives in the Session
// it produces.
type Authenticator struct {
	auth *spotifyauth.Authenticator
}

func NewAuthenticator(cfg Config) *Authenticator {
	return &Authenticator{
		auth: spotifyauth.New(
			spotifyauth.WithRedirectURL(cfg.RedirectURI),
			spotifyauth.WithClientID(cfg.ClientID),
			spotifyauth.WithClientSecret(cfg.ClientSecret),
			spotifyauth.WithScopes(Scopes...),
		),
	}
}

// AuthURL derives the authorization URL for a fresh handshake. Pure
// function of the configured client id, redirect and scopes.
func (a *Authenticator) AuthURL(state string) string {
	return a.auth.AuthURL(state)
}

// Exchange trades an authorization code for an authenticated Session.
// On failure no Session is produced and any previously installed one is
// unaffected.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*Session, error) {
	token, err := a.auth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange rejected: %w", err)
	}
	return a.sessionFromToken(ctx, token), nil
}

// sessionFromToken builds a Session around the token. The oauth2
// client refreshes it transparently for the session's lifetime.
func (a *Authenticator) sessionFromToken(ctx context.Context, token *oauth2.Token) *Session {
	return &Session{
		client: spotifyapi.New(a.auth.Client(ctx, token)),
		scopes: Scopes,
	}
}

// Session is an authenticated connection to the linked Spotify account.
// Token material is owned by the underlying HTTP client and never
// inspected here. Sessions live in memory for the process lifetime.
type Session struct {
	client *spotifyapi.Client
	scopes []string
}

func (s *Session) Client() *spotifyapi.Client {
	return s.client
}

func (s *Session) Scopes() []string {
	return s.scopes
}
