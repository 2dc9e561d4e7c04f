package playback

import (
	"context"
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"
	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/hxnx/jukebot/internal/app"
	"github.com/hxnx/jukebot/internal/features/shared"
	"github.com/hxnx/jukebot/internal/session"
	"github.com/hxnx/jukebot/internal/spotify"
)

const queueDisplayLimit = 5

const notAuthenticatedMessage = "The application isn't authenticated.\nRun /authenticate to connect."

// Current shows what the linked account is playing right now.
func Current(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := shared.Defer(s, i); err != nil {
		log.Printf("current defer failed: %v", err)
		return
	}
	showCurrent(a, s, i)
}

// showCurrent fetches the player state and renders the now-playing
// embed. Shared by current, next and previous; the skip commands call
// it after the remote skip lands.
func showCurrent(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var state *spotifyapi.PlayerState
	err := a.Guard.WithSession(func(sess *spotify.Session) error {
		var err error
		state, err = sess.Client().PlayerState(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			shared.FollowupEphemeral(s, i, notAuthenticatedMessage)
			return
		}
		log.Printf("player state lookup failed: %v", err)
		shared.FollowupEphemeral(s, i, "Couldn't reach Spotify. Try again in a moment.")
		return
	}

	if state == nil || state.Item == nil {
		shared.FollowupEmbed(s, i, nothingPlayingEmbed())
		return
	}

	shared.FollowupEmbed(s, i, nowPlayingEmbed(spotify.FromPlayable(state.Item), state))
}
