package playback

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hxnx/jukebot/internal/app"
	"github.com/hxnx/jukebot/internal/features/shared"
	"github.com/hxnx/jukebot/internal/session"
	"github.com/hxnx/jukebot/internal/spotify"
)

// The player needs a beat to settle on the new item before the state
// read reflects the skip.
const skipSettleDelay = 500 * time.Millisecond

// Next skips the linked account forward one track and shows the result.
func Next(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	skip(a, s, i, func(ctx context.Context, sess *spotify.Session) error {
		return sess.Client().Next(ctx)
	})
}

// Previous moves the linked account back one track and shows the result.
func Previous(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	skip(a, s, i, func(ctx context.Context, sess *spotify.Session) error {
		return sess.Client().Previous(ctx)
	})
}

func skip(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate, op func(context.Context, *spotify.Session) error) {
	ctx := context.Background()

	decision, err := a.AllowPlayback(ctx, shared.GetInteractionUserID(i), 1)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			shared.RespondEphemeral(s, i, notAuthenticatedMessage)
			return
		}
		log.Printf("skip gate failed: %v", err)
		shared.RespondEphemeral(s, i, "Couldn't reach Spotify. Try again in a moment.")
		return
	}
	if !decision.Allowed {
		shared.RespondEphemeral(s, i, decision.Reason.Message())
		return
	}

	if err := shared.Defer(s, i); err != nil {
		log.Printf("skip defer failed: %v", err)
		return
	}

	err = a.Guard.WithSession(func(sess *spotify.Session) error {
		return op(ctx, sess)
	})
	if err != nil {
		log.Printf("skip failed: %v", err)
		shared.FollowupEphemeral(s, i, "Couldn't change the track. Try again in a moment.")
		return
	}

	time.Sleep(skipSettleDelay)
	showCurrent(a, s, i)
}
