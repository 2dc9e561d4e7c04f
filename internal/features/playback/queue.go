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

// Queue shows the next few songs queued on the linked account.
func Queue(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := shared.Defer(s, i); err != nil {
		log.Printf("queue defer failed: %v", err)
		return
	}

	ctx := context.Background()

	var queue *spotifyapi.Queue
	err := a.Guard.WithSession(func(sess *spotify.Session) error {
		var err error
		queue, err = sess.Client().GetQueue(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			shared.FollowupEphemeral(s, i, notAuthenticatedMessage)
			return
		}
		log.Printf("queue lookup failed: %v", err)
		shared.FollowupEphemeral(s, i, "Couldn't reach Spotify. Try again in a moment.")
		return
	}

	if queue == nil || len(queue.Items) == 0 {
		shared.FollowupEphemeral(s, i, "Nothings in the queue.")
		return
	}

	items := make([]spotify.StandardItem, 0, len(queue.Items))
	for n := range queue.Items {
		items = append(items, spotify.FromPlayable(&queue.Items[n]))
	}

	current := spotify.FromPlayable(&queue.CurrentlyPlaying)
	shared.FollowupEmbed(s, i, queueEmbed(current, items))
}
