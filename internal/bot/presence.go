package bot

import (
	"context"
	"log"
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/hxnx/jukebot/internal/spotify"
)

const presenceUpdateInterval = 60 * time.Second

func (b *Bot) startPresenceUpdater() {
	if b.presenceStop != nil {
		return
	}
	b.presenceStop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(presenceUpdateInterval)
		defer ticker.Stop()

		b.updatePresence()
		for {
			select {
			case <-b.presenceStop:
				return
			case <-ticker.C:
				b.updatePresence()
			}
		}
	}()
}

func (b *Bot) stopPresenceUpdater() {
	if b.presenceStop == nil {
		return
	}
	close(b.presenceStop)
	b.presenceStop = nil
}

// updatePresence mirrors the linked account's current track into the
// bot's status. No session or no playback clears it.
func (b *Bot) updatePresence() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status := ""
	err := b.app.Guard.WithSession(func(sess *spotify.Session) error {
		playing, err := sess.Client().PlayerCurrentlyPlaying(ctx)
		if err != nil {
			return err
		}
		if playing != nil && playing.Playing && playing.Item != nil {
			status = presenceTitle(playing.Item)
		}
		return nil
	})
	if err != nil {
		return
	}

	if err := b.session.UpdateGameStatus(0, status); err != nil {
		log.Printf("failed to update presence: %v", err)
	}
}

func presenceTitle(track *spotifyapi.FullTrack) string {
	item := spotify.FromPlayable(track)
	return item.Title()
}
