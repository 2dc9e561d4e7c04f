package playback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/hxnx/jukebot/internal/app"
	"github.com/hxnx/jukebot/internal/features/shared"
	"github.com/hxnx/jukebot/internal/resolve"
	"github.com/hxnx/jukebot/internal/session"
	"github.com/hxnx/jukebot/internal/spotify"
)

const (
	searchLimit = 5

	searchPickPrefix = "play_pick_"
	searchCancelID   = "play_pick_cancel"
)

// Play queues a song on the linked account. A direct track link is
// queued as-is; anything else is searched and the requester picks from
// up to three candidates.
func Play(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := shared.GetInteractionUserID(i)

	if err := shared.DeferEphemeral(s, i); err != nil {
		log.Printf("play defer failed: %v", err)
		return
	}

	decision, err := a.AllowPlayback(ctx, userID, 1)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			shared.EditResponse(s, i, notAuthenticatedMessage)
			return
		}
		log.Printf("play gate failed: %v", err)
		shared.EditResponse(s, i, "Couldn't reach Spotify. Try again in a moment.")
		return
	}
	if !decision.Allowed {
		shared.EditResponse(s, i, decision.Reason.Message())
		return
	}

	input := strings.TrimSpace(shared.GetOptionString(i.ApplicationCommandData().Options, "input"))
	if input == "" {
		shared.EditResponse(s, i, "Give me a song name or a Spotify track link.")
		return
	}

	var trackID spotifyapi.ID
	if resolve.IsTrackLink(input) {
		trackID, err = resolve.ParseTrackLink(input)
		if err != nil {
			shared.EditResponse(s, i, "That doesn't look like a Spotify track link.")
			return
		}
	} else {
		trackID, err = searchAndChoose(ctx, a, s, i, input)
		if err != nil {
			switch {
			case errors.Is(err, resolve.ErrNoResults):
				shared.EditResponse(s, i, "No results were found.")
			case errors.Is(err, resolve.ErrCancelled):
				shared.EditResponse(s, i, "Cancelled.")
			case errors.Is(err, resolve.ErrNoInteraction):
				shared.EditResponse(s, i, "Selection timed out.")
			case errors.Is(err, spotify.ErrNotEnqueueable):
				shared.EditResponse(s, i, "That result is a podcast episode and can't be queued.")
			default:
				log.Printf("play search failed: %v", err)
				shared.EditResponse(s, i, "Search failed. Try again in a moment.")
			}
			return
		}
	}

	err = a.Guard.WithSession(func(sess *spotify.Session) error {
		return sess.Client().QueueSong(ctx, trackID)
	})
	if err != nil {
		log.Printf("queue song failed: %v", err)
		shared.EditResponse(s, i, "Couldn't add the song to the queue.")
		return
	}

	item, ok := a.Cache.Get(ctx, trackID)
	if !ok {
		err = a.Guard.WithSession(func(sess *spotify.Session) error {
			track, err := sess.Client().GetTrack(ctx, trackID)
			if err != nil {
				return err
			}
			item = spotify.FromPlayable(track)
			return nil
		})
		if err != nil {
			// Queued fine, just no metadata for the announcement.
			log.Printf("track lookup failed: %v", err)
			shared.EditResponse(s, i, "Added the song to the queue.")
			return
		}
		a.Cache.Put(ctx, item)
	}

	shared.EditResponse(s, i, fmt.Sprintf("Added **%s** to the queue.", item.Title()))
	shared.FollowupEmbed(s, i, addedEmbed(item, displayName(i)))
	log.Printf("%s added %s to the queue", userID, item.Title())
}

func searchAndChoose(ctx context.Context, a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate, query string) (spotifyapi.ID, error) {
	var results *spotifyapi.SearchResult
	err := a.Guard.WithSession(func(sess *spotify.Session) error {
		var err error
		results, err = sess.Client().Search(ctx, query, spotifyapi.SearchTypeTrack, spotifyapi.Limit(searchLimit))
		return err
	})
	if err != nil {
		return "", err
	}
	if results == nil || results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		return "", resolve.ErrNoResults
	}

	items := make([]spotify.StandardItem, 0, len(results.Tracks.Tracks))
	for n := range results.Tracks.Tracks {
		items = append(items, spotify.FromPlayable(&results.Tracks.Tracks[n]))
	}

	return resolve.ChooseTrack(items, &searchPrompter{
		app:         a,
		session:     s,
		interaction: i,
	})
}

// searchPrompter renders the candidate buttons on the deferred response
// and waits for the requester's click. Present runs outside any session
// lock; the wait never blocks a remote call.
type searchPrompter struct {
	app         *app.App
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate

	pickIDs []string
}

func (p *searchPrompter) Present(candidates []spotify.StandardItem) error {
	var sb strings.Builder
	sb.WriteString("Which one?\n")
	for n, item := range candidates {
		fmt.Fprintf(&sb, "%d. %s `%s`\n", n+1, item.Title(), spotify.FormatDuration(item.Duration))
	}

	p.pickIDs = p.pickIDs[:0]
	buttons := make([]discordgo.MessageComponent, 0, len(candidates)+1)
	for n := range candidates {
		style := discordgo.SecondaryButton
		if n == 0 {
			style = discordgo.PrimaryButton
		}
		customID := searchPickPrefix + strconv.Itoa(n)
		p.pickIDs = append(p.pickIDs, customID)
		buttons = append(buttons, discordgo.Button{
			Label:    strconv.Itoa(n + 1),
			Style:    style,
			CustomID: customID,
		})
	}
	buttons = append(buttons, discordgo.Button{
		Label:    "Cancel",
		Style:    discordgo.DangerButton,
		CustomID: searchCancelID,
	})

	content := sb.String()
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}

	_, err := p.session.InteractionResponseEdit(p.interaction.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	})
	return err
}

func (p *searchPrompter) Await(timeout time.Duration) (resolve.Choice, error) {
	ids := append(append([]string{}, p.pickIDs...), searchCancelID)

	resp, err := p.app.Awaiter.AwaitAnyComponent(p.interaction, ids, timeout)
	if err != nil {
		return resolve.Choice{}, err
	}

	// Acknowledge the click; the deferred response carries the outcome.
	ackErr := p.session.InteractionRespond(resp.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if ackErr != nil {
		log.Printf("pick ack failed: %v", ackErr)
	}

	if resp.Data.CustomID == searchCancelID {
		return resolve.Choice{Cancelled: true}, nil
	}

	index, err := strconv.Atoi(strings.TrimPrefix(resp.Data.CustomID, searchPickPrefix))
	if err != nil {
		return resolve.Choice{}, fmt.Errorf("unexpected component id %q", resp.Data.CustomID)
	}
	return resolve.Choice{Index: index}, nil
}

func displayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return "unknown"
}
