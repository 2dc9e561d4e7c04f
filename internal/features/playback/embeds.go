package playback

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/hxnx/jukebot/internal/features/shared"
	"github.com/hxnx/jukebot/internal/spotify"
)

const spotifyLogoURL = "https://storage.googleapis.com/pr-newsroom-wp/1/2023/05/Spotify_Primary_Logo_RGB_Green.png"

func nowPlayingEmbed(item spotify.StandardItem, state *spotifyapi.PlayerState) *discordgo.MessageEmbed {
	progress := time.Duration(state.Progress) * time.Millisecond

	shuffle := "Off"
	if state.ShuffleState {
		shuffle = "On"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Now Playing",
		Description: fmt.Sprintf("[%s](%s)", item.Title(), item.URL),
		Color:       shared.AccentColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: item.ImageURL,
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Time",
				Value:  spotify.FormatDuration(progress) + " / " + spotify.FormatDuration(item.Duration),
				Inline: true,
			},
			{
				Name:   "Shuffle",
				Value:  shuffle,
				Inline: true,
			},
			{
				Name:   "Repeat",
				Value:  repeatLabel(state.RepeatState),
				Inline: true,
			},
		},
	}

	if state.Device.Name != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    "Playing on " + state.Device.Name,
			IconURL: spotifyLogoURL,
		}
	}
	return embed
}

// repeatLabel maps the API's repeat states (off, track, context) to
// display form.
func repeatLabel(state string) string {
	switch state {
	case "track":
		return "Track"
	case "context":
		return "Context"
	default:
		return "Off"
	}
}

func nothingPlayingEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Nothing Playing",
		Description: "The linked account has no active playback.",
		Color:       shared.AccentColorError,
	}
}

func queueEmbed(current spotify.StandardItem, items []spotify.StandardItem) *discordgo.MessageEmbed {
	if len(items) > queueDisplayLimit {
		items = items[:queueDisplayLimit]
	}

	var sb strings.Builder
	sb.WriteString("The next five songs that are in the queue.\n\n")
	if current.Name != "" {
		fmt.Fprintf(&sb, "**Now:** [%s](%s)\n\n", current.Title(), current.URL)
	}
	for n, item := range items {
		fmt.Fprintf(&sb, "%d. [%s](%s) `%s`\n", n+1, item.Title(), item.URL, spotify.FormatDuration(item.Duration))
	}

	return &discordgo.MessageEmbed{
		Title:       "Current Queue",
		Description: sb.String(),
		Color:       shared.AccentColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    "Spotify",
			IconURL: spotifyLogoURL,
		},
	}
}

func addedEmbed(item spotify.StandardItem, requestedBy string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Added Song To Queue",
		Description: fmt.Sprintf("[%s](%s)", item.Title(), item.URL),
		Color:       shared.AccentColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: item.ImageURL,
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Length",
				Value:  spotify.FormatDuration(item.Duration),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Requested by " + requestedBy,
		},
	}
}
