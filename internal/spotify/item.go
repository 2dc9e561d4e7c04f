package spotify

import (
	"errors"
	"fmt"
	"strings"
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"
)

var ErrNotEnqueueable = errors.New("item is not an enqueueable track")

type ItemKind string

const (
	KindTrack   ItemKind = "track"
	KindEpisode ItemKind = "episode"
)

// StandardItem is the normalized projection of a playable item that all
// display and selection logic works with. Episodes carry the show name
// in Artists and cannot be queued.
type StandardItem struct {
	Name     string        `json:"name"`
	Artists  []string      `json:"artists"`
	Duration time.Duration `json:"duration"`
	ImageURL string        `json:"image_url"`
	URL      string        `json:"url"`
	ID       spotifyapi.ID `json:"id"`
	Kind     ItemKind      `json:"kind"`
}

// FromPlayable normalizes a playable item from the remote API. The API
// reports podcast episodes through the same shape with type "episode";
// everything else is a track.
func FromPlayable(t *spotifyapi.FullTrack) StandardItem {
	kind := KindTrack
	if t.Type == string(KindEpisode) {
		kind = KindEpisode
	}

	artists := make([]string, 0, len(t.Artists))
	for _, artist := range t.Artists {
		if artist.Name != "" {
			artists = append(artists, artist.Name)
		}
	}

	image := ""
	if len(t.Album.Images) > 0 {
		image = t.Album.Images[0].URL
	}

	return StandardItem{
		Name:     t.Name,
		Artists:  artists,
		Duration: time.Duration(t.Duration) * time.Millisecond,
		ImageURL: image,
		URL:      t.ExternalURLs["spotify"],
		ID:       t.ID,
		Kind:     kind,
	}
}

// Title renders "Name — Artist1, Artist2" for display and deduplication.
func (it StandardItem) Title() string {
	if len(it.Artists) == 0 {
		return it.Name
	}
	return it.Name + " — " + strings.Join(it.Artists, ", ")
}

// TrackID projects the item to a queueable track id. Episodes fail the
// projection rather than panicking.
func (it StandardItem) TrackID() (spotifyapi.ID, error) {
	if it.Kind != KindTrack {
		return "", ErrNotEnqueueable
	}
	if it.ID == "" {
		return "", ErrNotEnqueueable
	}
	return it.ID, nil
}

// FormatDuration renders a duration as mm:ss for embeds.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
