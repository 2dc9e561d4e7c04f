package spotify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	spotifyapi "github.com/zmb3/spotify/v2"
)

func fullTrack() *spotifyapi.FullTrack {
	return &spotifyapi.FullTrack{
		SimpleTrack: spotifyapi.SimpleTrack{
			ID:   "4uLU6hMCjMI75M1A2tKUQC",
			Name: "Never Gonna Give You Up",
			Type: "track",
			Artists: []spotifyapi.SimpleArtist{
				{Name: "Rick Astley"},
			},
			Duration: 213573,
			ExternalURLs: map[string]string{
				"spotify": "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			},
		},
	}
}

func TestFromPlayable_Track(t *testing.T) {
	item := FromPlayable(fullTrack())

	assert.Equal(t, KindTrack, item.Kind)
	assert.Equal(t, "Never Gonna Give You Up", item.Name)
	assert.Equal(t, []string{"Rick Astley"}, item.Artists)
	assert.Equal(t, 213573*time.Millisecond, item.Duration)
	assert.Equal(t, "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", item.URL)
}

func TestFromPlayable_Episode(t *testing.T) {
	track := fullTrack()
	track.Type = "episode"

	item := FromPlayable(track)
	assert.Equal(t, KindEpisode, item.Kind)
}

func TestTitle(t *testing.T) {
	item := StandardItem{Name: "Song", Artists: []string{"A", "B"}}
	assert.Equal(t, "Song — A, B", item.Title())

	bare := StandardItem{Name: "Song"}
	assert.Equal(t, "Song", bare.Title())
}

func TestTrackID(t *testing.T) {
	item := FromPlayable(fullTrack())
	id, err := item.TrackID()
	require.NoError(t, err)
	assert.Equal(t, spotifyapi.ID("4uLU6hMCjMI75M1A2tKUQC"), id)
}

func TestTrackID_EpisodeRejected(t *testing.T) {
	track := fullTrack()
	track.Type = "episode"

	_, err := FromPlayable(track).TrackID()
	assert.ErrorIs(t, err, ErrNotEnqueueable)
}

func TestTrackID_EmptyIDRejected(t *testing.T) {
	item := StandardItem{Kind: KindTrack}
	_, err := item.TrackID()
	assert.ErrorIs(t, err, ErrNotEnqueueable)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "03:33", FormatDuration(213573*time.Millisecond))
	assert.Equal(t, "00:00", FormatDuration(0))
	assert.Equal(t, "00:00", FormatDuration(-time.Second))
	assert.Equal(t, "61:05", FormatDuration(61*time.Minute+5*time.Second))
}
