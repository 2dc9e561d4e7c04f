package playback

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/hxnx/jukebot/internal/spotify"
)

func queuedItem(n int) spotify.StandardItem {
	return spotify.StandardItem{
		Name:     fmt.Sprintf("Song %d", n),
		Artists:  []string{"Artist"},
		Duration: 3 * time.Minute,
		URL:      fmt.Sprintf("https://open.spotify.com/track/id-%d", n),
		ID:       spotifyapi.ID(fmt.Sprintf("id-%d", n)),
		Kind:     spotify.KindTrack,
	}
}

// The queue embed truncates to five entries for display only; nothing
// limits how many items the remote queue may hold.
func TestQueueEmbed_DisplayCap(t *testing.T) {
	items := make([]spotify.StandardItem, 0, 20)
	for n := 0; n < 20; n++ {
		items = append(items, queuedItem(n))
	}

	embed := queueEmbed(queuedItem(99), items)
	require.NotNil(t, embed)

	assert.Contains(t, embed.Description, "5. [Song 4")
	assert.NotContains(t, embed.Description, "6. [Song 5")
	assert.Equal(t, queueDisplayLimit, strings.Count(embed.Description, ". ["))
}

func TestQueueEmbed_CurrentHeader(t *testing.T) {
	embed := queueEmbed(queuedItem(99), []spotify.StandardItem{queuedItem(0)})
	assert.Contains(t, embed.Description, "**Now:**")
	assert.Contains(t, embed.Description, "Song 99")
}

func TestAddedEmbed(t *testing.T) {
	embed := addedEmbed(queuedItem(1), "someone")
	assert.Equal(t, "Added Song To Queue", embed.Title)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Length", embed.Fields[0].Name)
	assert.Equal(t, "03:00", embed.Fields[0].Value)
	assert.Equal(t, "Requested by someone", embed.Footer.Text)
}

func TestRepeatLabel(t *testing.T) {
	assert.Equal(t, "Off", repeatLabel("off"))
	assert.Equal(t, "Track", repeatLabel("track"))
	assert.Equal(t, "Context", repeatLabel("context"))
	assert.Equal(t, "Off", repeatLabel(""))
}
