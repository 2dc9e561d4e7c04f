package resolve

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/hxnx/jukebot/internal/spotify"
)

const (
	// MaxCandidates bounds the disambiguation prompt.
	MaxCandidates = 3
	// ChoiceTimeout bounds the wait for the requester's pick.
	ChoiceTimeout = 120 * time.Second
)

var (
	ErrNoResults     = errors.New("no results were found")
	ErrCancelled     = errors.New("cancelled interaction")
	ErrNoInteraction = errors.New("no interaction")
	ErrMalformedLink = errors.New("malformed track link")
)

// IsTrackLink reports whether the input should be treated as a direct
// track link rather than a search phrase.
func IsTrackLink(input string) bool {
	input = strings.TrimSpace(input)
	return strings.HasPrefix(input, "https") &&
		strings.Contains(input, "spotify") &&
		strings.Contains(input, "track")
}

// ParseTrackLink extracts the track id from a direct link: the path
// segment after "track", stripped of any query delimiter. No remote
// call is made.
func ParseTrackLink(input string) (spotifyapi.ID, error) {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedLink, err)
	}
	if u.Scheme != "https" || !strings.Contains(strings.ToLower(u.Host), "spotify.com") {
		return "", fmt.Errorf("%w: not a spotify track url", ErrMalformedLink)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part != "track" || i+1 >= len(parts) {
			continue
		}
		id := parts[i+1]
		if idx := strings.Index(id, "?"); idx != -1 {
			id = id[:idx]
		}
		if id == "" {
			break
		}
		return spotifyapi.ID(id), nil
	}

	return "", fmt.Errorf("%w: no track id in url", ErrMalformedLink)
}

// Dedupe drops items whose rendered title was already seen, preserving
// first-seen order.
func Dedupe(items []spotify.StandardItem) []spotify.StandardItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]spotify.StandardItem, 0, len(items))
	for _, item := range items {
		title := item.Title()
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Choice is one terminal outcome of a disambiguation prompt.
type Choice struct {
	Index     int
	Cancelled bool
}

// Prompter presents candidates to the requester and awaits a single
// identity-filtered response within a bounded window. Await returns an
// error when the window expires with no response.
type Prompter interface {
	Present(candidates []spotify.StandardItem) error
	Await(timeout time.Duration) (Choice, error)
}

// ChooseTrack runs the single-shot disambiguation: dedupe, cap at
// MaxCandidates, present, await one choice. Exactly one of a resolved
// track id, ErrCancelled, or ErrNoInteraction comes out; there are no
// retries.
func ChooseTrack(items []spotify.StandardItem, p Prompter) (spotifyapi.ID, error) {
	candidates := Dedupe(items)
	if len(candidates) == 0 {
		return "", ErrNoResults
	}
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	if err := p.Present(candidates); err != nil {
		return "", err
	}

	choice, err := p.Await(ChoiceTimeout)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoInteraction, err)
	}
	if choice.Cancelled {
		return "", ErrCancelled
	}
	if choice.Index < 0 || choice.Index >= len(candidates) {
		return "", fmt.Errorf("choice index %d out of range", choice.Index)
	}

	return candidates[choice.Index].TrackID()
}
