package modals

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ErrTimeout marks a wait that expired with no response, as opposed to
// a failure delivering the prompt.
var ErrTimeout = errors.New("timed out waiting for a response")

type ModalResponse struct {
	Interaction *discordgo.InteractionCreate
	Data        discordgo.ModalSubmitInteractionData
}

type ComponentResponse struct {
	Interaction *discordgo.InteractionCreate
	Data        discordgo.MessageComponentInteractionData
}

// Awaiter routes modal submissions and component clicks back to the
// handler goroutine that is blocked waiting for them. Pending waits are
// keyed "customID:userID" so only the requesting user's response is
// delivered; everyone else's clicks fall through to normal dispatch.
type Awaiter struct {
	pending map[string]chan *discordgo.InteractionCreate
	mu      sync.RWMutex
}

func NewAwaiter() *Awaiter {
	return &Awaiter{
		pending: make(map[string]chan *discordgo.InteractionCreate),
	}
}

func (a *Awaiter) ShowAndAwaitModal(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	modal *discordgo.InteractionResponseData,
	timeout time.Duration,
) (*ModalResponse, error) {
	userID := getUserID(i)
	if userID == "" {
		return nil, fmt.Errorf("missing user id for interaction")
	}

	key := modal.CustomID + ":" + userID
	ch := make(chan *discordgo.InteractionCreate, 1)

	a.mu.Lock()
	a.pending[key] = ch
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		delete(a.pending, key)
		a.mu.Unlock()
	}()

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: modal,
	})
	if err != nil {
		return nil, err
	}

	select {
	case submission := <-ch:
		if submission.Type != discordgo.InteractionModalSubmit {
			return nil, fmt.Errorf("unexpected interaction type: %v", submission.Type)
		}
		return &ModalResponse{
			Interaction: submission,
			Data:        submission.ModalSubmitData(),
		}, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("modal: %w", ErrTimeout)
	}
}

func (a *Awaiter) AwaitComponent(
	i *discordgo.InteractionCreate,
	customID string,
	timeout time.Duration,
) (*ComponentResponse, error) {
	return a.AwaitAnyComponent(i, []string{customID}, timeout)
}

// AwaitAnyComponent waits for the interaction's user to click any one
// of the given components. All keys feed a single channel; the first
// click wins and the rest are unregistered.
func (a *Awaiter) AwaitAnyComponent(
	i *discordgo.InteractionCreate,
	customIDs []string,
	timeout time.Duration,
) (*ComponentResponse, error) {
	userID := getUserID(i)
	if userID == "" {
		return nil, fmt.Errorf("missing user id for interaction")
	}
	if len(customIDs) == 0 {
		return nil, fmt.Errorf("no component ids to await")
	}

	ch := make(chan *discordgo.InteractionCreate, 1)
	keys := make([]string, 0, len(customIDs))
	for _, id := range customIDs {
		keys = append(keys, id+":"+userID)
	}

	a.mu.Lock()
	for _, key := range keys {
		a.pending[key] = ch
	}
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		for _, key := range keys {
			delete(a.pending, key)
		}
		a.mu.Unlock()
	}()

	select {
	case interaction := <-ch:
		if interaction.Type != discordgo.InteractionMessageComponent {
			return nil, fmt.Errorf("unexpected interaction type: %v", interaction.Type)
		}
		return &ComponentResponse{
			Interaction: interaction,
			Data:        interaction.MessageComponentData(),
		}, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("component: %w", ErrTimeout)
	}
}

// HandleInteraction delivers a modal submit or component click to a
// pending wait. Returns false when nothing is waiting for it so the
// caller can fall through to regular dispatch.
func (a *Awaiter) HandleInteraction(i *discordgo.InteractionCreate) bool {
	customID, ok := extractCustomID(i)
	if !ok || customID == "" {
		return false
	}

	userID := getUserID(i)
	if userID == "" {
		return false
	}

	key := customID + ":" + userID

	a.mu.RLock()
	ch, exists := a.pending[key]
	a.mu.RUnlock()

	if !exists {
		return false
	}

	select {
	case ch <- i:
		return true
	default:
		return false
	}
}

func extractCustomID(i *discordgo.InteractionCreate) (string, bool) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		return data.CustomID, true
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		return data.CustomID, true
	default:
		return "", false
	}
}

func getUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// GetModalInputValue pulls a text input value out of a modal submit
// payload. The gateway delivers rows and inputs as values or pointers
// depending on the path, so both shapes are handled.
func GetModalInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, component := range data.Components {
		var row discordgo.ActionsRow
		switch r := component.(type) {
		case discordgo.ActionsRow:
			row = r
		case *discordgo.ActionsRow:
			row = *r
		default:
			continue
		}
		for _, inner := range row.Components {
			switch input := inner.(type) {
			case discordgo.TextInput:
				if input.CustomID == customID {
					return input.Value
				}
			case *discordgo.TextInput:
				if input.CustomID == customID {
					return input.Value
				}
			}
		}
	}
	return ""
}
