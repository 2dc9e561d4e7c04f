package modals

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func componentClick(customID, userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: customID},
			User: &discordgo.User{ID: userID},
		},
	}
}

func slashInvocation(userID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			User: &discordgo.User{ID: userID},
		},
	}
}

func TestAwaitComponent_DeliversMatchingClick(t *testing.T) {
	a := NewAwaiter()

	type result struct {
		resp *ComponentResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := a.AwaitComponent(slashInvocation("u1"), "pick_0", time.Second)
		done <- result{resp, err}
	}()

	// Wait for the pending key to register.
	require.Eventually(t, func() bool {
		return a.HandleInteraction(componentClick("pick_0", "u1"))
	}, time.Second, 5*time.Millisecond)

	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, "pick_0", r.resp.Data.CustomID)
}

func TestAwaitComponent_IgnoresOtherUsers(t *testing.T) {
	a := NewAwaiter()

	go func() {
		_, _ = a.AwaitComponent(slashInvocation("u1"), "pick_0", 200*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return len(a.pending) == 1
	}, time.Second, 5*time.Millisecond)

	assert.False(t, a.HandleInteraction(componentClick("pick_0", "someone_else")))
}

func TestAwaitAnyComponent_AnyKeyDelivers(t *testing.T) {
	a := NewAwaiter()

	ids := []string{"pick_0", "pick_1", "pick_cancel"}

	type result struct {
		resp *ComponentResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := a.AwaitAnyComponent(slashInvocation("u1"), ids, time.Second)
		done <- result{resp, err}
	}()

	require.Eventually(t, func() bool {
		return a.HandleInteraction(componentClick("pick_cancel", "u1"))
	}, time.Second, 5*time.Millisecond)

	r := <-done
	require.NoError(t, r.err)
	assert.Equal(t, "pick_cancel", r.resp.Data.CustomID)

	// All keys unregistered once the first click lands.
	require.Eventually(t, func() bool {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return len(a.pending) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestAwaitAnyComponent_Timeout(t *testing.T) {
	a := NewAwaiter()

	_, err := a.AwaitAnyComponent(slashInvocation("u1"), []string{"pick_0"}, 20*time.Millisecond)
	require.ErrorIs(t, err, ErrTimeout)

	a.mu.RLock()
	defer a.mu.RUnlock()
	assert.Empty(t, a.pending)
}

func TestAwaitAnyComponent_NoIDs(t *testing.T) {
	a := NewAwaiter()

	_, err := a.AwaitAnyComponent(slashInvocation("u1"), nil, time.Second)
	assert.Error(t, err)
}

func TestHandleInteraction_NothingPending(t *testing.T) {
	a := NewAwaiter()

	assert.False(t, a.HandleInteraction(componentClick("pick_0", "u1")))
}

func TestGetModalInputValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "auth_code_modal",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: "auth_code_input", Value: "the-code"},
				},
			},
		},
	}

	assert.Equal(t, "the-code", GetModalInputValue(data, "auth_code_input"))
	assert.Empty(t, GetModalInputValue(data, "missing"))
}

func TestGetModalInputValue_PointerComponents(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "auth_code_input", Value: "the-code"},
				},
			},
		},
	}

	assert.Equal(t, "the-code", GetModalInputValue(data, "auth_code_input"))
}
