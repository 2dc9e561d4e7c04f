package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hxnx/jukebot/internal/app"
	"github.com/hxnx/jukebot/internal/authflow"
	"github.com/hxnx/jukebot/internal/features/modals"
	"github.com/hxnx/jukebot/internal/features/shared"
)

const (
	authTriggerID   = "auth_code_trigger"
	authCodeModalID = "auth_code_modal"
	authCodeInputID = "auth_code_input"
)

// Authenticate links the shared Spotify account. Administrators only:
// the admin opens the authorization URL, approves access, then clicks
// Authenticate and pastes the code from the redirect back into a modal.
func Authenticate(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !a.IsAdmin(shared.GetInteractionUserID(i)) {
		shared.RespondEphemeral(s, i, "You don't have permission to run this command")
		return
	}

	state, err := randomState()
	if err != nil {
		log.Printf("state generation failed: %v", err)
		shared.RespondEphemeral(s, i, "Something went wrong. Try again in a moment.")
		return
	}

	ui := &discordUI{
		awaiter:     a.Awaiter,
		session:     s,
		interaction: i,
	}

	flow := &authflow.Flow{
		AuthURL:  a.Auth.AuthURL(state),
		Exchange: a.Auth.Exchange,
		Install:  a.Guard.Install,
		UI:       ui,
	}

	outcome, err := flow.Run(context.Background())
	switch {
	case errors.Is(err, authflow.ErrNoInput):
		ui.report("No input provided")
	case errors.Is(err, authflow.ErrInvalidCode):
		ui.report("That code doesn't look right. Paste the full code from the redirect URL.")
	case err != nil:
		log.Printf("authentication failed: %v", err)
		ui.report("Failed to authenticate. Check the code and try again.")
	case outcome == authflow.StateAuthenticated:
		log.Printf("spotify session installed by %s", shared.GetInteractionUserID(i))
		ui.report("Successfully authenticated!")
	}
	// A timed-out trigger ends the flow silently.
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// discordUI drives the flow over the admin's ephemeral interaction:
// link embed with an Authenticate button, then a modal for the code.
type discordUI struct {
	awaiter     *modals.Awaiter
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate

	// Set once the modal is submitted; outcome messages follow up on it.
	modalSubmit *discordgo.InteractionCreate
}

func (u *discordUI) PresentLink(url string) error {
	embed := &discordgo.MessageEmbed{
		Title: "Authenticating",
		Color: shared.AccentColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "1. Approve access",
				Value: "Open the URL and approve access for the account the bot should control.",
			},
			{
				Name:  "2. Paste the code",
				Value: "After the redirect, click Authenticate and paste the `code` parameter from the address bar.",
			},
		},
	}

	return u.session.InteractionRespond(u.interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							Label: "Open URL",
							Style: discordgo.LinkButton,
							URL:   url,
						},
						discordgo.Button{
							Label:    "Authenticate",
							Style:    discordgo.SuccessButton,
							CustomID: authTriggerID,
						},
					},
				},
			},
		},
	})
}

func (u *discordUI) AwaitTrigger(timeout time.Duration) error {
	resp, err := u.awaiter.AwaitComponent(u.interaction, authTriggerID, timeout)
	if err != nil {
		return err
	}
	// The modal in PromptCode is the response to this click.
	u.interaction = resp.Interaction
	return nil
}

func (u *discordUI) PromptCode(timeout time.Duration) (string, error) {
	modal := &discordgo.InteractionResponseData{
		CustomID: authCodeModalID,
		Title:    "Authenticate",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:  authCodeInputID,
						Label:     "Paste the code you received here",
						Style:     discordgo.TextInputParagraph,
						Required:  true,
						MinLength: authflow.MinCodeLength,
						MaxLength: authflow.MaxCodeLength,
					},
				},
			},
		},
	}

	resp, err := u.awaiter.ShowAndAwaitModal(u.session, u.interaction, modal, timeout)
	if err != nil {
		if errors.Is(err, modals.ErrTimeout) {
			return "", authflow.ErrNoSubmission
		}
		return "", err
	}

	u.modalSubmit = resp.Interaction
	if err := shared.DeferEphemeral(u.session, resp.Interaction); err != nil {
		log.Printf("modal defer failed: %v", err)
	}

	return modals.GetModalInputValue(resp.Data, authCodeInputID), nil
}

// report delivers the outcome: on the modal submit when one happened,
// otherwise as a follow-up to the original command.
func (u *discordUI) report(content string) {
	if u.modalSubmit != nil {
		shared.EditResponse(u.session, u.modalSubmit, content)
		return
	}
	shared.FollowupEphemeral(u.session, u.interaction, content)
}
