package access

import (
	"context"
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/hxnx/jukebot/internal/app"
	"github.com/hxnx/jukebot/internal/database"
	"github.com/hxnx/jukebot/internal/features/shared"
)

const (
	adminOnlyMessage   = "You don't have permission to run this command"
	storeFailedMessage = "Something went wrong. Try again in a moment."
	noDatabaseMessage  = "No database configured; user management is unavailable."
)

// permissionStore is the slice of the repository the user commands
// need; tests drive the notice logic with a fake.
type permissionStore interface {
	Add(ctx context.Context, userID int64, level int16) error
	Remove(ctx context.Context, userID int64) error
	Exists(ctx context.Context, userID int64) (bool, error)
}

// addUser decides the notice for an add: duplicates are rejected, not
// updated, and a write that cannot be stored surfaces as an error.
func addUser(ctx context.Context, store permissionStore, userID int64, level int16) (string, error) {
	if level <= 0 {
		level = database.DefaultPermissionLevel
	}

	exists, err := store.Exists(ctx, userID)
	if err != nil {
		return "", err
	}
	if exists {
		return "User already added", nil
	}

	if err := store.Add(ctx, userID, level); err != nil {
		return "", err
	}

	log.Printf("added user %d at level %d", userID, level)
	return "Successfully added user", nil
}

func removeUser(ctx context.Context, store permissionStore, userID int64) (string, error) {
	exists, err := store.Exists(ctx, userID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "User isn't in database", nil
	}

	if err := store.Remove(ctx, userID); err != nil {
		return "", err
	}

	log.Printf("removed user %d", userID)
	return "Successfully removed user", nil
}

func storeErrorMessage(err error) string {
	if errors.Is(err, database.ErrNoDatabase) {
		return noDatabaseMessage
	}
	return storeFailedMessage
}

// AddUser grants a member access to playback commands. Administrators
// only.
func AddUser(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !a.IsAdmin(shared.GetInteractionUserID(i)) {
		shared.RespondEphemeral(s, i, adminOnlyMessage)
		return
	}

	options := i.ApplicationCommandData().Options
	target := shared.GetOptionUser(s, options, "user")
	if target == nil {
		shared.RespondEphemeral(s, i, "No user given")
		return
	}

	targetID, err := shared.ParseUserID(target.ID)
	if err != nil {
		shared.RespondEphemeral(s, i, "No user given")
		return
	}

	level := int16(shared.GetOptionInt64(options, "level"))

	notice, err := addUser(context.Background(), a.Users, targetID, level)
	if err != nil {
		log.Printf("user add failed: %v", err)
		shared.RespondEphemeral(s, i, storeErrorMessage(err))
		return
	}
	shared.RespondEphemeral(s, i, notice)
}

// RemoveUser revokes a member's access. Administrators only.
func RemoveUser(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !a.IsAdmin(shared.GetInteractionUserID(i)) {
		shared.RespondEphemeral(s, i, adminOnlyMessage)
		return
	}

	options := i.ApplicationCommandData().Options
	target := shared.GetOptionUser(s, options, "user")
	if target == nil {
		shared.RespondEphemeral(s, i, "No user given")
		return
	}

	targetID, err := shared.ParseUserID(target.ID)
	if err != nil {
		shared.RespondEphemeral(s, i, "No user given")
		return
	}

	notice, err := removeUser(context.Background(), a.Users, targetID)
	if err != nil {
		log.Printf("user remove failed: %v", err)
		shared.RespondEphemeral(s, i, storeErrorMessage(err))
		return
	}
	shared.RespondEphemeral(s, i, notice)
}
