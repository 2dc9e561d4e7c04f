package features

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/hxnx/jukebot/internal/app"
	"github.com/hxnx/jukebot/internal/features/access"
	authcmd "github.com/hxnx/jukebot/internal/features/auth"
	"github.com/hxnx/jukebot/internal/features/playback"
)

var CommandList = []*discordgo.ApplicationCommand{
	{
		Name:        "current",
		Description: "Show the song that is currently playing",
	},
	{
		Name:        "queue",
		Description: "Show the next songs in the queue",
	},
	{
		Name:        "play",
		Description: "Add a song to the queue",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "input",
				Description: "Song name or Spotify track link",
				Required:    true,
				MaxLength:   512,
			},
		},
	},
	{
		Name:        "next",
		Description: "Skip to the next song",
	},
	{
		Name:        "previous",
		Description: "Go back to the previous song",
	},
	{
		Name:        "freeze",
		Description: "Toggle the freeze on playback changes (admin only)",
	},
	{
		Name:        "add_user",
		Description: "Allow a member to control playback (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Member to allow",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "level",
				Description: "Permission level (default: 1)",
				Required:    false,
			},
		},
	},
	{
		Name:        "remove_user",
		Description: "Revoke a member's playback access (admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Member to revoke",
				Required:    true,
			},
		},
	},
	{
		Name:        "authenticate",
		Description: "Link the shared Spotify account (admin only)",
	},
}

var commandHandlers = map[string]func(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate){
	"current":      playback.Current,
	"queue":        playback.Queue,
	"play":         playback.Play,
	"next":         playback.Next,
	"previous":     playback.Previous,
	"freeze":       access.Freeze,
	"add_user":     access.AddUser,
	"remove_user":  access.RemoveUser,
	"authenticate": authcmd.Authenticate,
}

func RegisterCommands(s *discordgo.Session, appID string, guildID string) ([]*discordgo.ApplicationCommand, error) {
	scope := "global"
	if guildID != "" {
		scope = fmt.Sprintf("guild:%s", guildID)
	}

	log.Printf("Registering %d commands (%s)", len(CommandList), scope)

	cmds, err := s.ApplicationCommandBulkOverwrite(appID, guildID, CommandList)
	if err != nil {
		return nil, fmt.Errorf("cannot bulk overwrite commands: %w", err)
	}
	return cmds, nil
}

// AddHandlers wires interaction dispatch. The awaiter gets first pick
// so pending waits (search buttons, the auth modal) receive their
// responses; everything else falls through to the command table.
func AddHandlers(s *discordgo.Session, a *app.App) {
	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if a.Awaiter.HandleInteraction(i) {
			return
		}

		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}

		data := i.ApplicationCommandData()
		if handler, ok := commandHandlers[data.Name]; ok {
			handler(a, s, i)
		}
	})
}
