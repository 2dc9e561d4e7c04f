package access

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/hxnx/jukebot/internal/app"
	"github.com/hxnx/jukebot/internal/features/shared"
)

// Freeze toggles the global freeze switch. While frozen every mutating
// playback command is denied, administrators included; read commands
// keep working.
func Freeze(a *app.App, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !a.IsAdmin(shared.GetInteractionUserID(i)) {
		shared.RespondEphemeral(s, i, adminOnlyMessage)
		return
	}

	if a.Guard.ToggleFreeze() {
		log.Printf("freeze enabled by %s", shared.GetInteractionUserID(i))
		shared.RespondEphemeral(s, i, "Enabled Freeze")
		return
	}

	log.Printf("freeze disabled by %s", shared.GetInteractionUserID(i))
	shared.RespondEphemeral(s, i, "Disabled Freeze")
}
