package handlers

import (
	"github.com/bwmarrin/discordgo"
	"github.com/latrommi/cinebot/internal/commands"
)

// InteractionHandler routes gateway interactions to the command layer.
type InteractionHandler struct {
	commands *commands.Handler
}

func NewInteractionHandler(cmds *commands.Handler) *InteractionHandler {
	return &InteractionHandler{commands: cmds}
}

// Handle is registered with the session and fans out on interaction
// type: slash commands, panel components and the search modal.
func (ih *InteractionHandler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		ih.commands.HandleSlash(s, i)
	case discordgo.InteractionMessageComponent:
		ih.commands.HandleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		ih.commands.HandleModal(s, i)
	}
}
