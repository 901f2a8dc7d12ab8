package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// handleQueue shows the current queue in playback order.
func (h *Handler) handleQueue(s *discordgo.Session, i *discordgo.InteractionCreate) {
	items := h.player.List()
	current := h.player.Current()

	if len(items) == 0 && current == nil {
		respondText(s, i, "The queue is empty.")
		return
	}

	var b strings.Builder
	if current != nil {
		fmt.Fprintf(&b, "Now playing: **%s**\n\n", current.Name())
	}
	if len(items) > 0 {
		b.WriteString("Up next:\n")
		for n, item := range items {
			fmt.Fprintf(&b, "%d. %s\n", n+1, item.Name())
		}
	} else {
		b.WriteString("Nothing else queued.\n")
	}
	respondText(s, i, b.String())
}
