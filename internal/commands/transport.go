package commands

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handlePlay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	item, err := h.player.Start()
	if err != nil {
		log.Printf("error starting playback: %v", err)
		respondText(s, i, "Error starting playback: "+err.Error())
		return
	}
	if item == nil {
		respondText(s, i, "Playback started.")
		return
	}
	respondText(s, i, fmt.Sprintf("Playing **%s**.", item.Name()))
}

func (h *Handler) handlePause(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := h.player.Pause(); err != nil {
		log.Printf("error pausing playback: %v", err)
		respondText(s, i, "Error pausing video: "+err.Error())
		return
	}
	respondText(s, i, "Video paused.")
}

func (h *Handler) handleStop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := h.player.Stop(); err != nil {
		log.Printf("error stopping playback: %v", err)
		respondText(s, i, "Error stopping video: "+err.Error())
		return
	}
	respondText(s, i, "Video stopped.")
}

func (h *Handler) handleSkip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := h.player.Skip(); err != nil {
		log.Printf("error skipping video: %v", err)
		respondText(s, i, "Error skipping video: "+err.Error())
		return
	}
	respondText(s, i, "Skipped. "+h.nowPlayingText())
}

func (h *Handler) handleSeek(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	seconds := data.Options[0].IntValue()
	pos, err := h.player.Seek(seconds)
	if err != nil {
		log.Printf("error seeking: %v", err)
		respondText(s, i, "Error seeking video: "+err.Error())
		return
	}
	respondText(s, i, fmt.Sprintf("Seeked %+ds to %ds.", seconds, pos))
}

func (h *Handler) nowPlayingText() string {
	current := h.player.Current()
	if current == nil {
		return "No video playing."
	}
	return fmt.Sprintf("Now playing: **%s**", current.Name())
}

func (h *Handler) handleNowPlaying(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondText(s, i, h.nowPlayingText())
}
