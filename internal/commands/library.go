package commands

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latrommi/cinebot/pkg/emby"
)

const libraryTimeout = 20 * time.Second

// handleSeries attaches the full series list as a text file; libraries
// are far too large for a message body.
func (h *Handler) handleSeries(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), libraryTimeout)
	defer cancel()
	items, err := h.emby.GetAllSeries(ctx)
	if err != nil {
		log.Printf("error listing series: %v", err)
		respondText(s, i, "Error listing series: "+err.Error())
		return
	}
	respondWithListing(s, i, "series.txt", items)
}

func (h *Handler) handleMovies(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), libraryTimeout)
	defer cancel()
	items, err := h.emby.GetAllMovies(ctx)
	if err != nil {
		log.Printf("error listing movies: %v", err)
		respondText(s, i, "Error listing movies: "+err.Error())
		return
	}
	respondWithListing(s, i, "movies.txt", items)
}

func respondWithListing(s *discordgo.Session, i *discordgo.InteractionCreate, filename string, items []emby.Item) {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item.Name)
		b.WriteByte('\n')
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Found %d items.", len(items)),
			Files: []*discordgo.File{
				{
					Name:        filename,
					ContentType: "text/plain",
					Reader:      strings.NewReader(b.String()),
				},
			},
		},
	})
	if err != nil {
		log.Printf("error sending library listing: %v", err)
	}
}
