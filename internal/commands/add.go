package commands

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latrommi/cinebot/pkg/media"
)

const resolveTimeout = 30 * time.Second

// handleAdd queues a video by raw path or URL. YouTube links are
// resolved to a direct stream URL first.
func (h *Handler) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	rawURL := data.Options[0].StringValue()
	uri, title := rawURL, displayNameFromPath(rawURL)

	if media.IsYouTubeURL(rawURL) {
		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()
		streamURL, videoTitle, err := media.ResolveYouTube(ctx, rawURL)
		if err != nil {
			log.Printf("error resolving youtube url: %v", err)
			respondText(s, i, "Error resolving YouTube video: "+err.Error())
			return
		}
		uri, title = streamURL, videoTitle
	}

	item, err := h.player.Add(uri, title, nil)
	if err != nil {
		log.Printf("error queueing %q: %v", rawURL, err)
		respondText(s, i, "Error queueing video: "+err.Error())
		return
	}
	respondText(s, i, fmt.Sprintf("Added **%s** to the queue.", item.Name()))
}

func displayNameFromPath(raw string) string {
	trimmed := strings.TrimRight(raw, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
